package user

import (
	"context"
	"net/mail"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
)

var (
	// errors
	ErrNotFound           = errors.New("User not found")
	ErrEmailExists        = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrAdminRequired      = errors.New("Admin access required")
)

type (
	Repository interface {
		// CreateUser fails with ErrEmailExists when the email is taken.
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	// Session is returned on successful registration or login.
	Session struct {
		Token string  `json:"token"`
		User  Profile `json:"user"`
	}

	Service struct {
		repo    Repository
		tokens  *TokenIssuer
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, tokens *TokenIssuer, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		tokens:  tokens,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *Service) newSession(usr User) (Session, error) {
	token, err := svc.tokens.Issue(usr.ID)
	if err != nil {
		return Session{}, errors.Wrap(err, "issuing token")
	}
	return Session{Token: token, User: usr.Profile()}, nil
}

// Register creates a student account and opens a session for it.
// nu is expected to be validated already.
func (svc *Service) Register(ctx context.Context, nu NewUser) (Session, error) {
	usr, err := svc.create(ctx, nu.Name, nu.Email, nu.Password, nu.Language, RoleStudent)
	if err != nil {
		return Session{}, err
	}
	svc.sendWelcomeMail(usr)
	return svc.newSession(usr)
}

func (svc *Service) create(ctx context.Context, name, email, pwd, lang, role string) (User, error) {
	if _, err := svc.repo.GetUserByEmail(ctx, email); err == nil {
		return User{}, emailExistsError()
	} else if errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "finding user by email")
	}

	usr := User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Language:  lang,
		CreatedAt: core.NowFunc(),
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return User{}, emailExistsError()
		}
		return User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func emailExistsError() error {
	return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
}

// Login checks the credentials and opens a new session.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (svc *Service) Login(ctx context.Context, creds Credentials) (Session, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Session{}, core.NewUnauthorizedError(ErrInvalidCredentials.Error())
		}
		return Session{}, errors.Wrap(err, "finding user by email")
	}
	if !usr.CheckPassword(creds.Password) {
		return Session{}, core.NewUnauthorizedError(ErrInvalidCredentials.Error())
	}
	return svc.newSession(usr)
}

// Authenticate resolves a session token to its User.
func (svc *Service) Authenticate(ctx context.Context, token string) (User, error) {
	id, err := svc.tokens.Verify(token)
	if err != nil {
		return User{}, core.NewUnauthorizedError(err.Error())
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, core.NewUnauthorizedError(ErrNotFound.Error())
		}
		return User{}, errors.Wrap(err, "finding user by id")
	}
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

// AddUser updates the password and role of the user with the given email, or creates it.
func (svc *Service) AddUser(ctx context.Context, name, email, pwd, role string) (User, error) {
	email = core.CleanString(email)
	usr, err := svc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return User{}, errors.Wrap(err, "finding user by email")
		}
		return svc.create(ctx, core.CleanString(name), email, pwd, LangEnglish, role)
	}

	if name = core.CleanString(name); name != "" {
		usr.Name = name
	}
	usr.Role = role
	if err = usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err = svc.repo.UpdateUser(ctx, usr)
	return usr, errors.Wrap(err, "updating user")
}

// ResetPassword sets a new password for the user with the given email.
func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) error {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(email))
	if err != nil {
		return errors.Wrap(err, "finding user by email")
	}
	if err = usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	_, err = svc.repo.UpdateUser(ctx, usr)
	return errors.Wrap(err, "updating user")
}

// RequireRole fails with a core.ForbiddenError unless usr has the given role.
func RequireRole(usr User, role string) error {
	if usr.Role != role {
		return core.NewForbiddenError(ErrAdminRequired.Error())
	}
	return nil
}

type welcomeData struct {
	Name  string
	Email string
}

func (svc *Service) sendWelcomeMail(usr User) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Welcome to " + svc.conf.AppName,
		TemplateName: "welcome",
		TemplateData: welcomeData{Name: usr.Name, Email: usr.Email},
	})
}
