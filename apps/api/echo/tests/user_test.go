package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduroot/core/user"
	testutil "github.com/trezcool/eduroot/tests"
)

type sessionResponse struct {
	Token string       `json:"token"`
	User  user.Profile `json:"user"`
}

func Test_home(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`{"message": "Welcome to EduRoot API!"}`)}, rec)
}

func Test_userAPI_register(t *testing.T) {
	db.Reset()
	testutil.CreateUser(t, usrRepo, "Existing", "taken@test.cd", "pass4taken", "")

	badReq := func(fields map[string]string) []byte {
		return marchallObj(t, httpErr{Detail: "Invalid data", Fields: fields})
	}

	tests := []httpTest{
		{
			name: "required fields", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: badReq(map[string]string{
				"name":     "this field is required",
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name: "invalid email", body: []byte(`{"name": "Jane", "email": "nope", "password": "s3cretpass"}`),
			wantCode: http.StatusBadRequest,
			wantData: badReq(map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "short password", body: []byte(`{"name": "Jane", "email": "jane@test.cd", "password": "abc"}`),
			wantCode: http.StatusBadRequest,
			wantData: badReq(map[string]string{"password": "password must contain at least 6 characters"}),
		},
		{
			name: "password too long for bcrypt",
			body: []byte(`{"name": "Jane", "email": "jane@test.cd", "password": "` + strings.Repeat("s3cret", 13) + `"}`),
			wantCode: http.StatusBadRequest,
			wantData: badReq(map[string]string{"password": "password must contain at most 72 bytes"}),
		},
		{
			name: "multibyte password over 72 bytes",
			body: []byte(`{"name": "Jane", "email": "jane@test.cd", "password": "` + strings.Repeat("é", 37) + `"}`),
			wantCode: http.StatusBadRequest,
			wantData: badReq(map[string]string{"password": "password must contain at most 72 bytes"}),
		},
		{
			name: "numeric password", body: []byte(`{"name": "Jane", "email": "jane@test.cd", "password": "12345678"}`),
			wantCode: http.StatusBadRequest,
			wantData: badReq(map[string]string{"password": "password cannot be entirely numeric"}),
		},
		{
			name: "password similar to email", body: []byte(`{"name": "Jane", "email": "janedoe@test.cd", "password": "janedoe@test"}`),
			wantCode: http.StatusBadRequest,
			wantData: badReq(map[string]string{"password": "password cannot be similar to user attributes"}),
		},
		{
			name: "unsupported language", body: []byte(`{"name": "Jane", "email": "jane@test.cd", "password": "s3cretpass", "language": "fr"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "email taken", body: []byte(`{"name": "Jane", "email": "taken@test.cd", "password": "s3cretpass"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Detail: "Email already registered",
				Fields: map[string]string{"email": "Email already registered"},
			}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/auth/register"
	}
	runHTTPTests(t, tests)

	t.Run("registered", func(t *testing.T) {
		sentBefore := len(mailSvc.Sent())
		body := []byte(`{"name": " Jane Doe ", "email": "jane@test.cd", "password": "s3cretpass", "language": "HI"}`)
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var sess sessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
		assert.NotEmpty(t, sess.Token)
		assert.Equal(t, "Jane Doe", sess.User.Name)
		assert.Equal(t, "jane@test.cd", sess.User.Email)
		assert.Equal(t, user.RoleStudent, sess.User.Role)
		assert.Equal(t, user.LangHindi, sess.User.Language)

		id, err := tokens.Verify(sess.Token)
		require.NoError(t, err)
		assert.Equal(t, sess.User.ID, id)

		sent := mailSvc.Sent()
		require.Len(t, sent, sentBefore+1)
		assert.Equal(t, "jane@test.cd", sent[len(sent)-1].To[0].Address)
	})

	t.Run("role cannot be chosen", func(t *testing.T) {
		body := []byte(`{"name": "Mallory", "email": "mallory@test.cd", "password": "s3cretpass", "role": "admin"}`)
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var sess sessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
		assert.Equal(t, user.RoleStudent, sess.User.Role)
	})
}

func Test_userAPI_login(t *testing.T) {
	db.Reset()
	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "s3cretpass", "")

	invalidCreds := marchallObj(t, httpErr{Detail: "Invalid credentials"})
	tests := []httpTest{
		{
			name: "required fields", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Detail: "Invalid data", Fields: map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
			}}),
		},
		{
			name: "unknown email", body: []byte(`{"email": "nobody@test.cd", "password": "s3cretpass"}`),
			wantCode: http.StatusUnauthorized, wantData: invalidCreds,
		},
		{
			name: "wrong password", body: []byte(`{"email": "jane@test.cd", "password": "wrongpass"}`),
			wantCode: http.StatusUnauthorized, wantData: invalidCreds,
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/auth/login"
	}
	runHTTPTests(t, tests)

	t.Run("logged in", func(t *testing.T) {
		body := []byte(`{"email": "jane@test.cd", "password": "s3cretpass"}`)
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var sess sessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
		assert.Equal(t, usr.Profile(), sess.User)

		id, err := tokens.Verify(sess.Token)
		require.NoError(t, err)
		assert.Equal(t, usr.ID, id)
	})
}

func Test_userAPI_me(t *testing.T) {
	db.Reset()
	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "s3cretpass", "")
	ghost := testutil.CreateUser(t, usrRepo, "Ghost", "ghost@test.cd", "s3cretpass", "")
	ghostToken := getToken(t, ghost)
	usrRepo.DeleteUser(context.Background(), ghost.ID)

	past := time.Now().Add(-2 * conf.JWTExpirationDelta)
	expiredToken, err := user.NewTokenIssuer(conf.SecretKey, conf.JWTExpirationDelta).
		WithClock(func() time.Time { return past }).
		Issue(usr.ID)
	require.NoError(t, err)

	forgedToken, err := user.NewTokenIssuer("not-the-secret", conf.JWTExpirationDelta).Issue(usr.ID)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)},
		{name: "malformed token", token: "abc.def", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Detail: "Invalid token"})},
		{name: "forged token", token: forgedToken, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Detail: "Invalid token"})},
		{name: "expired token", token: expiredToken, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Detail: "Token expired"})},
		{name: "deleted user", token: ghostToken, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Detail: "User not found"})},
		{name: "me", token: getToken(t, usr), wantData: marchallObj(t, map[string]interface{}{"user": usr.Profile()})},
	}
	for i := range tests {
		tests[i].path = "/api/auth/me"
	}
	runHTTPTests(t, tests)

	t.Run("challenge header", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/auth/me")
		app.ServeHTTP(rec, req)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})
}
