package main

import (
	"database/sql"
	"fmt"
	"io"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/eduroot/core/quiz"
	"github.com/trezcool/eduroot/core/user"
	"github.com/trezcool/eduroot/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	gooseRunFunc     = database.Migrate  // mockable

	errEmptyPassword = errors.New("password cannot be empty")
)

type commandLine struct {
	db       *sql.DB
	usrSvc   *user.Service
	quizSvc  *quiz.Service
	validate *validator.Validate
	out      io.Writer
}

func (cli *commandLine) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "EduRoot administration commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.out)
	cmd.AddCommand(cli.newMigrateCmd())
	cmd.AddCommand(cli.newAddUserCmd())
	cmd.AddCommand(cli.newResetPasswordCmd())
	cmd.AddCommand(cli.newImportQuizzesCmd())
	return cmd
}

func (cli *commandLine) run(args []string) error {
	cmd := cli.newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

// promptPassword reads a password from the terminal without echoing it.
func (cli *commandLine) promptPassword() (string, error) {
	_, _ = fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	return string(pwd), nil
}
