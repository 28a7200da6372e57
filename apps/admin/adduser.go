package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/eduroot/core/user"
)

func (cli *commandLine) newAddUserCmd() *cobra.Command {
	var (
		name    string
		email   string
		isAdmin bool
	)
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user, or update the password and role of an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.promptPassword()
			if err != nil {
				return err
			}
			role := user.RoleStudent
			if isAdmin {
				role = user.RoleAdmin
			}
			usr, err := cli.usrSvc.AddUser(cmd.Context(), name, email, pwd, role)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cli.out, "user %s saved (%s)\n", usr.Email, usr.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "the user's name")
	cmd.Flags().StringVar(&email, "email", "", "the user's email. The password will be prompted next.")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
