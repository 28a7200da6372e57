package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (cli *commandLine) newResetPasswordCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.promptPassword()
			if err != nil {
				return err
			}
			if err = cli.usrSvc.ResetPassword(cmd.Context(), email, pwd); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cli.out, "password of %s reset\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "the user's email. The password will be prompted next.")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
