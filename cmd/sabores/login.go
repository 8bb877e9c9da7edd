package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check admin credentials against the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.newClient(nil).Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("login rejected: %s", resp.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s <%s>\n", resp.Message, resp.User.Name, resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
