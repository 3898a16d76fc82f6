package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in without starting the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		signUp, _ := cmd.Flags().GetBool("signup")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		creds := auth.Credentials{Name: name, Email: email, Password: password}
		var p auth.Profile
		if signUp {
			p, err = e.auth.SignUp(cmd.Context(), creds)
		} else {
			p, err = e.auth.Login(cmd.Context(), creds)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", p.Name, p.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear local progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.auth.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")
	loginCmd.Flags().String("name", "", "Display name (required with --signup)")
	loginCmd.Flags().Bool("signup", false, "Create a new profile")
}
