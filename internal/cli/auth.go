package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the planning backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := promptLine("Email")
		if err != nil {
			return err
		}
		password, err := promptLine("Password")
		if err != nil {
			return err
		}

		creds, err := planit.Client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if err := planit.SaveCredentials(cmd.Context(), creds); err != nil {
			return err
		}

		color.Green("Logged in as %s.", creds.User.Email)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := promptLine("Name")
		if err != nil {
			return err
		}
		email, err := promptLine("Email")
		if err != nil {
			return err
		}
		password, err := promptLine("Password")
		if err != nil {
			return err
		}

		creds, err := planit.Client.Signup(cmd.Context(), name, email, password)
		if err != nil {
			return err
		}
		if err := planit.SaveCredentials(cmd.Context(), creds); err != nil {
			return err
		}

		color.Green("Welcome, %s.", creds.User.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out (your cached trips stay on this device)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := planit.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}
