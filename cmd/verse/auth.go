package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativityverse/verse-cli/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Verse",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Verse account",
	Long:  "Create a Verse account. Registration does not sign you in; confirm your email with 'verse confirm-email' first.",
	RunE:  runRegister,
}

var confirmEmailCmd = &cobra.Command{
	Use:   "confirm-email",
	Short: "Confirm your email address with the emailed code",
	RunE:  runConfirmEmail,
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	RunE:  runForgotPassword,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset your password with the emailed token",
	RunE:  runResetPassword,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

var (
	authEmail     string
	authPassword  string
	authFirstName string
	authLastName  string
	authCode      string
	authToken     string
)

func init() {
	loginCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&authPassword, "password", "p", "", "Account password")
	if err := loginCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}
	if err := loginCmd.MarkFlagRequired("password"); err != nil {
		panic(fmt.Sprintf("failed to mark password flag as required: %v", err))
	}

	registerCmd.Flags().StringVar(&authFirstName, "firstname", "", "First name")
	registerCmd.Flags().StringVar(&authLastName, "lastname", "", "Last name")
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&authPassword, "password", "p", "", "Account password")
	if err := registerCmd.MarkFlagRequired("firstname"); err != nil {
		panic(fmt.Sprintf("failed to mark firstname flag as required: %v", err))
	}
	if err := registerCmd.MarkFlagRequired("lastname"); err != nil {
		panic(fmt.Sprintf("failed to mark lastname flag as required: %v", err))
	}
	if err := registerCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}
	if err := registerCmd.MarkFlagRequired("password"); err != nil {
		panic(fmt.Sprintf("failed to mark password flag as required: %v", err))
	}

	confirmEmailCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")
	confirmEmailCmd.Flags().StringVar(&authCode, "code", "", "Confirmation code from the email")
	if err := confirmEmailCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}
	if err := confirmEmailCmd.MarkFlagRequired("code"); err != nil {
		panic(fmt.Sprintf("failed to mark code flag as required: %v", err))
	}

	forgotPasswordCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")
	if err := forgotPasswordCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	resetPasswordCmd.Flags().StringVar(&authToken, "token", "", "Reset token from the email")
	resetPasswordCmd.Flags().StringVarP(&authPassword, "password", "p", "", "New password")
	if err := resetPasswordCmd.MarkFlagRequired("token"); err != nil {
		panic(fmt.Sprintf("failed to mark token flag as required: %v", err))
	}
	if err := resetPasswordCmd.MarkFlagRequired("password"); err != nil {
		panic(fmt.Sprintf("failed to mark password flag as required: %v", err))
	}

	rootCmd.AddCommand(loginCmd, registerCmd, confirmEmailCmd, forgotPasswordCmd, resetPasswordCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.session.Login(cmd.Context(), authEmail, authPassword); err != nil {
		return fmt.Errorf("login failed: %s", app.session.Err())
	}

	user := app.session.User()
	if user != nil {
		fmt.Printf("Signed in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	} else {
		fmt.Println("Signed in")
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	req := session.RegisterRequest{
		FirstName: authFirstName,
		LastName:  authLastName,
		Email:     authEmail,
		Password:  authPassword,
	}
	if _, err := app.session.Register(cmd.Context(), req); err != nil {
		return fmt.Errorf("registration failed: %s", app.session.Err())
	}

	fmt.Println("Account created. Check your email and run 'verse confirm-email' to finish signing up.")
	return nil
}

func runConfirmEmail(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	req := session.ConfirmEmailRequest{Email: authEmail, Code: authCode}
	if err := app.session.ConfirmEmail(cmd.Context(), req); err != nil {
		return fmt.Errorf("confirmation failed: %s", app.session.Err())
	}

	if app.session.LoggedIn() {
		fmt.Println("Email confirmed. You are signed in.")
	} else {
		fmt.Println("Email confirmed. Run 'verse login' to sign in.")
	}
	return nil
}

func runForgotPassword(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.session.ForgotPassword(cmd.Context(), authEmail); err != nil {
		return fmt.Errorf("request failed: %s", app.session.Err())
	}
	fmt.Println("Password reset email sent.")
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	req := session.ResetPasswordRequest{Token: authToken, Password: authPassword}
	if err := app.session.ResetPassword(cmd.Context(), req); err != nil {
		return fmt.Errorf("reset failed: %s", app.session.Err())
	}
	fmt.Println("Password updated. Run 'verse login' to sign in.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	app.session.Logout()
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	user := app.session.CurrentUser(cmd.Context())
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}
