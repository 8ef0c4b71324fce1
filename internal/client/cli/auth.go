package cli

import (
	"context"
	"errors"

	"github.com/sambulosenda/glamfric-mobile/internal/client/guard"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and dispatches the login action. The result
// is read back from the session state, as a screen would.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, common.ErrLoginInProgress) {
			a.printf("A login is already in progress.\n")
			return err
		}
		a.printf("%s\n", a.auth.State().Error)
		return err
	}

	a.printf("Welcome, %s!\n", a.auth.State().User.DisplayName())
	return nil
}

// Signup creates an account. No session is created; the user verifies the
// email address first.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter your name (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Signup(ctx, email, string(password), name)
	if err != nil {
		a.printf("%s\n", a.auth.State().Error)
		return err
	}

	a.printf("%s\n", res.Message)
	if res.RequiresVerification {
		a.printf("Run 'verify <token>' with the token from your email.\n")
	}
	return nil
}

// Verify submits an email verification token given as args[0] or prompted.
func (a *App) Verify(ctx context.Context, args []string) error {
	token, err := a.argOrPrompt(args, "Enter verification token")
	if err != nil {
		return err
	}

	res, err := a.auth.VerifyEmail(ctx, token)
	if err != nil && (res == nil || !res.Success) {
		a.printf("%s\n", a.auth.State().Error)
		return err
	}

	a.printf("%s\n", res.Message)
	if err != nil {
		a.printf("Automatic sign-in failed: %s\n", a.auth.State().Error)
	}
	switch {
	case a.isLoggedIn():
		a.printf("Welcome, %s!\n", a.auth.State().User.DisplayName())
	case res.LoginRequired:
		a.printf("Run 'login' to sign in.\n")
	}
	return err
}

// Resend asks for a fresh verification email for args[0] or a prompted email.
func (a *App) Resend(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}

	res, err := a.auth.ResendVerification(ctx, email)
	if err != nil {
		a.printf("%s\n", a.auth.State().Error)
		return err
	}
	a.printf("%s\n", res.Message)
	return nil
}

// Logout ends the session. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	_ = a.auth.Logout(ctx)
	a.printf("Signed out.\n")
	a.shell.Navigate(guard.DefaultPath)
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	user := a.auth.State().User
	if user == nil {
		a.printf("Not signed in.\n")
		return nil
	}
	name := "-"
	if user.Name != nil {
		name = *user.Name
	}
	a.printf("id:    %s\nemail: %s\nname:  %s\nrole:  %s\n", user.ID, user.Email, name, user.Role)
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
