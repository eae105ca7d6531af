package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/medesi/portal/internal/client/client"
	"github.com/medesi/portal/internal/common"
)

// getSimpleText, getTextWithDefault and getPassword are indirections used
// to facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getTextWithDefault = GetTextWithDefault
var getPassword = GetPassword

// Login prompts for email and password and exchanges them for a session
// token. On success the home screen is shown. Failures are reported as a
// notice and returned; nothing is retried.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.Login(ctx, email, string(password))
	printlnFn(loginNotice(err))
	if err != nil {
		return err
	}

	a.loggedIn.Store(true)
	a.expired.Store(false)
	return a.Home(ctx)
}

// ResetPassword asks the server to mail a reset link. After a successful
// request it waits the configured redirect delay and goes back to the
// login prompt.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	err = a.authService.RequestPasswordReset(ctx, email)
	printlnFn(resetNotice(err))
	if err != nil {
		return err
	}

	sleepFn(a.redirectDelay())
	return a.Login(ctx)
}

// Session prints what is known about the stored token.
func (a *App) Session(ctx context.Context) error {
	info, err := a.authService.Session(ctx)
	if err != nil {
		printlnFn("Error reading session:", err)
		return err
	}
	if !info.Authenticated {
		printlnFn("Not logged in")
		return nil
	}

	if info.Subject != "" {
		printlnFn("Patient:", info.Subject)
	}
	switch {
	case info.ExpiresAt.IsZero():
		printlnFn("Expires: unknown")
	case info.Expired(nowFn()):
		printlnFn("Expired:", info.ExpiresAt.Local().Format(time.RFC1123))
	default:
		printlnFn("Expires:", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Logout forgets the token and the cached profile.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err)
		return err
	}
	a.loggedIn.Store(false)
	printlnFn("Logged out")
	return nil
}

func (a *App) redirectDelay() time.Duration {
	if a.config == nil {
		return 0
	}
	return a.config.ResetRedirectDelay
}

func loginNotice(err error) string {
	var se *client.StatusError
	switch {
	case err == nil:
		return "Login successful"
	case errors.As(err, &se):
		return fmt.Sprintf("Login failed: %d", se.Code)
	case errors.Is(err, client.ErrMalformedResponse):
		return fmt.Sprintf("Error parsing response: %v", err)
	default:
		return fmt.Sprintf("Login failed: %v", err)
	}
}

func resetNotice(err error) string {
	var se *client.StatusError
	switch {
	case err == nil:
		return "Password Reset Link sent successfully"
	case errors.As(err, &se) && se.Message != "":
		return "Reset failed: " + se.Message
	case errors.As(err, &se):
		return fmt.Sprintf("Reset failed: %d", se.Code)
	default:
		return fmt.Sprintf("Reset failed: %v", err)
	}
}

func updateNotice(err error) string {
	var se *client.StatusError
	switch {
	case err == nil:
		return "Info Updated Successfully"
	case errors.As(err, &se):
		return fmt.Sprintf("Update failed: %d", se.Code)
	default:
		return fmt.Sprintf("Update failed: %v", err)
	}
}
