package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlapshin/storefront/internal/client/models"
	"github.com/mlapshin/storefront/internal/common"
)

// Login prompts for credentials and authenticates the session.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, password)
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		fmt.Fprintln(a.out, "Invalid email or password.")
	case err != nil:
		fmt.Fprintln(a.out, "Login failed:", err)
	default:
		fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Name)
	}
}

// Register prompts for a profile and creates a new account.
func (a *App) Register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Register(ctx, name, email, password)
	switch {
	case errors.Is(err, common.ErrEmailAlreadyRegistered):
		fmt.Fprintln(a.out, "That email is already registered.")
	case err != nil:
		fmt.Fprintln(a.out, "Registration failed:", err)
	default:
		fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	}
}

// Logout clears the session. The wishlist store resets itself through
// its session subscription.
func (a *App) Logout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Signed out.")
}

// Profile shows the current profile and lets the user change name and
// email. Empty input keeps the current value.
func (a *App) Profile(ctx context.Context) {
	state := a.session.State()
	if state.User == nil {
		fmt.Fprintln(a.out, "You are not signed in.")
		return
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Enter name [%s]", state.User.Name), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	email, err := GetSimpleText(a.reader, fmt.Sprintf("Enter email [%s]", state.User.Email), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	updated := models.User{ID: state.User.ID, Name: state.User.Name, Email: state.User.Email}
	if name != "" {
		updated.Name = name
	}
	if email != "" {
		updated.Email = email
	}

	if err := a.session.UpdateUser(ctx, updated); err != nil {
		fmt.Fprintln(a.out, "Profile update failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Profile updated.")
}
