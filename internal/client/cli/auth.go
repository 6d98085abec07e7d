package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account. On
// success the user is logged in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		a.report(err)
		return err
	}

	a.user = u
	fmt.Fprintf(a.out, "Registered, welcome %s!\n", u.Name)
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.report(err)
		return err
	}

	a.user = u
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

// Logout wipes the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report(err)
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
