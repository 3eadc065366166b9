package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mvx/internal/credentials"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserRegister creates an account in the credentials file.
func (r *Runner) UserRegister(ctx context.Context, cmd *cli.Command) error {
	username, password := cmd.String("user"), cmd.String("password")

	confirm := password
	if cmd.IsSet("confirm") {
		confirm = cmd.String("confirm")
	}

	if err := credentials.ValidateRegistration(username, password, confirm); err != nil {
		return err
	}

	store, err := r.credentialStore()
	if err != nil {
		return err
	}

	ok, err := store.Register(username, password)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUserExists, username)
	}

	return r.writePlain("✓ Registered %s\n", username)
}

// UserLogin checks a username and password against the credentials file.
func (r *Runner) UserLogin(ctx context.Context, cmd *cli.Command) error {
	username, err := r.authenticate(cmd)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Logged in as %s\n", username)
}

// UserList prints every registered username.
func (r *Runner) UserList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.credentialStore()
	if err != nil {
		return err
	}

	names, err := store.Usernames()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(names, true)
	}

	r.writePlainHeader("Users")
	for _, name := range names {
		if err := r.writePlain("%s\n", name); err != nil {
			return err
		}
	}
	return r.writePlain("\n%d users\n", len(names))
}
