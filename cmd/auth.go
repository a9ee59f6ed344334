package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/shared"
)

// AuthRegister creates an account; the backend emails a code to verify.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	form := &services.Registration{
		Name:     cmd.String("name"),
		Email:    cmd.String("email"),
		Phone:    cmd.String("phone"),
		Password: cmd.String("password"),
	}

	auth := services.NewAuthService(r.backendClient(ctx))
	if err := auth.Register(ctx, form); err != nil {
		return err
	}

	r.writePlain("✓ Registration submitted\n")
	r.writePlain("Check your email for the verification code, then run:\n")
	r.writePlain("  postx auth verify --email %s --otp <code>\n", form.Email)
	return nil
}

// AuthVerify confirms the emailed code and stores the issued session.
func (r *Runner) AuthVerify(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	otp := cmd.String("otp")

	auth := services.NewAuthService(r.backendClient(ctx))
	token, err := auth.VerifyOTP(ctx, email, otp)
	if err != nil {
		return err
	}

	if r.session == nil {
		return fmt.Errorf("%w: run 'postx setup database' first", shared.ErrMissingConfig)
	}

	if token != "" {
		if _, err := r.session.Establish(token, email); err != nil {
			return err
		}
		return r.writePlain("✓ Account verified and logged in\n")
	}

	r.writePlain("✓ Account verified\n")
	r.writePlain("Run 'postx auth login' to start a session.\n")
	return nil
}

// AuthLogin exchanges credentials for a token and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if r.session == nil {
		return fmt.Errorf("%w: run 'postx setup database' first", shared.ErrMissingConfig)
	}

	auth := services.NewAuthService(r.backendClient(ctx))
	token, _, err := auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	userID, err := r.session.Establish(token, email)
	if err != nil {
		return err
	}

	r.logger.Info("session established", "user_id", userID)
	return r.writePlain("✓ Logged in as %s\n", email)
}

// AuthWhoami shows the logged-in user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	r.writePlain("User ID: %s\n", userID)
	if email, err := r.session.Email(); err == nil && email != "" {
		r.writePlain("Email: %s\n", email)
	}
	return nil
}

// AuthLogout clears the persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil || !r.session.LoggedIn() {
		return r.writePlain("Not logged in.\n")
	}

	if err := r.session.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}
