package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/poojitha20043/postx/internal/shared"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService wraps the backend's /user endpoints.
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService over the backend client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Registration carries the sign-up form.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate applies the same field rules the backend expects.
func (r *Registration) Validate() error {
	if r.Name == "" || r.Email == "" || r.Phone == "" || r.Password == "" {
		return fmt.Errorf("name, email, phone, and password are required: %w", shared.ErrInvalidInput)
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("invalid email address %q: %w", r.Email, shared.ErrInvalidInput)
	}
	if len(r.Phone) < 10 {
		return fmt.Errorf("phone number must be at least 10 digits: %w", shared.ErrInvalidInput)
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", shared.ErrInvalidInput)
	}
	return nil
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	Msg     string `json:"msg"`
}

// Register creates an account; the backend emails an OTP to verify.
func (s *AuthService) Register(ctx context.Context, form *Registration) error {
	if err := form.Validate(); err != nil {
		return err
	}

	var resp authResponse
	if err := s.client.PostJSONAs(ctx, "/user/register", form, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return backendError(resp.Msg, "registration failed")
	}
	return nil
}

// VerifyOTP confirms the emailed code and returns the issued token.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	if email == "" || otp == "" {
		return "", fmt.Errorf("email and otp are required: %w", shared.ErrInvalidInput)
	}

	payload := map[string]string{"email": email, "otp": otp}

	var resp authResponse
	if err := s.client.PostJSONAs(ctx, "/user/verify-otp", payload, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", backendError(resp.Msg, "otp verification failed")
	}
	return resp.Token, nil
}

// Login exchanges credentials for a token and the backend's user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (token, userID string, err error) {
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required: %w", shared.ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return "", "", fmt.Errorf("invalid email address %q: %w", email, shared.ErrInvalidInput)
	}

	payload := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := s.client.PostJSONAs(ctx, "/user/login", payload, &resp); err != nil {
		return "", "", err
	}
	if !resp.Success {
		return "", "", backendError(resp.Msg, "login failed")
	}
	return resp.Token, resp.UserID, nil
}
