package services

import (
	"fmt"
	"net/url"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

// ParseCallback interprets the query string the backend appends when it
// redirects back after an OAuth round trip. Each platform has its own
// schema; the account is synthesized locally without a backend call.
func ParseCallback(platform models.Platform, values url.Values) (*models.Account, error) {
	if msg := values.Get("error"); msg != "" {
		return nil, fmt.Errorf("%s connection failed: %s: %w", platform, msg, shared.ErrAuthFailed)
	}

	switch platform {
	case models.Twitter:
		return parseTwitterCallback(values)
	case models.LinkedIn:
		return parseLinkedInCallback(values)
	case models.Facebook, models.Instagram, models.YouTube:
		return parseSocialCallback(platform, values)
	default:
		return nil, fmt.Errorf("no callback schema for platform %s: %w", platform, shared.ErrInvalidArgument)
	}
}

// parseTwitterCallback expects ?twitter=connected&username=U.
func parseTwitterCallback(values url.Values) (*models.Account, error) {
	status := values.Get("twitter")
	username := values.Get("username")

	if status != "connected" || username == "" {
		return nil, fmt.Errorf("unexpected twitter callback %q: %w", values.Encode(), shared.ErrAuthFailed)
	}

	return &models.Account{
		Platform:  models.Twitter,
		Connected: true,
		Username:  username,
		Name:      username,
		AvatarURL: models.Twitter.DefaultAvatar(username),
	}, nil
}

// parseLinkedInCallback expects ?linkedin=connected&name=N.
func parseLinkedInCallback(values url.Values) (*models.Account, error) {
	status := values.Get("linkedin")
	name := values.Get("name")

	if status != "connected" || name == "" {
		return nil, fmt.Errorf("unexpected linkedin callback %q: %w", values.Encode(), shared.ErrAuthFailed)
	}

	return &models.Account{
		Platform:  models.LinkedIn,
		Connected: true,
		Name:      name,
		AvatarURL: linkedInStockAvatar,
	}, nil
}

// parseSocialCallback expects ?connected=true (or 1) with an optional name.
func parseSocialCallback(platform models.Platform, values url.Values) (*models.Account, error) {
	connected := values.Get("connected")
	if connected != "true" && connected != "1" {
		return nil, fmt.Errorf("unexpected %s callback %q: %w", platform, values.Encode(), shared.ErrAuthFailed)
	}

	account := &models.Account{
		Platform:  platform,
		Connected: true,
		Name:      values.Get("name"),
		Username:  values.Get("user"),
	}
	if account.Name == "" {
		account.Name = account.Username
	}
	return account, nil
}
