package services

import (
	"errors"
	"net/url"
	"testing"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

func TestParseCallback(t *testing.T) {
	t.Run("Twitter Connected", func(t *testing.T) {
		values := url.Values{"twitter": {"connected"}, "username": {"jack"}}

		account, err := ParseCallback(models.Twitter, values)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if account.Username != "jack" || !account.Connected {
			t.Errorf("unexpected account %+v", account)
		}
		if account.AvatarURL != "https://unavatar.io/twitter/jack" {
			t.Errorf("avatar = %q", account.AvatarURL)
		}
	})

	t.Run("Twitter Missing Username", func(t *testing.T) {
		values := url.Values{"twitter": {"connected"}}

		if _, err := ParseCallback(models.Twitter, values); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("LinkedIn Connected", func(t *testing.T) {
		values := url.Values{"linkedin": {"connected"}, "name": {"Ada Lovelace"}}

		account, err := ParseCallback(models.LinkedIn, values)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if account.Name != "Ada Lovelace" {
			t.Errorf("name = %q", account.Name)
		}
		if account.AvatarURL != linkedInStockAvatar {
			t.Errorf("avatar = %q, want stock icon", account.AvatarURL)
		}
	})

	t.Run("Error Param Wins", func(t *testing.T) {
		values := url.Values{"linkedin": {"connected"}, "name": {"Ada"}, "error": {"denied"}}

		_, err := ParseCallback(models.LinkedIn, values)
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Social Connected Variants", func(t *testing.T) {
		for _, value := range []string{"true", "1"} {
			values := url.Values{"connected": {value}, "name": {"My Biz"}}

			account, err := ParseCallback(models.Facebook, values)
			if err != nil {
				t.Fatalf("parse failed for connected=%s: %v", value, err)
			}
			if account.Name != "My Biz" {
				t.Errorf("name = %q", account.Name)
			}
		}
	})

	t.Run("Social Not Connected", func(t *testing.T) {
		values := url.Values{"connected": {"false"}}

		if _, err := ParseCallback(models.YouTube, values); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Unknown Platform", func(t *testing.T) {
		if _, err := ParseCallback(models.Platform("myspace"), url.Values{}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
