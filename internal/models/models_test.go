package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/poojitha20043/postx/internal/shared"
)

func TestParsePlatform(t *testing.T) {
	tc := []struct {
		name    string
		input   string
		want    Platform
		wantErr bool
	}{
		{name: "twitter", input: "twitter", want: Twitter},
		{name: "x alias", input: "x", want: Twitter},
		{name: "mixed case", input: " LinkedIn ", want: LinkedIn},
		{name: "facebook short", input: "fb", want: Facebook},
		{name: "instagram short", input: "ig", want: Instagram},
		{name: "youtube short", input: "yt", want: YouTube},
		{name: "unknown", input: "myspace", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlatform(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePlatform(%q) should fail", tt.input)
				}
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlatform(%q) = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCharLimit(t *testing.T) {
	if got := Twitter.CharLimit(); got != 280 {
		t.Errorf("twitter limit = %d, want 280", got)
	}
	if got := LinkedIn.CharLimit(); got != 3000 {
		t.Errorf("linkedin limit = %d, want 3000", got)
	}
	if got := Facebook.CharLimit(); got != 0 {
		t.Errorf("facebook limit = %d, want 0 (unlimited)", got)
	}
}

func TestDraftValidate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	clock := &shared.FixedClock{Time: now}

	t.Run("Empty Content", func(t *testing.T) {
		d := &Draft{Platform: Twitter, Content: "   "}
		if err := d.Validate(clock); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty content, got %v", err)
		}
	})

	t.Run("Character Limit Boundary", func(t *testing.T) {
		d := &Draft{Platform: Twitter, Content: strings.Repeat("a", 280)}
		if err := d.Validate(clock); err != nil {
			t.Errorf("280 characters should be accepted: %v", err)
		}

		d.Content = strings.Repeat("a", 281)
		if err := d.Validate(clock); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("281 characters should be rejected, got %v", err)
		}
	})

	t.Run("Limit Counts Runes", func(t *testing.T) {
		d := &Draft{Platform: Twitter, Content: strings.Repeat("é", 280)}
		if err := d.Validate(clock); err != nil {
			t.Errorf("280 multibyte characters should be accepted: %v", err)
		}
	})

	t.Run("LinkedIn Limit", func(t *testing.T) {
		d := &Draft{Platform: LinkedIn, Content: strings.Repeat("a", 3001)}
		if err := d.Validate(clock); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("3001 characters should be rejected for linkedin, got %v", err)
		}
	})

	t.Run("No Limit For Facebook", func(t *testing.T) {
		d := &Draft{Platform: Facebook, Content: strings.Repeat("a", 5000)}
		if err := d.Validate(clock); err != nil {
			t.Errorf("facebook post should not be length limited: %v", err)
		}
	})

	t.Run("Schedule Boundary", func(t *testing.T) {
		d := &Draft{Platform: Twitter, Content: "hello"}

		d.ScheduledAt = now.Add(10 * time.Minute).Format(ScheduleLayout)
		if err := d.Validate(clock); err != nil {
			t.Errorf("schedule exactly 10 minutes out should be accepted: %v", err)
		}

		d.ScheduledAt = now.Add(9 * time.Minute).Format(ScheduleLayout)
		if err := d.Validate(clock); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("schedule 9 minutes out should be rejected, got %v", err)
		}
	})

	t.Run("Schedule Format", func(t *testing.T) {
		d := &Draft{Platform: Twitter, Content: "hello", ScheduledAt: "tomorrow at noon"}
		if err := d.Validate(clock); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("malformed schedule should be rejected, got %v", err)
		}
	})

	t.Run("Visibility", func(t *testing.T) {
		d := &Draft{Platform: LinkedIn, Content: "hello", Visibility: VisibilityConnections}
		if err := d.Validate(clock); err != nil {
			t.Errorf("CONNECTIONS visibility should be accepted: %v", err)
		}

		d.Visibility = Visibility("friends")
		if err := d.Validate(clock); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("unknown visibility should be rejected, got %v", err)
		}
	})
}

func TestDefaultAvatar(t *testing.T) {
	if got := Twitter.DefaultAvatar("jack"); got != "https://unavatar.io/twitter/jack" {
		t.Errorf("unexpected avatar URL %s", got)
	}
	if got := Twitter.DefaultAvatar(""); got != "" {
		t.Errorf("empty username should produce empty avatar, got %s", got)
	}
}
