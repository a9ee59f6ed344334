// package models defines the data model for the posting client
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/poojitha20043/postx/internal/shared"
)

// Platform identifies a supported social network.
type Platform string

const (
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	Twitter   Platform = "twitter"
	LinkedIn  Platform = "linkedin"
	YouTube   Platform = "youtube"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{Facebook, Instagram, Twitter, LinkedIn, YouTube}

// ScheduleLayout is the wire format for scheduled post times.
const ScheduleLayout = "2006-01-02T15:04"

// MinScheduleLead is the minimum delay between now and a scheduled post.
const MinScheduleLead = 10 * time.Minute

func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the platform name for user-facing output.
func (p Platform) DisplayName() string {
	switch p {
	case Twitter:
		return "Twitter / X"
	case LinkedIn:
		return "LinkedIn"
	case YouTube:
		return "YouTube"
	default:
		name := string(p)
		if name == "" {
			return name
		}
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

// CharLimit returns the maximum post length for the platform, or 0 when unlimited.
func (p Platform) CharLimit() int {
	switch p {
	case Twitter:
		return 280
	case LinkedIn:
		return 3000
	default:
		return 0
	}
}

// DefaultAvatar returns a fallback avatar URL for a connected account.
func (p Platform) DefaultAvatar(username string) string {
	if username == "" {
		return ""
	}
	return "https://unavatar.io/" + string(p) + "/" + username
}

// ParsePlatform converts a user-supplied name into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "facebook", "fb":
		return Facebook, nil
	case "instagram", "ig":
		return Instagram, nil
	case "twitter", "x":
		return Twitter, nil
	case "linkedin", "li":
		return LinkedIn, nil
	case "youtube", "yt":
		return YouTube, nil
	default:
		return "", fmt.Errorf("unknown platform %q: %w", s, shared.ErrInvalidArgument)
	}
}

// Account represents the connection state of a platform account.
type Account struct {
	Platform  Platform  `json:"platform"`
	Connected bool      `json:"connected"`
	Username  string    `json:"username,omitempty"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	PageCount int       `json:"page_count,omitempty"`
	CachedAt  time.Time `json:"cached_at,omitempty"`
	Stale     bool      `json:"stale,omitempty"`
}

// Page represents a managed Facebook page.
type Page struct {
	ProviderID string `json:"providerId"`
	Name       string `json:"name"`
}

// Metrics is the free-form insight payload the backend returns per page
// or account. Keys vary by platform, so no fixed schema is imposed.
type Metrics map[string]any

// Visibility controls who can see a LinkedIn post.
type Visibility string

const (
	VisibilityPublic      Visibility = "PUBLIC"
	VisibilityConnections Visibility = "CONNECTIONS"
)

// ParseVisibility converts a user-supplied value into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "PUBLIC":
		return VisibilityPublic, nil
	case "CONNECTIONS":
		return VisibilityConnections, nil
	default:
		return "", fmt.Errorf("unknown visibility %q: %w", s, shared.ErrInvalidArgument)
	}
}

// Draft is a post composed locally but not yet published.
type Draft struct {
	Platform    Platform
	Content     string
	ScheduledAt string // ScheduleLayout, empty to publish immediately
	Visibility  Visibility
	MediaPath   string
	PageID      string
}

// Validate checks the draft against platform rules.
//
// The schedule boundary is inclusive: a post exactly MinScheduleLead
// from now is accepted.
func (d *Draft) Validate(clock shared.Clock) error {
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("post content is empty: %w", shared.ErrInvalidInput)
	}

	if limit := d.Platform.CharLimit(); limit > 0 && len([]rune(d.Content)) > limit {
		return fmt.Errorf("post exceeds %d character limit for %s (%d): %w",
			limit, d.Platform, len([]rune(d.Content)), shared.ErrInvalidInput)
	}

	if d.Platform == LinkedIn && d.Visibility != "" {
		if _, err := ParseVisibility(string(d.Visibility)); err != nil {
			return err
		}
	}

	if d.ScheduledAt != "" {
		at, err := time.ParseInLocation(ScheduleLayout, d.ScheduledAt, time.Local)
		if err != nil {
			return fmt.Errorf("invalid schedule time %q (want YYYY-MM-DDTHH:MM): %w", d.ScheduledAt, shared.ErrInvalidInput)
		}

		earliest := clock.Now().Add(MinScheduleLead)
		if at.Before(earliest) {
			return fmt.Errorf("schedule time must be at least 10 minutes from now: %w", shared.ErrInvalidInput)
		}
	}

	return nil
}

// PostRecord captures a publish acknowledged by the backend.
type PostRecord struct {
	ID           string     `json:"id"`
	Platform     Platform   `json:"platform"`
	Content      string     `json:"content"`
	URL          string     `json:"url,omitempty"`
	Visibility   Visibility `json:"visibility,omitempty"`
	ScheduledFor string     `json:"scheduled_for,omitempty"`
	PostedAt     time.Time  `json:"posted_at"`
}

// NewPostRecord builds a record for a draft accepted by the backend.
func NewPostRecord(d *Draft, clock shared.Clock) PostRecord {
	return PostRecord{
		ID:           shared.GenerateID(),
		Platform:     d.Platform,
		Content:      d.Content,
		Visibility:   d.Visibility,
		ScheduledFor: d.ScheduledAt,
		PostedAt:     clock.Now(),
	}
}
