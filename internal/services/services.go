// package services defines interface Connector for the social platforms the
// backend can publish to
//
// Twitter, LinkedIn, Facebook, Instagram, YouTube
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

// Connector defines per-platform operations against the posting backend.
//
// The backend performs the actual OAuth round trip and holds the platform
// credentials; the client only starts the flow and calls the typed endpoints.
type Connector interface {
	// Platform returns the platform this connector serves.
	Platform() models.Platform

	// AuthURL returns the backend URL that starts the OAuth flow for userID.
	AuthURL(userID string) string

	// Check asks the backend whether the platform is connected.
	// The bool is the backend's explicit answer; a non-nil error means the
	// answer could not be obtained (transport, HTTP, or decode failure) and
	// callers should fall back to cached state.
	Check(ctx context.Context, userID string) (*models.Account, bool, error)

	// Disconnect revokes the platform connection on the backend.
	Disconnect(ctx context.Context, userID string) error

	// Publish sends a validated draft to the backend.
	Publish(ctx context.Context, userID string, draft *models.Draft) (*models.PostRecord, error)
}

// Registry holds one connector per platform.
type Registry struct {
	connectors map[models.Platform]Connector
}

// NewRegistry builds the default registry over a backend client.
func NewRegistry(client *Client) *Registry {
	r := &Registry{connectors: make(map[models.Platform]Connector)}
	for _, c := range []Connector{
		NewFacebookConnector(client),
		NewInstagramConnector(client),
		NewTwitterConnector(client),
		NewLinkedInConnector(client),
		NewYouTubeConnector(client),
	} {
		r.connectors[c.Platform()] = c
	}
	return r
}

// Get returns the connector for a platform.
func (r *Registry) Get(platform models.Platform) (Connector, error) {
	c, ok := r.connectors[platform]
	if !ok {
		return nil, fmt.Errorf("no connector for platform %s: %w", platform, shared.ErrInvalidArgument)
	}
	return c, nil
}

// All returns connectors in display order.
func (r *Registry) All() []Connector {
	var out []Connector
	for _, platform := range models.Platforms {
		if c, ok := r.connectors[platform]; ok {
			out = append(out, c)
		}
	}
	return out
}

// backendError formats a backend rejection, quoting the backend's own
// message verbatim when one is present.
func backendError(msg, fallback string) error {
	if msg == "" {
		msg = fallback
	}
	return fmt.Errorf("%s: %w", msg, shared.ErrBackendRejected)
}

// query builds an escaped query string from pairs.
func query(pairs ...string) string {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v.Encode()
}
