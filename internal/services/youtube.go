package services

import (
	"context"
	"fmt"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

// YouTubeConnector covers the connect-only YouTube integration.
//
// The backend exposes an OAuth entry point and reports the connection in
// the aggregate accounts listing, but has no publish or disconnect route.
type YouTubeConnector struct {
	client *Client
}

// NewYouTubeConnector creates a YouTube connector over the backend client.
func NewYouTubeConnector(client *Client) *YouTubeConnector {
	return &YouTubeConnector{client: client}
}

func (y *YouTubeConnector) Platform() models.Platform {
	return models.YouTube
}

func (y *YouTubeConnector) AuthURL(userID string) string {
	return y.client.baseURL + "/social/youtube/auth?" + query("user", userID)
}

// Check resolves YouTube from the aggregate accounts endpoint.
func (y *YouTubeConnector) Check(ctx context.Context, userID string) (*models.Account, bool, error) {
	return socialCheck(ctx, y.client, userID, models.YouTube)
}

// Disconnect attempts the shared /social disconnect route.
func (y *YouTubeConnector) Disconnect(ctx context.Context, userID string) error {
	return socialDisconnect(ctx, y.client, userID, models.YouTube)
}

// Publish is not supported for YouTube.
func (y *YouTubeConnector) Publish(ctx context.Context, userID string, draft *models.Draft) (*models.PostRecord, error) {
	return nil, fmt.Errorf("youtube publishing: %w", shared.ErrNotImplemented)
}
