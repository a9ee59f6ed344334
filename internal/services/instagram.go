package services

import (
	"context"
	"fmt"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

// InstagramConnector talks to the backend's /social instagram endpoints.
//
// Instagram publishing always requires an image alongside the caption.
type InstagramConnector struct {
	client *Client
}

// NewInstagramConnector creates an Instagram connector over the backend client.
func NewInstagramConnector(client *Client) *InstagramConnector {
	return &InstagramConnector{client: client}
}

func (i *InstagramConnector) Platform() models.Platform {
	return models.Instagram
}

func (i *InstagramConnector) AuthURL(userID string) string {
	return i.client.baseURL + "/social/instagram/connect?" + query("userId", userID)
}

// Check resolves Instagram from the aggregate accounts endpoint.
func (i *InstagramConnector) Check(ctx context.Context, userID string) (*models.Account, bool, error) {
	return socialCheck(ctx, i.client, userID, models.Instagram)
}

// Disconnect revokes the Instagram connection.
func (i *InstagramConnector) Disconnect(ctx context.Context, userID string) error {
	return socialDisconnect(ctx, i.client, userID, models.Instagram)
}

type instagramPublishResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Publish sends a multipart post to /social/publish/instagram.
func (i *InstagramConnector) Publish(ctx context.Context, userID string, draft *models.Draft) (*models.PostRecord, error) {
	if draft.MediaPath == "" {
		return nil, fmt.Errorf("instagram posts require an image: %w", shared.ErrInvalidInput)
	}

	fields := map[string]string{
		"caption": draft.Content,
		"userId":  userID,
	}
	if draft.ScheduledAt != "" {
		fields["scheduleTime"] = draft.ScheduledAt
	}

	files := map[string]string{"image": draft.MediaPath}

	resp, err := i.client.PostForm(ctx, "/social/publish/instagram", fields, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var result instagramPublishResponse
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, backendError(result.Error, "failed to publish instagram post")
	}

	record := models.NewPostRecord(draft, shared.NewClock())
	return &record, nil
}

type instagramMetricsResponse struct {
	Account *socialAccount `json:"account"`
	Metrics models.Metrics `json:"metrics"`
}

// Metrics fetches follower metrics for the connected Instagram account.
func (i *InstagramConnector) Metrics(ctx context.Context, userID string) (*models.Account, models.Metrics, error) {
	var resp instagramMetricsResponse
	if err := i.client.GetJSON(ctx, "/social/instagram/metrics/"+userID, &resp); err != nil {
		return nil, nil, err
	}

	var account *models.Account
	if resp.Account != nil {
		account = &models.Account{
			Platform:  models.Instagram,
			Connected: true,
			Username:  resp.Account.metaString("username"),
			Name:      resp.Account.metaString("name"),
		}
	}
	return account, resp.Metrics, nil
}
