package services

import (
	"context"
	"fmt"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

// FacebookConnector talks to the backend's /social facebook endpoints.
//
// Publishing targets a managed page, so drafts must carry a page id.
type FacebookConnector struct {
	client *Client
}

// NewFacebookConnector creates a Facebook connector over the backend client.
func NewFacebookConnector(client *Client) *FacebookConnector {
	return &FacebookConnector{client: client}
}

func (f *FacebookConnector) Platform() models.Platform {
	return models.Facebook
}

func (f *FacebookConnector) AuthURL(userID string) string {
	return f.client.baseURL + "/social/facebook?" + query("userId", userID)
}

// Check resolves Facebook from the aggregate accounts endpoint.
func (f *FacebookConnector) Check(ctx context.Context, userID string) (*models.Account, bool, error) {
	return socialCheck(ctx, f.client, userID, models.Facebook)
}

// Disconnect revokes the Facebook connection.
func (f *FacebookConnector) Disconnect(ctx context.Context, userID string) error {
	return socialDisconnect(ctx, f.client, userID, models.Facebook)
}

type facebookPublishResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Publish sends a multipart page post to /social/publish/facebook.
//
// ScheduledAt is only appended when set; the backend treats a missing
// scheduleTime field as publish-now.
func (f *FacebookConnector) Publish(ctx context.Context, userID string, draft *models.Draft) (*models.PostRecord, error) {
	if draft.PageID == "" {
		return nil, fmt.Errorf("facebook posts require a page id: %w", shared.ErrInvalidInput)
	}

	fields := map[string]string{
		"pageId":  draft.PageID,
		"message": draft.Content,
		"userId":  userID,
	}
	if draft.ScheduledAt != "" {
		fields["scheduleTime"] = draft.ScheduledAt
	}

	files := map[string]string{}
	if draft.MediaPath != "" {
		files["image"] = draft.MediaPath
	}

	resp, err := f.client.PostForm(ctx, "/social/publish/facebook", fields, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var result facebookPublishResponse
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, backendError(result.Error, "failed to publish facebook post")
	}

	record := models.NewPostRecord(draft, shared.NewClock())
	return &record, nil
}

type facebookPagesResponse struct {
	Pages []struct {
		ProviderID string         `json:"providerId"`
		Meta       map[string]any `json:"meta"`
	} `json:"pages"`
}

// Pages lists the user's managed Facebook pages.
func (f *FacebookConnector) Pages(ctx context.Context, userID string) ([]models.Page, error) {
	var resp facebookPagesResponse
	if err := f.client.GetJSON(ctx, "/social/pages/"+userID, &resp); err != nil {
		return nil, err
	}

	pages := make([]models.Page, 0, len(resp.Pages))
	for _, p := range resp.Pages {
		page := models.Page{ProviderID: p.ProviderID}
		if name, ok := p.Meta["name"].(string); ok {
			page.Name = name
		}
		pages = append(pages, page)
	}
	return pages, nil
}

type facebookMetricsResponse struct {
	Success bool           `json:"success"`
	Metrics models.Metrics `json:"metrics"`
}

// Metrics fetches live insights for a page.
func (f *FacebookConnector) Metrics(ctx context.Context, pageID string) (models.Metrics, error) {
	var resp facebookMetricsResponse
	if err := f.client.GetJSON(ctx, "/social/metrics/"+pageID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendError("", "failed to fetch page metrics")
	}
	return resp.Metrics, nil
}
