package services

import (
	"context"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

// linkedInStockAvatar is shown when the backend has no profile image.
const linkedInStockAvatar = "https://cdn-icons-png.flaticon.com/512/174/174857.png"

// LinkedInConnector talks to the backend's /auth/linkedin and /api/linkedin endpoints.
type LinkedInConnector struct {
	client *Client
}

// NewLinkedInConnector creates a LinkedIn connector over the backend client.
func NewLinkedInConnector(client *Client) *LinkedInConnector {
	return &LinkedInConnector{client: client}
}

func (l *LinkedInConnector) Platform() models.Platform {
	return models.LinkedIn
}

func (l *LinkedInConnector) AuthURL(userID string) string {
	return l.client.baseURL + "/auth/linkedin?" + query("userId", userID)
}

// linkedInAccount mirrors the account object of /api/linkedin/check.
type linkedInAccount struct {
	Name         string `json:"name"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Headline     string `json:"headline"`
	ProfileImage string `json:"profileImage"`
	ConnectedAt  string `json:"connectedAt"`
}

type linkedInCheckResponse struct {
	Success   bool             `json:"success"`
	Connected bool             `json:"connected"`
	Account   *linkedInAccount `json:"account"`
	Error     string           `json:"error"`
}

// Check queries /api/linkedin/check. A backend failure is an error, not a
// "not connected" answer.
func (l *LinkedInConnector) Check(ctx context.Context, userID string) (*models.Account, bool, error) {
	var resp linkedInCheckResponse
	if err := l.client.GetJSON(ctx, "/api/linkedin/check?"+query("userId", userID), &resp); err != nil {
		return nil, false, err
	}
	if !resp.Success {
		return nil, false, backendError(resp.Error, "linkedin check failed")
	}

	if !resp.Connected || resp.Account == nil {
		return nil, false, nil
	}

	account := &models.Account{
		Platform:  models.LinkedIn,
		Connected: true,
		Name:      resp.Account.Name,
		AvatarURL: resp.Account.ProfileImage,
	}
	if account.Name == "" {
		account.Name = resp.Account.FirstName + " " + resp.Account.LastName
	}
	if account.AvatarURL == "" {
		account.AvatarURL = linkedInStockAvatar
	}
	return account, true, nil
}

type linkedInPostResponse struct {
	Success bool   `json:"success"`
	PostID  string `json:"postId"`
	PostURL string `json:"postUrl"`
	Error   string `json:"error"`
}

// Publish posts the draft via /api/linkedin/post with its visibility.
func (l *LinkedInConnector) Publish(ctx context.Context, userID string, draft *models.Draft) (*models.PostRecord, error) {
	visibility := draft.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	payload := map[string]string{
		"userId":     userID,
		"content":    draft.Content,
		"visibility": string(visibility),
	}

	var resp linkedInPostResponse
	if err := l.client.PostJSONAs(ctx, "/api/linkedin/post", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendError(resp.Error, "failed to post to linkedin")
	}

	record := models.NewPostRecord(draft, shared.NewClock())
	record.URL = resp.PostURL
	record.Visibility = visibility
	if resp.PostID != "" {
		record.ID = resp.PostID
	}
	return &record, nil
}

type linkedInDisconnectResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Disconnect revokes the LinkedIn connection via /api/linkedin/disconnect.
func (l *LinkedInConnector) Disconnect(ctx context.Context, userID string) error {
	payload := map[string]string{"userId": userID}

	var resp linkedInDisconnectResponse
	if err := l.client.PostJSONAs(ctx, "/api/linkedin/disconnect", payload, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return backendError(resp.Error, "failed to disconnect linkedin")
	}
	return nil
}
