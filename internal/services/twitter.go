package services

import (
	"context"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/shared"
)

// TwitterConnector talks to the backend's /auth/twitter and /api/twitter endpoints.
type TwitterConnector struct {
	client *Client
}

// NewTwitterConnector creates a Twitter connector over the backend client.
func NewTwitterConnector(client *Client) *TwitterConnector {
	return &TwitterConnector{client: client}
}

func (t *TwitterConnector) Platform() models.Platform {
	return models.Twitter
}

func (t *TwitterConnector) AuthURL(userID string) string {
	return t.client.baseURL + "/auth/twitter?" + query("userId", userID)
}

// twitterAccount mirrors the account object of /api/twitter/check.
type twitterAccount struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
	ConnectedAt  string `json:"connectedAt"`
}

type twitterCheckResponse struct {
	Success   bool            `json:"success"`
	Connected bool            `json:"connected"`
	Account   *twitterAccount `json:"account"`
	Error     string          `json:"error"`
}

// Check queries /api/twitter/check. The account is synthesized with the
// unavatar fallback when the backend omits a profile image.
//
// Only a successful answer counts as "not connected"; a backend failure is
// an error so callers can fall back to cached state.
func (t *TwitterConnector) Check(ctx context.Context, userID string) (*models.Account, bool, error) {
	var resp twitterCheckResponse
	if err := t.client.GetJSON(ctx, "/api/twitter/check?"+query("userId", userID), &resp); err != nil {
		return nil, false, err
	}
	if !resp.Success {
		return nil, false, backendError(resp.Error, "twitter check failed")
	}

	if !resp.Connected || resp.Account == nil {
		return nil, false, nil
	}

	account := &models.Account{
		Platform:  models.Twitter,
		Connected: true,
		Username:  resp.Account.Username,
		Name:      resp.Account.Name,
		AvatarURL: resp.Account.ProfileImage,
	}
	if account.Name == "" {
		account.Name = account.Username
	}
	if account.AvatarURL == "" {
		account.AvatarURL = models.Twitter.DefaultAvatar(account.Username)
	}
	return account, true, nil
}

type twitterPostResponse struct {
	Success  bool   `json:"success"`
	TweetID  string `json:"tweetId"`
	TweetURL string `json:"tweetUrl"`
	Error    string `json:"error"`
}

// Publish posts the draft content via /api/twitter/post.
func (t *TwitterConnector) Publish(ctx context.Context, userID string, draft *models.Draft) (*models.PostRecord, error) {
	payload := map[string]string{"userId": userID, "content": draft.Content}

	var resp twitterPostResponse
	if err := t.client.PostJSONAs(ctx, "/api/twitter/post", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendError(resp.Error, "failed to post tweet")
	}

	record := models.NewPostRecord(draft, shared.NewClock())
	record.URL = resp.TweetURL
	if resp.TweetID != "" {
		record.ID = resp.TweetID
	}
	return &record, nil
}

type twitterDisconnectResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Disconnect revokes the Twitter connection via /api/twitter/disconnect.
func (t *TwitterConnector) Disconnect(ctx context.Context, userID string) error {
	payload := map[string]string{"userId": userID}

	var resp twitterDisconnectResponse
	if err := t.client.PostJSONAs(ctx, "/api/twitter/disconnect", payload, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return backendError(resp.Error, "failed to disconnect twitter")
	}
	return nil
}
