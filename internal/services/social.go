package services

import (
	"context"
	"fmt"

	"github.com/poojitha20043/postx/internal/models"
)

// socialAccount is one entry of the aggregate GET /social/:userId answer.
type socialAccount struct {
	Platform   string         `json:"platform"`
	ProviderID string         `json:"providerId"`
	Meta       map[string]any `json:"meta"`
}

func (a *socialAccount) metaString(key string) string {
	if a.Meta == nil {
		return ""
	}
	if v, ok := a.Meta[key].(string); ok {
		return v
	}
	return ""
}

type socialAccountsResponse struct {
	Success  bool            `json:"success"`
	Accounts []socialAccount `json:"accounts"`
	Error    string          `json:"error"`
}

// socialCheck resolves one platform from the aggregate accounts endpoint.
//
// Facebook, Instagram, and YouTube have no per-platform check route, so
// connection state comes from the shared listing.
func socialCheck(ctx context.Context, client *Client, userID string, platform models.Platform) (*models.Account, bool, error) {
	var resp socialAccountsResponse
	if err := client.GetJSON(ctx, "/social/"+userID, &resp); err != nil {
		return nil, false, err
	}
	if !resp.Success {
		return nil, false, backendError(resp.Error, platform.String()+" check failed")
	}

	for i := range resp.Accounts {
		entry := &resp.Accounts[i]
		if entry.Platform != platform.String() {
			continue
		}

		account := &models.Account{
			Platform:  platform,
			Connected: true,
			Username:  entry.metaString("username"),
			Name:      entry.metaString("name"),
			AvatarURL: entry.metaString("picture"),
		}
		if account.Name == "" {
			account.Name = account.Username
		}
		return account, true, nil
	}

	return nil, false, nil
}

type socialDisconnectResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Msg     string `json:"msg"`
}

// socialDisconnect revokes a /social platform connection.
func socialDisconnect(ctx context.Context, client *Client, userID string, platform models.Platform) error {
	payload := map[string]string{"userId": userID}

	var resp socialDisconnectResponse
	if err := client.PostJSONAs(ctx, "/social/"+platform.String()+"/disconnect", payload, &resp); err != nil {
		return err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = resp.Msg
		}
		return backendError(msg, fmt.Sprintf("failed to disconnect %s", platform))
	}
	return nil
}

// RemotePost is one entry of the backend's post history.
type RemotePost struct {
	ID        string `json:"_id"`
	Platform  string `json:"platform"`
	Message   string `json:"message"`
	ImageName string `json:"imageName"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type remotePostsResponse struct {
	Success bool         `json:"success"`
	Posts   []RemotePost `json:"posts"`
}

// Posts fetches the backend's post history for a user, newest first.
func (c *Client) Posts(ctx context.Context, userID string) ([]RemotePost, error) {
	var resp remotePostsResponse
	if err := c.GetJSON(ctx, "/social/posts/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendError("", "failed to fetch posts")
	}
	return resp.Posts, nil
}

type generateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// GenerateCaption asks the backend's AI endpoint for post copy.
func (c *Client) GenerateCaption(ctx context.Context, prompt string) (string, error) {
	payload := map[string]string{"prompt": prompt}

	var resp generateResponse
	if err := c.PostJSONAs(ctx, "/social/ai-generate", payload, &resp); err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", backendError(resp.Error, "caption generation returned no text")
	}
	return resp.Text, nil
}
