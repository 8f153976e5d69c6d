package twitch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nicklaw5/helix/v2"
)

// Client adapts the Helix library to the watcher's API interface. All calls
// use an app access token; refreshing that token is the TokenRefresher's job.
type Client struct {
	helix *helix.Client
}

func NewClient(clientID, clientSecret, accessToken string) (*Client, error) {
	h, err := helix.NewClient(&helix.Options{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		AppAccessToken: accessToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create helix client: %w", err)
	}
	return &Client{helix: h}, nil
}

var _ API = (*Client)(nil)

// SetAppToken swaps in a fresh app access token for subsequent requests.
func (c *Client) SetAppToken(token string) {
	c.helix.SetAppAccessToken(token)
}

// RequestAppToken performs a client credentials grant and returns the new
// token with its lifetime.
func (c *Client) RequestAppToken(ctx context.Context) (string, time.Duration, error) {
	resp, err := c.helix.RequestAppAccessToken(nil)
	if err != nil {
		return "", 0, fmt.Errorf("app token request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("app token request failed: %d %s", resp.StatusCode, resp.ErrorMessage)
	}
	return resp.Data.AccessToken, time.Duration(resp.Data.ExpiresIn) * time.Second, nil
}

func (c *Client) UsersByLogin(ctx context.Context, logins []string) (map[string]string, error) {
	resp, err := c.helix.GetUsers(&helix.UsersParams{Logins: logins})
	if err != nil {
		return nil, fmt.Errorf("users lookup failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("users lookup failed: %d %s", resp.StatusCode, resp.ErrorMessage)
	}

	users := make(map[string]string, len(resp.Data.Users))
	for _, u := range resp.Data.Users {
		users[strings.ToLower(u.Login)] = u.ID
	}
	return users, nil
}

func (c *Client) StreamsByUserID(ctx context.Context, userIDs []string) (map[string]StreamInfo, error) {
	resp, err := c.helix.GetStreams(&helix.StreamsParams{UserIDs: userIDs})
	if err != nil {
		return nil, fmt.Errorf("streams lookup failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("streams lookup failed: %d %s", resp.StatusCode, resp.ErrorMessage)
	}

	streams := make(map[string]StreamInfo, len(resp.Data.Streams))
	for _, s := range resp.Data.Streams {
		streams[strings.ToLower(s.UserLogin)] = StreamInfo{
			UserLogin:   s.UserLogin,
			UserName:    s.UserName,
			Title:       s.Title,
			GameName:    s.GameName,
			ViewerCount: s.ViewerCount,
			StartedAt:   s.StartedAt,
		}
	}
	return streams, nil
}
