package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

// Client wraps the server's plain request/response endpoints: game listing,
// game creation and the OAuth login entry points. These are black boxes as
// far as the game view is concerned; none of them carry game state, which
// only ever arrives over the websocket.
type Client struct {
	BaseURL   string
	AuthToken string
	HTTP      *http.Client
}

func NewClient(baseURL, authToken string) *Client {
	return &Client{
		BaseURL:   baseURL,
		AuthToken: authToken,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

type CreateGameRequest struct {
	Name           string `json:"name"`
	WinnerCount    int    `json:"winner_count"`
	MaxPlayerCount int    `json:"max_player_count"`
	Subject        string `json:"subject"`
}

// ListGames fetches every game with its current state.
func (c *Client) ListGames(ctx context.Context) ([]*protocol.GameSnapshot, error) {
	var games []*protocol.GameSnapshot
	if err := c.do(ctx, http.MethodGet, "/games", nil, &games); err != nil {
		return nil, fmt.Errorf("unable to list games: %w", err)
	}
	return games, nil
}

// CreateGame asks the server to mint a new game with an AI-generated deck
// on the given subject.
func (c *Client) CreateGame(ctx context.Context, req CreateGameRequest) (*protocol.GameSnapshot, error) {
	var game protocol.GameSnapshot
	if err := c.do(ctx, http.MethodPost, "/games/new", req, &game); err != nil {
		return nil, fmt.Errorf("unable to create game: %w", err)
	}
	return &game, nil
}

// LoginURL is the browser entry point for an OAuth provider, with the
// loopback redirect advertised so the token lands back in the terminal.
func (c *Client) LoginURL(provider, redirectURI string) string {
	return fmt.Sprintf("%s/auth/%s?redirect_uri=%s", c.BaseURL, provider, redirectURI)
}

// Logout tells the server to invalidate the session. Best effort: the local
// token is discarded regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("unable to log out: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
