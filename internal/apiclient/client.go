// Package apiclient talks to the coordination server's REST endpoints:
// roster snapshots, profile lookups and invitation requests.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"playmatch/lobby/internal/auth"
	"playmatch/lobby/internal/models"
)

var ErrUnauthorized = errors.New("unauthorized")

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.StatusCode)
	}
	return fmt.Sprintf("server answered %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client is the REST collaborator of the lobby.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Creds   *auth.Credentials
}

// New returns a Client for baseURL with a short request timeout.
func New(baseURL string, creds *auth.Credentials) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Creds:   creds,
	}
}

type invitationRequest struct {
	Username string          `json:"username"`
	GameType models.GameMode `json:"gameType,omitempty"`
}

// FetchRoster returns the full snapshot of known users.
func (c *Client) FetchRoster(ctx context.Context) ([]models.RosterEntry, error) {
	var body struct {
		Merged []models.RosterEntry `json:"merged"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/status", nil, &body); err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	return body.Merged, nil
}

// FetchProfile returns the public profile of username.
func (c *Client) FetchProfile(ctx context.Context, username string) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/users/profile/"+url.PathEscape(username), nil, &p); err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile %s: %w", username, err)
	}
	if p.Username == "" {
		p.Username = username
	}
	return p, nil
}

// SendInvitation challenges username to a game of mode.
func (c *Client) SendInvitation(ctx context.Context, username string, mode models.GameMode) error {
	if err := c.do(ctx, http.MethodPost, "/matchmaking/invitations/send", invitationRequest{username, mode}, nil); err != nil {
		return fmt.Errorf("send invitation to %s: %w", username, err)
	}
	return nil
}

// CancelInvitation withdraws the invitation sent to username.
func (c *Client) CancelInvitation(ctx context.Context, username string, mode models.GameMode) error {
	if err := c.do(ctx, http.MethodPost, "/matchmaking/invitations/cancel", invitationRequest{username, mode}, nil); err != nil {
		return fmt.Errorf("cancel invitation to %s: %w", username, err)
	}
	return nil
}

// AcceptInvitation accepts the invitation received from username and
// returns the id of the game session the server created.
func (c *Client) AcceptInvitation(ctx context.Context, username string) (string, error) {
	var body struct {
		GameID string `json:"gameId"`
	}
	if err := c.do(ctx, http.MethodPost, "/matchmaking/invitations/accept", invitationRequest{Username: username}, &body); err != nil {
		return "", fmt.Errorf("accept invitation from %s: %w", username, err)
	}
	if body.GameID == "" {
		return "", fmt.Errorf("accept invitation from %s: no game id in answer", username)
	}
	return body.GameID, nil
}

// RejectInvitation declines the invitation received from username.
func (c *Client) RejectInvitation(ctx context.Context, username string) error {
	if err := c.do(ctx, http.MethodPost, "/matchmaking/invitations/reject", invitationRequest{Username: username}, nil); err != nil {
		return fmt.Errorf("reject invitation from %s: %w", username, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Creds != nil {
		if token := c.Creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var decoded struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &decoded) == nil {
		switch m := decoded.Message.(type) {
		case string:
			msg = m
		case []any:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				parts = append(parts, fmt.Sprint(p))
			}
			msg = strings.Join(parts, "; ")
		default:
			if decoded.Error != "" {
				msg = decoded.Error
			}
		}
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}
