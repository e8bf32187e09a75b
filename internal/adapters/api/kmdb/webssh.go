package kmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

var _ ports.WebSSHAPI = (*Client)(nil)

type connectRequest struct {
	AssetID      string `json:"asset_id"`
	CredentialID string `json:"credential_id,omitempty"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	Cols         int    `json:"cols"`
	Rows         int    `json:"rows"`
}

type connectResponse struct {
	SessionID flexID `json:"session_id"`
	WSURL     string `json:"ws_url"`
}

func (c *Client) Connect(ctx context.Context, req ports.ConnectRequest) (ports.ConnectResponse, error) {
	body := connectRequest{
		AssetID:      string(req.AssetID),
		CredentialID: string(req.CredentialID),
		Username:     req.Username,
		Password:     req.Password,
		Cols:         req.Geometry.Cols,
		Rows:         req.Geometry.Rows,
	}

	var resp connectResponse
	if err := c.do(ctx, http.MethodPost, "/webssh/connect", body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return ports.ConnectResponse{}, &domain.ConnectionRejectedError{Status: apiErr.Status, Message: apiErr.Message}
		}
		return ports.ConnectResponse{}, err
	}
	if resp.SessionID == "" {
		return ports.ConnectResponse{}, errors.New("connect response missing session_id")
	}

	return ports.ConnectResponse{
		SessionID: domain.SessionID(resp.SessionID),
		SocketURL: strings.TrimSpace(resp.WSURL),
	}, nil
}

func (c *Client) DeleteSession(ctx context.Context, id domain.SessionID) error {
	return c.do(ctx, http.MethodDelete, "/webssh/"+url.PathEscape(string(id)), nil, nil)
}

// SocketURL builds the socket address for a session. A server-provided URL
// wins; relative URLs resolve against the API base.
func (c *Client) SocketURL(ctx context.Context, resp ports.ConnectResponse) (string, error) {
	base, err := parseBaseURL(c.BaseURL)
	if err != nil {
		return "", err
	}

	raw := resp.SocketURL
	if raw == "" {
		raw = base.String() + "/webssh/ws/{session_id}"
	}
	raw = strings.ReplaceAll(raw, "{session_id}", url.PathEscape(string(resp.SessionID)))

	target, err := base.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse socket url: %w", err)
	}

	switch target.Scheme {
	case "http":
		target.Scheme = "ws"
	case "https":
		target.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported socket url scheme %q", target.Scheme)
	}

	token, err := c.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("load api token: %w", err)
	}
	query := target.Query()
	query.Set("token", token)
	target.RawQuery = query.Encode()

	return target.String(), nil
}
