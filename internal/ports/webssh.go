package ports

import (
	"context"

	"github.com/kmdb/kmdb-cli/internal/domain"
)

type ConnectRequest struct {
	AssetID      domain.AssetID
	CredentialID domain.CredentialID
	Username     string
	Password     string
	Geometry     domain.Geometry
}

type ConnectResponse struct {
	SessionID domain.SessionID
	// SocketURL is the server-provided socket address, possibly containing a
	// {session_id} placeholder. Empty means the default route is used.
	SocketURL string
}

// WebSSHAPI is the REST half of the terminal protocol.
type WebSSHAPI interface {
	Connect(ctx context.Context, req ConnectRequest) (ConnectResponse, error)
	DeleteSession(ctx context.Context, id domain.SessionID) error
	// SocketURL resolves the socket address for a session, including the
	// bearer token query parameter.
	SocketURL(ctx context.Context, resp ConnectResponse) (string, error)
}

type CatalogAPI interface {
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListCredentials(ctx context.Context) ([]domain.Credential, error)
	ListFavorites(ctx context.Context) ([]domain.AssetID, error)
	AddFavorite(ctx context.Context, id domain.AssetID) error
	RemoveFavorite(ctx context.Context, id domain.AssetID) error
}
