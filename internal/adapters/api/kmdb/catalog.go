package kmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

var _ ports.CatalogAPI = (*Client)(nil)

type assetPayload struct {
	ID        flexID `json:"id"`
	Name      string `json:"name"`
	IP        string `json:"ip"`
	ProjectID flexID `json:"project_id"`
}

type projectPayload struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type credentialPayload struct {
	ID       flexID `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	AuthType string `json:"auth_type"`
	AssetID  flexID `json:"asset_id"`
}

type favoritePayload struct {
	AssetID flexID `json:"asset_id"`
	ID      flexID `json:"id"`
}

func (c *Client) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	var list listEnvelope[assetPayload]
	if err := c.do(ctx, http.MethodGet, "/assets", nil, &list); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	assets := make([]domain.Asset, 0, len(list.Items))
	for _, item := range list.Items {
		assets = append(assets, domain.Asset{
			ID:        domain.AssetID(item.ID),
			Name:      item.Name,
			IP:        item.IP,
			ProjectID: domain.ProjectID(item.ProjectID),
		})
	}
	return assets, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var list listEnvelope[projectPayload]
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &list); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(list.Items))
	for _, item := range list.Items {
		projects = append(projects, domain.Project{ID: domain.ProjectID(item.ID), Name: item.Name})
	}
	return projects, nil
}

func (c *Client) ListCredentials(ctx context.Context) ([]domain.Credential, error) {
	var list listEnvelope[credentialPayload]
	if err := c.do(ctx, http.MethodGet, "/asset-credentials", nil, &list); err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	credentials := make([]domain.Credential, 0, len(list.Items))
	for _, item := range list.Items {
		credentials = append(credentials, domain.Credential{
			ID:       domain.CredentialID(item.ID),
			Name:     item.Name,
			Username: item.Username,
			AuthType: domain.AuthType(item.AuthType),
			AssetID:  domain.AssetID(item.AssetID),
		})
	}
	return credentials, nil
}

// ListFavorites accepts either favorite records or bare asset ids.
func (c *Client) ListFavorites(ctx context.Context) ([]domain.AssetID, error) {
	var list listEnvelope[favoriteItem]
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &list); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	ids := make([]domain.AssetID, 0, len(list.Items))
	for _, item := range list.Items {
		if item.id != "" {
			ids = append(ids, domain.AssetID(item.id))
		}
	}
	return ids, nil
}

func (c *Client) AddFavorite(ctx context.Context, id domain.AssetID) error {
	if err := c.do(ctx, http.MethodPost, "/assets/"+url.PathEscape(string(id))+"/favorite", nil, nil); err != nil {
		return fmt.Errorf("add favorite %s: %w", id, err)
	}
	return nil
}

func (c *Client) RemoveFavorite(ctx context.Context, id domain.AssetID) error {
	if err := c.do(ctx, http.MethodDelete, "/assets/"+url.PathEscape(string(id))+"/favorite", nil, nil); err != nil {
		return fmt.Errorf("remove favorite %s: %w", id, err)
	}
	return nil
}
