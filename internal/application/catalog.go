package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

const defaultCatalogTTL = time.Minute

type AssetQuery struct {
	FavoritesOnly bool
	ProjectID     domain.ProjectID
	Filter        string
}

type cached[T any] struct {
	value     T
	fetchedAt time.Time
	ok        bool
}

func (c cached[T]) fresh(now time.Time, ttl time.Duration) bool {
	return c.ok && now.Sub(c.fetchedAt) < ttl
}

// CatalogService is the read-mostly view of assets, projects, credentials
// and favorites. Lists are fetched once per TTL and filtered locally.
type CatalogService struct {
	api   ports.CatalogAPI
	ttl   time.Duration
	clock ports.Clock

	mu          sync.Mutex
	assets      cached[[]domain.Asset]
	projects    cached[[]domain.Project]
	credentials cached[[]domain.Credential]
	favorites   cached[[]domain.AssetID]
}

func NewCatalogService(api ports.CatalogAPI, ttl time.Duration, clock ports.Clock) *CatalogService {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &CatalogService{api: api, ttl: ttl, clock: clock}
}

// Assets lists assets with favorites first, then by label.
func (s *CatalogService) Assets(ctx context.Context, query AssetQuery) ([]domain.Asset, error) {
	assets, err := fetchCached(ctx, s, &s.assets, s.api.ListAssets)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	favorites, err := fetchCached(ctx, s, &s.favorites, s.api.ListFavorites)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	favoriteSet := make(map[domain.AssetID]struct{}, len(favorites))
	for _, id := range favorites {
		favoriteSet[id] = struct{}{}
	}

	out := make([]domain.Asset, 0, len(assets))
	for _, asset := range assets {
		_, asset.Favorite = favoriteSet[asset.ID]
		if query.FavoritesOnly && !asset.Favorite {
			continue
		}
		if query.ProjectID != "" && asset.ProjectID != query.ProjectID {
			continue
		}
		if !asset.Matches(query.Filter) {
			continue
		}
		out = append(out, asset)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Favorite != out[j].Favorite {
			return out[i].Favorite
		}
		return strings.ToLower(out[i].Label()) < strings.ToLower(out[j].Label())
	})
	return out, nil
}

// ResolveAsset finds an asset by id, then by exact name, then by IP.
func (s *CatalogService) ResolveAsset(ctx context.Context, ref string) (domain.Asset, error) {
	ref = strings.TrimSpace(ref)
	assets, err := s.Assets(ctx, AssetQuery{})
	if err != nil {
		return domain.Asset{}, err
	}

	for _, asset := range assets {
		if string(asset.ID) == ref {
			return asset, nil
		}
	}

	matchers := []func(domain.Asset) bool{
		func(a domain.Asset) bool { return strings.EqualFold(a.Name, ref) },
		func(a domain.Asset) bool { return a.IP == ref },
	}
	for _, match := range matchers {
		var found []domain.Asset
		for _, asset := range assets {
			if match(asset) {
				found = append(found, asset)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return domain.Asset{}, fmt.Errorf("%q matches %d assets: %w", ref, len(found), domain.ErrAmbiguousAsset)
		}
	}

	return domain.Asset{}, fmt.Errorf("%q: %w", ref, domain.ErrAssetNotFound)
}

func (s *CatalogService) Projects(ctx context.Context) ([]domain.Project, error) {
	projects, err := fetchCached(ctx, s, &s.projects, s.api.ListProjects)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Credentials lists credentials usable for an asset. Credentials bound to
// no asset are usable everywhere. An empty asset id lists all of them.
func (s *CatalogService) Credentials(ctx context.Context, assetID domain.AssetID) ([]domain.Credential, error) {
	credentials, err := fetchCached(ctx, s, &s.credentials, s.api.ListCredentials)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	if assetID == "" {
		return credentials, nil
	}

	out := make([]domain.Credential, 0, len(credentials))
	for _, credential := range credentials {
		if credential.AssetID == "" || credential.AssetID == assetID {
			out = append(out, credential)
		}
	}
	return out, nil
}

func (s *CatalogService) SetFavorite(ctx context.Context, id domain.AssetID, favorite bool) error {
	var err error
	if favorite {
		err = s.api.AddFavorite(ctx, id)
	} else {
		err = s.api.RemoveFavorite(ctx, id)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.favorites = cached[[]domain.AssetID]{}
	s.mu.Unlock()
	return nil
}

func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets = cached[[]domain.Asset]{}
	s.projects = cached[[]domain.Project]{}
	s.credentials = cached[[]domain.Credential]{}
	s.favorites = cached[[]domain.AssetID]{}
}

func fetchCached[T any](ctx context.Context, s *CatalogService, slot *cached[[]T], fetch func(context.Context) ([]T, error)) ([]T, error) {
	s.mu.Lock()
	if slot.fresh(s.clock.Now(), s.ttl) {
		value := append([]T(nil), slot.value...)
		s.mu.Unlock()
		return value, nil
	}
	s.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	*slot = cached[[]T]{value: value, fetchedAt: s.clock.Now(), ok: true}
	s.mu.Unlock()

	return append([]T(nil), value...), nil
}
