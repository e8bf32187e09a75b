package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/kmdb/kmdb-cli/internal/adapters/api/kmdb"
	tomlrepo "github.com/kmdb/kmdb-cli/internal/adapters/repo/toml"
	chainstore "github.com/kmdb/kmdb-cli/internal/adapters/secrets/chain"
	"github.com/kmdb/kmdb-cli/internal/application"
	"github.com/kmdb/kmdb-cli/internal/config"
	"github.com/kmdb/kmdb-cli/internal/logging"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/kmdb/kmdb-cli/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var errServerURLMissing = errors.New("server url not configured: set server.url in ~/.kmdb/config.toml or KMDB_SERVER_URL")

type app struct {
	settings   config.Settings
	logger     zerolog.Logger
	auth       *application.AuthService
	history    *application.HistoryService
	httpClient *http.Client
	clock      ports.Clock

	clientOnce sync.Once
	client     *kmdb.Client
	catalog    *application.CatalogService
	clientErr  error
}

func wireApp() (*app, error) {
	v := viper.New()
	settings, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, _, err := logging.Init(settings.Log.Path, settings.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(settings.Secrets.PassDir, settings.Secrets.Dir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	repo, err := tomlrepo.NewHistoryRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire history repository: %w", err)
	}

	clock := ports.SystemClock{}
	return &app{
		settings:   settings,
		logger:     logger,
		auth:       application.NewAuthService(secretStore, settings.Server.Profile),
		history:    application.NewHistoryService(repo, clock),
		httpClient: http.DefaultClient,
		clock:      clock,
	}, nil
}

// api returns the backend client, built on first use so commands that never
// reach the server work without a configured url.
func (a *app) api() (*kmdb.Client, error) {
	a.clientOnce.Do(func() {
		if a.settings.Server.URL == "" {
			a.clientErr = errServerURLMissing
			return
		}

		client, err := kmdb.NewClient(a.settings.Server.URL, a.auth.Token)
		if err != nil {
			a.clientErr = fmt.Errorf("wire kmdb client: %w", err)
			return
		}
		client.HTTPClient = a.httpClient
		client.RequestTimeout = a.settings.Server.RequestTimeout
		client.UserAgent = "kmdb-cli/" + version.Version

		a.client = client
		a.catalog = application.NewCatalogService(client, a.settings.Catalog.CacheTTL, a.clock)
	})

	return a.client, a.clientErr
}

func (a *app) catalogService() (*application.CatalogService, error) {
	if _, err := a.api(); err != nil {
		return nil, err
	}
	return a.catalog, nil
}
