package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName        = "config"
	configType        = "toml"
	historyPathKey    = "history.path"
	historyLimitKey   = "history.limit"
	historyFileMode   = 0o600
	historyDirMode    = 0o700
	kmdbConfigDir     = ".kmdb"
	historyConfigFile = "history.toml"
	tempFilePattern   = ".history-*.toml.tmp"
	defaultLimit      = 50
)

// HistoryRepository keeps recent connection targets in a TOML file. Writes
// replace the file atomically and are serialized per path.
type HistoryRepository struct {
	historyPath string
	limit       int
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(cfg *viper.Viper) (*HistoryRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, kmdbConfigDir))
	cfg.SetDefault(historyPathKey, filepath.Join(homeDir, kmdbConfigDir, historyConfigFile))
	cfg.SetDefault(historyLimitKey, defaultLimit)

	if cfg.ConfigFileUsed() == "" {
		if err := cfg.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	historyPath := cfg.GetString(historyPathKey)
	if historyPath == "" {
		return nil, errors.New("history path is empty")
	}
	historyPath, err = normalizeHistoryPath(historyPath)
	if err != nil {
		return nil, err
	}

	limit := cfg.GetInt(historyLimitKey)
	if limit <= 0 {
		limit = defaultLimit
	}

	return &HistoryRepository{historyPath: historyPath, limit: limit, mu: lockForPath(historyPath)}, nil
}

func (r *HistoryRepository) Path() string {
	return r.historyPath
}

// Record upserts entry by target key and keeps only the most recent entries.
func (r *HistoryRepository) Record(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(entry)
	key := entry.Key()
	updated := false
	for i := range file.Entries {
		if fromSchema(file.Entries[i]).Key() == key {
			file.Entries[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Entries = append(file.Entries, encoded)
	}

	sort.SliceStable(file.Entries, func(i, j int) bool {
		return parseTime(file.Entries[i].LastUsedAt).After(parseTime(file.Entries[j].LastUsedAt))
	})
	if len(file.Entries) > r.limit {
		file.Entries = file.Entries[:r.limit]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *HistoryRepository) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(file.Entries))
	for _, entry := range file.Entries {
		entries = append(entries, fromSchema(entry))
	}

	return entries, nil
}

func (r *HistoryRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeHistoryPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *HistoryRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.historyPath, historyFileMode); err != nil {
		return fmt.Errorf("chmod history file: %w", err)
	}

	return nil
}

func toSchema(entry domain.HistoryEntry) entrySchema {
	return entrySchema{
		AssetID:      string(entry.Asset.ID),
		AssetName:    entry.Asset.Name,
		AssetIP:      entry.Asset.IP,
		ProjectID:    string(entry.Asset.ProjectID),
		CredentialID: string(entry.CredentialID),
		Username:     entry.Username,
		LastUsedAt:   formatTime(entry.LastUsedAt),
		UseCount:     entry.UseCount,
	}
}

func fromSchema(entry entrySchema) domain.HistoryEntry {
	return domain.HistoryEntry{
		Asset: domain.Asset{
			ID:        domain.AssetID(entry.AssetID),
			Name:      entry.AssetName,
			IP:        entry.AssetIP,
			ProjectID: domain.ProjectID(entry.ProjectID),
		},
		CredentialID: domain.CredentialID(entry.CredentialID),
		Username:     entry.Username,
		LastUsedAt:   parseTime(entry.LastUsedAt),
		UseCount:     entry.UseCount,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
