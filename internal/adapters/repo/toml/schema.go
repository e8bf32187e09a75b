package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Entries []entrySchema `toml:"entries"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// entrySchema never carries a password.
type entrySchema struct {
	AssetID      string `toml:"asset_id"`
	AssetName    string `toml:"asset_name,omitempty"`
	AssetIP      string `toml:"asset_ip,omitempty"`
	ProjectID    string `toml:"project_id,omitempty"`
	CredentialID string `toml:"credential_id,omitempty"`
	Username     string `toml:"username,omitempty"`
	LastUsedAt   string `toml:"last_used_at"`
	UseCount     int    `toml:"use_count"`
}
