package domain

import "strings"

type AssetID string

type CredentialID string

type ProjectID string

type Asset struct {
	ID        AssetID
	Name      string
	IP        string
	ProjectID ProjectID
	Favorite  bool
}

// Label is the display name used in tabs and prompts. It falls back to the
// IP and then the raw id when the asset has no name.
func (a Asset) Label() string {
	switch {
	case strings.TrimSpace(a.Name) != "":
		return a.Name
	case strings.TrimSpace(a.IP) != "":
		return a.IP
	default:
		return string(a.ID)
	}
}

// Matches reports whether the asset matches a free-text filter on id, name
// or IP. An empty filter matches everything.
func (a Asset) Matches(filter string) bool {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return true
	}

	for _, field := range []string{string(a.ID), a.Name, a.IP} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

type AuthType string

const (
	AuthTypePassword AuthType = "password"
	AuthTypeKey      AuthType = "key"
)

type Credential struct {
	ID       CredentialID
	Name     string
	Username string
	AuthType AuthType
	AssetID  AssetID
}

type Project struct {
	ID   ProjectID
	Name string
}
