package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		geom Geometry
		want bool
	}{
		{name: "standard", geom: Geometry{Cols: 80, Rows: 24}, want: true},
		{name: "zero cols", geom: Geometry{Cols: 0, Rows: 24}, want: false},
		{name: "zero rows", geom: Geometry{Cols: 80, Rows: 0}, want: false},
		{name: "negative", geom: Geometry{Cols: -1, Rows: -1}, want: false},
		{name: "one by one", geom: Geometry{Cols: 1, Rows: 1}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.geom.Valid())
		})
	}
}

func TestGeometryClampCapsLargeTerminals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Geometry{Cols: MaxCols, Rows: MaxRows}, Geometry{Cols: 900, Rows: 900}.Clamp())
	assert.Equal(t, Geometry{Cols: 80, Rows: 24}, Geometry{Cols: 80, Rows: 24}.Clamp())
	assert.Equal(t, "80x24", Geometry{Cols: 80, Rows: 24}.String())
}

func TestAssetLabelFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "srv-1", Asset{ID: "7", Name: "srv-1", IP: "10.0.0.7"}.Label())
	assert.Equal(t, "10.0.0.7", Asset{ID: "7", IP: "10.0.0.7"}.Label())
	assert.Equal(t, "7", Asset{ID: "7"}.Label())
}

func TestAssetMatchesIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	asset := Asset{ID: "42", Name: "DB-Primary", IP: "10.1.2.3"}
	assert.True(t, asset.Matches(""))
	assert.True(t, asset.Matches("db-pri"))
	assert.True(t, asset.Matches("10.1."))
	assert.True(t, asset.Matches("42"))
	assert.False(t, asset.Matches("web"))
}

func TestTargetValidateRequiresIdentity(t *testing.T) {
	t.Parallel()

	err := Target{Asset: Asset{ID: "1"}}.Validate()
	require.ErrorIs(t, err, ErrAuthRequired)

	assert.NoError(t, Target{Asset: Asset{ID: "1"}, CredentialID: "cred-42"}.Validate())
	assert.NoError(t, Target{Asset: Asset{ID: "1"}, Username: "root"}.Validate())
	assert.ErrorContains(t, Target{Username: "root"}.Validate(), "asset id is required")
}

func TestConnectionRejectedErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("connect srv-1: %w", &ConnectionRejectedError{Status: 403, Message: "permission denied"})
	assert.ErrorIs(t, err, ErrConnectionRejected)
	assert.Contains(t, err.Error(), "permission denied")

	var rejected *ConnectionRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 403, rejected.Status)

	assert.Equal(t, "connection rejected: HTTP 502", (&ConnectionRejectedError{Status: 502}).Error())
}

func TestHistoryEntryKeyAndTarget(t *testing.T) {
	t.Parallel()

	entry := HistoryEntry{
		Asset:        Asset{ID: "1", Name: "srv-1"},
		CredentialID: "cred-42",
		LastUsedAt:   time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "1|cred-42|", entry.Key())
	assert.Equal(t, Target{Asset: entry.Asset, CredentialID: "cred-42"}, entry.Target())
}
