package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSpinnerNamesTargetInFlight(t *testing.T) {
	t.Parallel()

	var stepped []int
	m := newConnectSpinnerModel([]string{"db-1", "db-2", "web-1"}, func(i int) tea.Cmd {
		stepped = append(stepped, i)
		return nil
	})
	m.Init()
	assert.Contains(t, m.View(), "Connecting to db-1 (1/3)...")

	next, cmd := m.Update(connectStepMsg{index: 0})
	m = next.(connectSpinnerModel)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Connecting to db-2 (2/3)...")

	next, _ = m.Update(connectStepMsg{index: 1, err: errors.New("db-2: connection refused")})
	m = next.(connectSpinnerModel)
	assert.Contains(t, m.View(), "Connecting to web-1 (3/3)...")

	next, cmd = m.Update(connectStepMsg{index: 2})
	m = next.(connectSpinnerModel)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Equal(t, []int{0, 1, 2}, stepped)
	assert.Equal(t, 2, m.opened())
	assert.Contains(t, m.View(), "opened 2 of 3 sessions")
}

func TestConnectSpinnerIgnoresStaleSteps(t *testing.T) {
	t.Parallel()

	m := newConnectSpinnerModel([]string{"db-1", "db-2"}, func(int) tea.Cmd { return nil })

	next, _ := m.Update(connectStepMsg{index: 1})
	m = next.(connectSpinnerModel)
	assert.Equal(t, 0, m.current)
	assert.Contains(t, m.View(), "Connecting to db-1 (1/2)...")
}

func TestRunConnectSpinnerJoinsFailures(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	failure := errors.New("db-2: connection refused")
	opened, err := runConnectSpinner(context.Background(), &out, []string{"db-1", "db-2"}, func(_ context.Context, i int) error {
		if i == 1 {
			return failure
		}
		return nil
	})

	assert.Equal(t, 1, opened)
	require.ErrorIs(t, err, failure)
	assert.Contains(t, out.String(), "opened 1 of 2 sessions")
}

func TestRunConnectSpinnerSingleTargetIsQuietOnSuccess(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	opened, err := runConnectSpinner(context.Background(), &out, []string{"db-1"}, func(context.Context, int) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, opened)
	assert.NotContains(t, out.String(), "opened")
}
