package terminal

import (
	"github.com/kmdb/kmdb-cli/internal/adapters/recording"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
)

type Factory struct {
	ScrollbackBytes int
	// RecordDir enables asciinema recordings when set.
	RecordDir string
	Clock     ports.Clock
	Logger    zerolog.Logger
}

var _ ports.TerminalFactory = (*Factory)(nil)

func (f *Factory) NewTerminal(label string) (ports.Terminal, error) {
	logger := f.Logger.With().Str("terminal", label).Logger()

	var cast *recording.Cast
	if f.RecordDir != "" {
		created, path, err := recording.Create(f.RecordDir, label, f.Clock)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", path).Msg("recording session")
		cast = created
	}

	return New(label, f.ScrollbackBytes, cast, logger), nil
}
