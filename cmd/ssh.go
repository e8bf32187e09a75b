package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kmdb/kmdb-cli/internal/adapters/render/listing"
	"github.com/kmdb/kmdb-cli/internal/adapters/terminal"
	"github.com/kmdb/kmdb-cli/internal/adapters/transport/websocket"
	"github.com/kmdb/kmdb-cli/internal/adapters/viewport/tty"
	"github.com/kmdb/kmdb-cli/internal/application"
	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/spf13/cobra"
)

type sshOptions struct {
	credential    string
	username      string
	passwordStdin bool
	count         int
	recordDir     string
	last          bool
}

func newSSHCmd(app *app) *cobra.Command {
	var opts sshOptions

	cmd := &cobra.Command{
		Use:   "ssh [asset...]",
		Short: "Open WebSSH sessions in a multiplexed terminal",
		Long: `Open one WebSSH session per asset (id, name or IP) and multiplex them in this terminal.
Without an asset an interactive picker is shown.

Once connected, press the prefix key (default Ctrl-]) followed by:
  1-9  switch to session     n/p  next/previous session
  c    clone active session  x    close active session
  l    list sessions         q    close all and quit
Press the prefix twice to send it to the remote shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSH(cmd, app, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.credential, "credential", "", "Credential id to log in with")
	cmd.Flags().StringVar(&opts.username, "username", "", "Username to log in with instead of a stored credential")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "Read the password for --username from stdin")
	cmd.Flags().IntVar(&opts.count, "count", 1, "Number of sessions to open per asset")
	cmd.Flags().StringVar(&opts.recordDir, "record", "", "Record every session as an asciinema cast in this directory")
	cmd.Flags().BoolVar(&opts.last, "last", false, "Reconnect to the most recent connection")
	cmd.MarkFlagsMutuallyExclusive("credential", "username")
	cmd.MarkFlagsMutuallyExclusive("credential", "password-stdin")

	return cmd
}

func runSSH(cmd *cobra.Command, app *app, args []string, opts sshOptions) error {
	if opts.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", opts.count)
	}
	if opts.last && len(args) > 0 {
		return errors.New("--last cannot be combined with asset arguments")
	}
	if opts.passwordStdin && len(args) == 0 && !opts.last {
		return errors.New("--password-stdin needs an asset argument; the picker reads stdin")
	}

	prefix, ok := application.ParsePrefixKey(app.settings.WebSSH.PrefixKey)
	if !ok {
		return fmt.Errorf("invalid webssh.prefix_key %q", app.settings.WebSSH.PrefixKey)
	}

	client, err := app.api()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	targets, err := resolveTargets(ctx, cmd, app, args, opts)
	if err != nil {
		return err
	}

	recordDir := opts.recordDir
	if recordDir == "" {
		recordDir = app.settings.WebSSH.RecordDir
	}

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	logger := app.logger

	viewport := tty.New(out, fdOf(out), logger)
	registry := application.NewRegistry()
	transport := application.NewTransport(application.TransportConfig{
		API:    client,
		Dialer: &websocket.Dialer{HTTPClient: app.httpClient, Logger: logger},
		Terminals: &terminal.Factory{
			ScrollbackBytes: app.settings.WebSSH.ScrollbackBytes,
			RecordDir:       recordDir,
			Clock:           app.clock,
			Logger:          logger,
		},
		Registry:        registry,
		TeardownTimeout: app.settings.WebSSH.TeardownTimeout,
		Logger:          logger,
	})
	mux := application.NewMultiplexer(application.MultiplexerConfig{
		Transport: transport,
		Registry:  registry,
		Binding:   application.NewBinding(viewport, app.settings.WebSSH.ResizeDebounce, logger),
		Viewport:  viewport,
		Notifier:  viewport,
		History:   app.history,
		Keymap:    application.NewKeymap(prefix),
		Render:    listing.SessionList,
		Logger:    logger,
	})

	runErr := make(chan error, 1)
	go func() { runErr <- mux.Run(ctx) }()

	opened, openErr := runConnectSpinner(ctx, cmd.ErrOrStderr(), connectLabels(targets), func(ctx context.Context, i int) error {
		_, err := mux.Open(ctx, targets[i], false)
		return err
	})
	if opened == 0 {
		mux.Quit()
		<-runErr
		if openErr == nil {
			openErr = errors.New("no session opened")
		}
		return openErr
	}
	if openErr != nil {
		logger.Warn().Err(openErr).Int("opened", opened).Msg("some sessions failed to open")
		viewport.Notify(ports.NoticeError, openErr.Error())
	}

	restore, err := tty.MakeRaw(fdOf(in))
	if err != nil {
		mux.Quit()
		<-runErr
		return fmt.Errorf("switch terminal to raw mode: %w", err)
	}
	restoreOnce := sync.OnceFunc(restore)
	defer restoreOnce()

	viewport.Watch(ctx)
	go func() {
		if err := tty.ReadKeys(ctx, in, func(chunk []byte) { mux.HandleKeys(ctx, chunk) }); err != nil {
			logger.Warn().Err(err).Msg("read keyboard input")
		}
	}()

	err = <-runErr
	restoreOnce()

	waitCtx, cancel := context.WithTimeout(context.Background(), app.settings.WebSSH.TeardownTimeout)
	defer cancel()
	if waitErr := mux.Wait(waitCtx); waitErr != nil {
		logger.Warn().Err(waitErr).Msg("teardown notifications still pending")
	}

	return err
}

// resolveTargets turns arguments and flags into one target per session to
// open, in order.
func resolveTargets(ctx context.Context, cmd *cobra.Command, app *app, args []string, opts sshOptions) ([]domain.Target, error) {
	var password string
	if opts.passwordStdin {
		read, err := readLine(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read password from stdin: %w", err)
		}
		password = read
	}

	if opts.last {
		entry, err := app.history.Last(ctx)
		if err != nil {
			return nil, err
		}
		target := entry.Target()
		if target.CredentialID == "" {
			target.Password = password
		}
		return repeatTargets([]domain.Target{target}, opts.count), nil
	}

	catalog, err := app.catalogService()
	if err != nil {
		return nil, err
	}

	var assets []domain.Asset
	if len(args) == 0 {
		all, err := catalog.Assets(ctx, application.AssetQuery{})
		if err != nil {
			return nil, err
		}
		picked, err := listing.PickAsset(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), all, "")
		if err != nil {
			return nil, err
		}
		assets = append(assets, picked)
	}
	for _, ref := range args {
		asset, err := catalog.ResolveAsset(ctx, ref)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	targets := make([]domain.Target, 0, len(assets))
	for _, asset := range assets {
		target := domain.Target{Asset: asset}
		switch {
		case opts.credential != "":
			target.CredentialID = domain.CredentialID(opts.credential)
		case opts.username != "":
			target.Username = opts.username
			target.Password = password
		default:
			credentials, err := catalog.Credentials(ctx, asset.ID)
			if err != nil {
				return nil, err
			}
			if len(credentials) != 1 {
				return nil, fmt.Errorf("%s: %w: %d credentials available, pass --credential or --username", asset.Label(), domain.ErrAuthRequired, len(credentials))
			}
			target.CredentialID = credentials[0].ID
		}
		targets = append(targets, target)
	}

	return repeatTargets(targets, opts.count), nil
}

func repeatTargets(targets []domain.Target, count int) []domain.Target {
	out := make([]domain.Target, 0, len(targets)*count)
	for _, target := range targets {
		for range count {
			out = append(out, target)
		}
	}
	return out
}

func connectLabels(targets []domain.Target) []string {
	labels := make([]string, len(targets))
	for i, target := range targets {
		labels[i] = target.Asset.Label()
	}
	return labels
}

// fdOf returns the descriptor behind v, or -1 when v is not backed by a file.
func fdOf(v any) int {
	if f, ok := v.(interface{ Fd() uintptr }); ok {
		return int(f.Fd())
	}
	return -1
}
