// Package cli implements billsctl, a command-line client for the bills list.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/mmynk/billed/internal/bills"
	"github.com/mmynk/billed/internal/config"
	"github.com/mmynk/billed/internal/i18n"
	"github.com/mmynk/billed/internal/storage/remote"
	"github.com/mmynk/billed/pkg/logging"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	Server     string
	Token      string
	Locale     string
	Timeout    time.Duration
	LogLevel   string
	LogFormat  string
}

// session carries initialized dependencies through the command tree.
type session struct {
	config *config.Config
	logger *slog.Logger
	client *remote.Client
	locale language.Tag
}

type sessionKey struct{}

// NewRootCommand creates the billsctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "billsctl",
		Short: "Browse expense bills on a billed server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initSession(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./billed.yaml)")
	pf.StringVar(&opts.Server, "server", "http://localhost:8080", "billed server URL")
	pf.StringVar(&opts.Token, "token", "", "session token from Login")
	pf.StringVar(&opts.Locale, "locale", "fr", "display locale (fr, en)")
	pf.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "request timeout")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.LogFormat, "log-format", "text", "log format (text, json)")

	cmd.AddCommand(
		newListCmd(),
		newNewCmd(),
		newProofCmd(),
	)
	return cmd
}

func initSession(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	s := &session{
		config: cfg,
		logger: logger,
		client: remote.New(nil, cfg.Client.ServerURL, cfg.Client.Token),
		locale: i18n.ParseLocale(cfg.Locale),
	}
	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
	return nil
}

func getSession(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok {
		return nil, errors.New("command session not initialized")
	}
	return s, nil
}

// container builds a bills list reading from the remote server.
func (s *session) container(opts ...bills.Option) *bills.Bills {
	opts = append([]bills.Option{
		bills.WithLogger(s.logger),
		bills.WithLocale(s.locale),
	}, opts...)
	return bills.New(s.client, opts...)
}

func (s *session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.Client.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.Client.Timeout)
}
