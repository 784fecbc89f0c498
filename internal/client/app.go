// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-build-keeper/internal/adapter"
	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/tui"
	"github.com/MKhiriev/go-build-keeper/models"
)

// App is the command line client. It owns the cobra command tree and the
// client configuration loaded before any command runs.
type App struct {
	buildInfo models.AppBuildInfo

	stdout io.Writer
	stderr io.Writer

	environ    func() map[string]string
	newAdapter func(cfg *config.ClientConfig, useGRPC bool, log *logger.Logger) (adapter.ServerAdapter, error)
	inspect    func(cfg models.ResolvedConfig, fingerprint string, out io.Writer) error

	// populated by the root command's PersistentPreRunE
	cfg    *config.ClientConfig
	logger *logger.Logger
}

// Option customises an [App].
type Option func(*App)

// WithOutput redirects command output and logs.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithEnviron replaces the process environment used for the environment
// fragment.
func WithEnviron(environ map[string]string) Option {
	return func(a *App) {
		a.environ = func() map[string]string { return environ }
	}
}

// WithServerAdapter makes remote commands use sa instead of dialling the
// configured server.
func WithServerAdapter(sa adapter.ServerAdapter) Option {
	return func(a *App) {
		a.newAdapter = func(*config.ClientConfig, bool, *logger.Logger) (adapter.ServerAdapter, error) {
			return sa, nil
		}
	}
}

// WithInspector replaces the interactive inspector started by `inspect`.
func WithInspector(fn func(cfg models.ResolvedConfig, fingerprint string, out io.Writer) error) Option {
	return func(a *App) {
		a.inspect = fn
	}
}

// NewApp constructs the client application.
func NewApp(buildInfo models.AppBuildInfo, opts ...Option) *App {
	a := &App{
		buildInfo:  buildInfo,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		environ:    processEnviron,
		newAdapter: dialServer,
		inspect: func(cfg models.ResolvedConfig, fingerprint string, out io.Writer) error {
			return tui.Inspect(cfg, fingerprint, out)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the command named by the process arguments.
func (a *App) Run(ctx context.Context) error {
	return a.Execute(ctx, os.Args[1:])
}

// Execute runs the command tree with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	cmd := a.newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd.ExecuteContext(ctx)
}

func dialServer(cfg *config.ClientConfig, useGRPC bool, log *logger.Logger) (adapter.ServerAdapter, error) {
	if useGRPC {
		return adapter.NewGRPCServerAdapter(cfg.Adapter, log)
	}
	return adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
}

func processEnviron() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
