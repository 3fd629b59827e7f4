// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/addonscan/addonscan/internal/config"
	"github.com/addonscan/addonscan/internal/discovery"
	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and delegate
	// through its service interfaces.
	App struct {
		Config      ConfigProvider
		Scans       ScanService
		Diagnostics DiagnosticRenderer
		logger      *log.Logger
		colorScheme config.ColorScheme
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		Scans       ScanService
		Diagnostics DiagnosticRenderer
		Logger      *log.Logger
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ScanRequest captures the inputs of one scan.
	ScanRequest struct {
		// Root is the folder to scan.
		Root string
		// Exclude lists doublestar patterns pruned from the walk.
		Exclude []string
		// Logger receives operator notes from the scanner. Nil means slog.Default().
		Logger *slog.Logger
		// Checks replaces the validation checks. Empty means discovery.DefaultChecks.
		Checks []discovery.Check
	}

	// ScanService scans an AddOns folder. Implementations must not write to
	// stdout or stderr; diagnostics are returned on the result.
	ScanService interface {
		Scan(ctx context.Context, req ScanRequest) (*discovery.Result, error)
	}

	// DiagnosticRenderer renders structured diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []discovery.Diagnostic, stderr io.Writer)
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Loaded, error)
	}

	appScanService struct{}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Scans == nil {
		deps.Scans = &appScanService{}
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
			Level:  log.InfoLevel,
		})
	}

	return &App{
		Config:      deps.Config,
		Scans:       deps.Scans,
		Diagnostics: deps.Diagnostics,
		logger:      deps.Logger,
		colorScheme: config.ColorSchemeAuto,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}, nil
}

// Scan runs a scanner over req.Root.
func (s *appScanService) Scan(ctx context.Context, req ScanRequest) (*discovery.Result, error) {
	opts := []discovery.Option{
		discovery.WithExclude(req.Exclude...),
		discovery.WithValidator(discovery.NewValidator(req.Checks...)),
	}
	if req.Logger != nil {
		opts = append(opts, discovery.WithLogger(req.Logger))
	}

	scanner, err := discovery.New(types.FilesystemPath(req.Root), opts...)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("scan add-ons").
			WithResource(req.Root).
			WithSuggestion("Check the exclude patterns in your config file").
			WithSuggestion("Patterns use doublestar syntax, for example \"**/Libs/**\"").
			Wrap(err).
			BuildError()
	}

	result, err := scanner.Scan(ctx)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("scan add-ons").
			WithResource(req.Root).
			WithSuggestion("Check that the AddOns folder is a readable directory").
			Wrap(err).
			BuildError()
	}

	return result, nil
}

// setVerbose switches the CLI logger to debug output.
func (app *App) setVerbose() {
	app.logger.SetLevel(log.DebugLevel)
}

func (app *App) verbose() bool {
	return app.logger.GetLevel() <= log.DebugLevel
}

// scanLogger returns the logger handed to the scanner. Scanner notes are
// duplicated in the rendered diagnostics, so they are only logged in verbose
// mode.
func (app *App) scanLogger() *slog.Logger {
	if !app.verbose() {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(app.logger)
}

// report renders the help attached to a ServiceError and passes err through.
func (app *App) report(err error) error {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(app.stderr, svcErr, string(app.colorScheme))
	}
	return err
}

// loadConfig loads configuration for a command. A broken explicit --config file
// aborts the command; any other failure falls back to defaults with a warning so
// scanning keeps working on fresh installs.
func (app *App) loadConfig(ctx context.Context, configPath string) (*config.Config, error) {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err == nil {
		return loaded.Config, nil
	}

	if configPath != "" {
		return nil, newServiceError(err, issue.ConfigLoadFailedId)
	}

	fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, app.verbose()))
	return config.DefaultConfig(), nil
}

// Render writes structured diagnostics to stderr with lipgloss styling.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []discovery.Diagnostic, stderr io.Writer) {
	for _, diag := range diags {
		var prefix string
		switch diag.Severity {
		case discovery.SeverityError:
			prefix = ErrorStyle.Render("error")
		case discovery.SeverityWarning:
			prefix = WarningStyle.Render("warning")
		default:
			prefix = VerboseStyle.Render("info")
		}

		if diag.Path != "" {
			_, _ = fmt.Fprintf(stderr, "%s: %s (%s)\n", prefix, diag.Message, diag.Path)
			continue
		}

		_, _ = fmt.Fprintf(stderr, "%s: %s\n", prefix, diag.Message)
	}
}
