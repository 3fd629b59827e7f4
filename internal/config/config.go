// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "addonscan"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variable overrides (ADDONSCAN_GAME_VARIANT, ...).
	EnvPrefix = "ADDONSCAN"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the addonscan directory under the platform config base:
// %APPDATA% on Windows, ~/Library/Application Support on macOS and
// $XDG_CONFIG_HOME (or ~/.config) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	base, err := configBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

func configBase() (string, error) {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming"), nil
	}
	if runtime.GOOS != "darwin" {
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support"), nil
	}
	return filepath.Join(home, ".config"), nil
}

// ConfigFilePath returns the path of the config file inside ConfigDir.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the file it was read from
// (empty when only defaults and environment applied).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("game_variant", defaults.GameVariant)
	v.SetDefault("addons_dir", defaults.AddonsDir)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce.String())
	v.SetDefault("watch.clear_screen", defaults.Watch.ClearScreen)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'addonscan config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides never pass through the CUE schema.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check ADDONSCAN_* environment variables for typos").
			WithSuggestion("Valid game variants are 'live' and 'pts'").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the config file to load: the explicit path, then
// config.cue in the config directory, then config.cue in the current
// directory. An empty result means defaults only.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'addonscan config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}

	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, nil
	}

	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}

	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Fields are optional, so the unified
// value is decoded into a map rather than the Config struct; Viper layers it
// over the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	values, err := cueutil.DecodeString[map[string]any](configSchema, data, "#Config", cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration unless a config file
// already exists. It returns the file path and whether it was written.
func CreateDefaultConfig() (path string, created bool, err error) {
	path, err = ConfigFilePath()
	if err != nil {
		return "", false, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return path, false, nil
	}
	if err := writeConfigFile(path, DefaultConfig()); err != nil {
		return "", false, err
	}
	return path, true, nil
}

func writeConfigFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE renders cfg as a config.cue document that validates against
// the embedded schema. Empty optional fields are omitted.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// addonscan configuration file\n\n")

	fmt.Fprintf(&sb, "game_variant: %q\n", cfg.GameVariant)
	if cfg.AddonsDir != "" {
		fmt.Fprintf(&sb, "addons_dir: %q\n", cfg.AddonsDir)
	}

	if len(cfg.Exclude) > 0 {
		sb.WriteString("\nexclude: [\n")
		for _, pat := range cfg.Exclude {
			fmt.Fprintf(&sb, "\t%q,\n", pat)
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce.String())
	fmt.Fprintf(&sb, "\tclear_screen: %v\n", cfg.Watch.ClearScreen)
	sb.WriteString("}\n")

	return sb.String()
}
