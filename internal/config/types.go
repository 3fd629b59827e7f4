// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// GameVariantLive is the production game client.
	GameVariantLive GameVariant = "live"
	// GameVariantPTS is the public test server client.
	GameVariantPTS GameVariant = "pts"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultDebounce is the default quiet period before a watch rescan.
	DefaultDebounce = 500 * time.Millisecond
)

var (
	// ErrInvalidGameVariant is returned when a GameVariant value is not recognized.
	ErrInvalidGameVariant = errors.New("invalid game variant")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidExcludePattern is returned when an exclude entry is not a valid glob.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
	// ErrInvalidDebounce is returned when the watch debounce is not positive.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// GameVariant selects the game client folder under Documents.
	GameVariant string

	// InvalidGameVariantError is returned when a GameVariant value is not recognized.
	// It wraps ErrInvalidGameVariant for errors.Is() compatibility.
	InvalidGameVariantError struct {
		Value GameVariant
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// GameVariant selects the live or PTS AddOns folder.
		GameVariant GameVariant `json:"game_variant" mapstructure:"game_variant"`
		// AddonsDir overrides the Documents based AddOns folder when non-empty.
		AddonsDir string `json:"addons_dir" mapstructure:"addons_dir"`
		// Exclude lists doublestar patterns pruned from every scan.
		Exclude []string `json:"exclude" mapstructure:"exclude"`
		// UI configures output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Watch configures the list --watch mode.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// WatchConfig configures rescans on file changes.
	WatchConfig struct {
		// Debounce is the quiet period after the last change before rescanning.
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
		// ClearScreen clears the terminal before each rescan.
		ClearScreen bool `json:"clear_screen" mapstructure:"clear_screen"`
	}
)

// String returns the variant name.
func (g GameVariant) String() string { return string(g) }

// Validate returns nil if the variant is known, or an *InvalidGameVariantError.
func (g GameVariant) Validate() error {
	switch g {
	case GameVariantLive, GameVariantPTS:
		return nil
	default:
		return &InvalidGameVariantError{Value: g}
	}
}

// IsValid returns whether the GameVariant is one of the defined variants,
// and a list of validation errors if it is not.
func (g GameVariant) IsValid() (bool, []error) {
	if err := g.Validate(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidGameVariantError) Error() string {
	return fmt.Sprintf("invalid game variant %q (valid: live, pts)", e.Value)
}

// Unwrap returns ErrInvalidGameVariant so callers can use errors.Is for programmatic detection.
func (e *InvalidGameVariantError) Unwrap() error { return ErrInvalidGameVariant }

// String returns the color scheme name.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is for programmatic detection.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields. CUE already enforces
// most of these for file input; environment overrides bypass the schema.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.GameVariant.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for i, pat := range c.Exclude {
		if strings.TrimSpace(pat) == "" || !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("%w: exclude[%d] %q", ErrInvalidExcludePattern, i, pat))
		}
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDebounce, c.Watch.Debounce))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the config sentinel and the field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GameVariant: GameVariantLive,
		Exclude:     []string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}
