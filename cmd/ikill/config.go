package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ikill/cmd/ikill/finder"
	"ikill/cmd/ikill/notify"
	"ikill/cmd/ikill/snapshot"
)

// appName is the single source of truth for the application name.
const appName = "ikill"

const configFileName = "config.yml"

var envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"

var ErrInvalidConfig = errors.New("invalid config")

// Notification modes.
const (
	notifyDesktop = "desktop"
	notifyStdout  = "stdout"
	notifyNone    = "none"
)

// Config is the on-disk configuration. Flags override every field.
type Config struct {
	Finder        string        `yaml:"finder"`
	Signal        string        `yaml:"signal"`
	Notify        string        `yaml:"notify"`
	Confirm       bool          `yaml:"confirm"`
	Options       string        `yaml:"options,omitempty"`
	NotifyTimeout time.Duration `yaml:"notify_timeout"`
}

func defaultConfig() Config {
	return Config{
		Finder:        string(finder.KindTUI),
		Signal:        string(snapshot.SignalTerm),
		Notify:        notifyDesktop,
		NotifyTimeout: notify.DefaultTimeout,
	}
}

// resolveConfigDir returns the base config directory for the application.
// Priority: $IKILL_CONFIG_DIR > $XDG_CONFIG_HOME/ikill > ~/.config/ikill
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads path, or the default location when path is empty.
// A missing default file yields the defaults; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := resolveConfigDir()
		if err != nil {
			return Config{}, err
		}
		path = filepath.Join(dir, configFileName)
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := decodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// decodeConfig parses YAML on top of the defaults. Unknown keys are errors.
func decodeConfig(r io.Reader) (Config, error) {
	cfg := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := finder.ParseKind(c.Finder); err != nil {
		return fmt.Errorf("%w: finder: %w", ErrInvalidConfig, err)
	}
	if _, err := snapshot.ParseSignal(c.Signal); err != nil {
		return fmt.Errorf("%w: signal: %w", ErrInvalidConfig, err)
	}
	switch c.Notify {
	case notifyDesktop, notifyStdout, notifyNone:
	default:
		return fmt.Errorf("%w: notify: unknown mode %q (available: %s, %s, %s)",
			ErrInvalidConfig, c.Notify, notifyDesktop, notifyStdout, notifyNone)
	}
	if c.NotifyTimeout < 0 {
		return fmt.Errorf("%w: notify_timeout must not be negative", ErrInvalidConfig)
	}
	if _, err := finder.SplitOptions(c.Options); err != nil {
		return fmt.Errorf("%w: options: %w", ErrInvalidConfig, err)
	}
	return nil
}

// overrideTokens joins the option strings in precedence order: the flag,
// then the environment, then the config file. Resolution takes the first
// match, so earlier sources win.
func overrideTokens(flagValue, envValue, fileValue string) ([]string, error) {
	var tokens []string
	for _, s := range []string{flagValue, envValue, fileValue} {
		t, err := finder.SplitOptions(s)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t...)
	}
	return tokens, nil
}
