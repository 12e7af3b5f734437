package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"ikill/cmd/ikill/finder"
)

func TestDecodeConfig(t *testing.T) {
	t.Run("empty input yields defaults", func(t *testing.T) {
		cfg, err := decodeConfig(strings.NewReader(""))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if cfg != defaultConfig() {
			t.Fatalf("got %+v, want defaults", cfg)
		}
	})

	t.Run("fields override defaults", func(t *testing.T) {
		in := "finder: prompt\nsignal: SIGKILL\nnotify: stdout\nconfirm: true\nnotify_timeout: 5s\noptions: --tac\n"
		cfg, err := decodeConfig(strings.NewReader(in))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if cfg.Finder != "prompt" || cfg.Signal != "SIGKILL" || cfg.Notify != notifyStdout || !cfg.Confirm {
			t.Fatalf("unexpected config %+v", cfg)
		}
		if cfg.NotifyTimeout != 5*time.Second {
			t.Fatalf("timeout = %v, want 5s", cfg.NotifyTimeout)
		}
		if cfg.Options != "--tac" {
			t.Fatalf("options = %q", cfg.Options)
		}
	})

	t.Run("starter file decodes", func(t *testing.T) {
		cfg, err := decodeConfig(bytes.NewReader(defaultConfigYAML))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if cfg != defaultConfig() {
			t.Fatalf("starter file diverges from defaults: %+v", cfg)
		}
	})

	tests := []struct {
		name string
		in   string
	}{
		{"unknown key", "colour: red\n"},
		{"unknown finder", "finder: dmenu\n"},
		{"unknown signal", "signal: hup\n"},
		{"unknown notify mode", "notify: email\n"},
		{"negative timeout", "notify_timeout: -1s\n"},
		{"unbalanced options", "options: \"--bind 'ctrl-a\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeConfig(strings.NewReader(tt.in))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing default file", func(t *testing.T) {
		t.Setenv(envConfigDir, t.TempDir())
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg != defaultConfig() {
			t.Fatalf("got %+v, want defaults", cfg)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("err = %v, want not exist", err)
		}
	})

	t.Run("default location", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(envConfigDir, dir)
		if err := os.WriteFile(filepath.Join(dir, configFileName), []byte("signal: kill\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Signal != "kill" {
			t.Fatalf("signal = %q, want kill", cfg.Signal)
		}
	})
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("explicit env wins", func(t *testing.T) {
		t.Setenv(envConfigDir, "/tmp/ikill-test")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		if err != nil || dir != "/tmp/ikill-test" {
			t.Fatalf("dir = %q, err = %v", dir, err)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		if err != nil || dir != filepath.Join("/tmp/xdg", appName) {
			t.Fatalf("dir = %q, err = %v", dir, err)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/tmp/home")
		dir, err := resolveConfigDir()
		if err != nil || dir != filepath.Join("/tmp/home", ".config", appName) {
			t.Fatalf("dir = %q, err = %v", dir, err)
		}
	})
}

func TestOverrideTokens(t *testing.T) {
	tokens, err := overrideTokens("--height=20%", "--height=30% --tac", "--height=40% --margin=1")
	if err != nil {
		t.Fatalf("overrideTokens: %v", err)
	}
	opts := finder.Resolve(tokens)
	if opts.Height != "20%" {
		t.Fatalf("height = %q, flag should win", opts.Height)
	}
	if !opts.Tac {
		t.Fatal("env --tac should apply")
	}
	if opts.Margin != "1" {
		t.Fatalf("margin = %q, file value should fill the gap", opts.Margin)
	}

	if _, err := overrideTokens("'open", "", ""); err == nil {
		t.Fatal("expected split error")
	}
}

func TestRunFlagsApply(t *testing.T) {
	var f runFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"--signal", "kill", "--confirm"}); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.Finder = "prompt"
	if err := f.apply(&cfg, fs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Signal != "kill" || !cfg.Confirm {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Finder != "prompt" {
		t.Fatalf("unset flag overrode finder: %q", cfg.Finder)
	}

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	f = runFlags{}
	f.register(fs)
	if err := fs.Parse([]string{"--notify", "pager"}); err != nil {
		t.Fatal(err)
	}
	cfg = defaultConfig()
	if err := f.apply(&cfg, fs); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestWriteInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	if err := writeInitFile(path, defaultConfigYAML, false); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writeInitFile(path, []byte("x"), false); err == nil {
		t.Fatal("expected refusal without force")
	}
	if err := writeInitFile(path, []byte("signal: kill\n"), true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "signal: kill\n" {
		t.Fatalf("content = %q", got)
	}
}
