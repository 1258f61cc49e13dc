package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/luastd/log"
)

func TestLogConfigScan(t *testing.T) {
	t.Cleanup(func() {
		log.Config(log.WithDefaults(os.Stderr))
	})

	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "separate values",
			args:   []string{"--log-level", "debug", "--log-format", "json", "find", "print"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "attached values",
			args:   []string{"--log-level=trace", "--no-log-pretty", "--log-caller=true"},
			level:  "trace",
			caller: true,
		},
		{
			name:   "missing value",
			args:   []string{"--log-level", "--log-caller"},
			pretty: true,
			caller: true,
		},
		{
			name:   "invalid boolean ignored",
			args:   []string{"--log-pretty=maybe"},
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format ||
				f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("scan() = %+v", f)
			}
		})
	}
}

func TestLogConfigScan_ConfiguresLogger(t *testing.T) {
	t.Cleanup(func() {
		log.Config(log.WithDefaults(os.Stderr))
	})

	var f logConfig
	f.scan([]string{"--log-level=error", "--log-format=json"})

	if got := log.Default().Level(); got != log.LevelError {
		t.Errorf("Level() = %v, want %v", got, log.LevelError)
	}

	if got := log.Default().Format(); got != log.FormatJSON {
		t.Errorf("Format() = %v, want %v", got, log.FormatJSON)
	}
}

func TestUserDir(t *testing.T) {
	dir := userDir(func() (string, error) { return "/var/conf", nil }, ".config")
	if want := filepath.Join("/var/conf", basePrefix()); dir != want {
		t.Errorf("userDir() = %q, want %q", dir, want)
	}

	t.Setenv("HOME", "/home/lua")

	dir = userDir(func() (string, error) { return "", errors.New("unset") }, ".cache")
	if want := filepath.Join("/home/lua", ".cache", basePrefix()); dir != want {
		t.Errorf("userDir() = %q, want %q", dir, want)
	}

	if basePrefix() == "" {
		t.Error("basePrefix() is empty")
	}
}
