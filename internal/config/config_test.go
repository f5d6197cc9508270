package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/parse", cfg.Service.ParseURL())
	assert.Equal(t, 10*time.Second, cfg.Service.Timeout.Duration)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "astview.toml", `
[service]
base_url = "http://parser.internal:7000/"
timeout = "2s"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://parser.internal:7000/parse", cfg.Service.ParseURL())
	assert.Equal(t, 2*time.Second, cfg.Service.Timeout.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched sections keep defaults
	assert.Equal(t, "127.0.0.1:8080", cfg.Web.ListenAddr)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "astview.yaml", `
service:
  base_url: http://localhost:9000
  parse_path: /api/parse
  timeout: 500ms
web:
  listen_addr: 0.0.0.0:9090
  compression: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/parse", cfg.Service.ParseURL())
	assert.Equal(t, 500*time.Millisecond, cfg.Service.Timeout.Duration)
	assert.Equal(t, "0.0.0.0:9090", cfg.Web.ListenAddr)
	assert.False(t, cfg.Web.Compression)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad url", "a.toml", "[service]\nbase_url = \"not a url\"\n"},
		{"bad path", "b.toml", "[service]\nparse_path = \"parse\"\n"},
		{"bad level", "c.toml", "[log]\nlevel = \"loud\"\n"},
		{"bad duration", "d.toml", "[service]\ntimeout = \"soon\"\n"},
		{"negative timeout", "e.toml", "[service]\ntimeout = \"-1s\"\n"},
		{"unknown format", "f.json", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1h30m")))
	assert.Equal(t, 90*time.Minute, d.Duration)

	b, err := Duration{30 * time.Second}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "30s", string(b))
}
