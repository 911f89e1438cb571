package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routerstore/internal/config"
	"github.com/vango-dev/routerstore/internal/errors"
)

const snapshotJSON = `{
  "url": "/teams/33/user/victor",
  "root": {
    "data": {"title": "app"},
    "queryParams": {"tab": "info"},
    "outlet": "primary",
    "children": [
      {
        "params": {"id": "33"},
        "outlet": "primary",
        "routeConfig": {"path": "teams/:id"},
        "children": [
          {"params": {"user": "victor"}, "outlet": "primary"}
        ]
      }
    ]
  }
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSerializeMinimalFromStdin(t *testing.T) {
	out, err := run(t, snapshotJSON, "serialize")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"url": "/teams/33/user/victor",
		"data": {"title": "app"},
		"queryParams": {"tab": "info"},
		"params": {"user": "victor"}
	}`, out)
}

func TestSerializeFullFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o644))

	out, err := run(t, "", "serialize", "--serializer", "full", "--indent", path)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  ")
	assert.Contains(t, out, `"teams/:id"`)
	assert.Contains(t, out, `"firstChild"`)
	assert.NotContains(t, out, `"parent"`)
}

func TestSerializeUsesConfiguredSerializer(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Serializer = "full"
	require.NoError(t, cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)))

	out, err := run(t, snapshotJSON, "serialize", "--config", filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, out, `"root"`)
}

func TestSerializeErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  string
	}{
		{"unknown serializer", snapshotJSON, []string{"--serializer", "tiny"}, "R010"},
		{"bad json", "{", nil, "R020"},
		{"missing root", `{"url":"/"}`, nil, "R002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"serialize"}, tt.args...)
			_, err := run(t, tt.stdin, args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.Code(err))
		})
	}
}

func TestSerializeMissingFile(t *testing.T) {
	_, err := run(t, "", "serialize", "does-not-exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open snapshot")
}

func TestSerializeMissingConfig(t *testing.T) {
	_, err := run(t, snapshotJSON, "serialize", "--config", filepath.Join(t.TempDir(), config.ConfigFileName))
	require.Error(t, err)
	assert.Equal(t, "R041", errors.Code(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)

	out, err = run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "routerstore "+version)
	assert.Contains(t, out, "Go version:")
}

func TestNewLogger(t *testing.T) {
	cfg := config.New()
	cfg.Log.Format = "json"
	var buf bytes.Buffer

	logger, err := newLogger(cfg, &buf)
	require.NoError(t, err)
	logger.Info("hello")
	assert.Contains(t, buf.String(), `"service":"routerstore"`)

	cfg.Log.Level = "loud"
	_, err = newLogger(cfg, &buf)
	assert.Error(t, err)
}

func TestNewServer(t *testing.T) {
	cfg := config.New()
	reg := prometheus.NewRegistry()

	srv, err := newServer(cfg, nil, nil, reg, reg)
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestNewTracerProvider(t *testing.T) {
	cfg := config.New()

	tp, shutdown, err := newTracerProvider(cfg)
	require.NoError(t, err)
	assert.Nil(t, tp)
	assert.NoError(t, shutdown(context.Background()))

	cfg.Tracing.Zipkin = "http://localhost:9411/api/v2/spans"
	tp, shutdown, err = newTracerProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, tp)
	assert.NoError(t, shutdown(context.Background()))

	cfg.Tracing.Zipkin = "://missing-scheme"
	_, _, err = newTracerProvider(cfg)
	assert.Equal(t, "R042", errors.Code(err))
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "", "config", "init", dir, "--serializer", "default")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, config.ConfigFileName))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.Serializer)

	_, err = run(t, "", "config", "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "", "config", "init", dir, "--force")
	require.NoError(t, err)
	cfg, err = config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "minimal", cfg.Serializer)
}

func TestErrorsCommand(t *testing.T) {
	out, err := run(t, "", "errors")
	require.NoError(t, err)
	assert.Contains(t, out, "R010: Unknown serializer\n")
	assert.Contains(t, out, "R033: Invalid archive id\n")

	out, err = run(t, "", "errors", "r032")
	require.NoError(t, err)
	assert.Contains(t, out, "R032: Archive not configured")
	assert.Contains(t, out, "Hint:")

	_, err = run(t, "", "errors", "R999")
	assert.Error(t, err)
}
