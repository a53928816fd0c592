package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"app": {"version": "0.9.0", "access_token": "jwt", "log_file": "c.log"},
		"storage": {"db": {"dsn": "catalog.db"}},
		"server": {"http_address": "localhost:8081"},
		"adapter": {
			"kind": "postgres",
			"http_address": "https://remote/rest/v1",
			"api_key": "anon",
			"postgres_dsn": "postgres://x",
			"geocoder_address": "http://geo",
			"request_timeout": "12s"
		},
		"workers": {
			"sync_interval": "3m",
			"connectivity_interval": "5s",
			"address_concurrency": 6,
			"prefetch_delay": "2s",
			"page_size": 25,
			"download_batch_size": 50
		}
	}`), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "0.9.0", cfg.App.Version)
	assert.Equal(t, "jwt", cfg.App.AccessToken)
	assert.Equal(t, "c.log", cfg.App.LogFile)
	assert.Equal(t, "catalog.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres", cfg.Adapter.Kind)
	assert.Equal(t, "postgres://x", cfg.Adapter.PostgresDSN)
	assert.Equal(t, 12*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 3*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 5*time.Second, cfg.Workers.ConnectivityInterval)
	assert.Equal(t, 6, cfg.Workers.AddressConcurrency)
	assert.Equal(t, 2*time.Second, cfg.Workers.PrefetchDelay)
	assert.Equal(t, 25, cfg.Workers.PageSize)
	assert.Equal(t, 50, cfg.Workers.DownloadBatchSize)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "nanoseconds", input: `1000000000`, want: time.Second},
		{name: "bad string", input: `"later"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(45 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"45s"`, string(data))
}
