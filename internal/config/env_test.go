// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllGroups(t *testing.T) {
	t.Setenv("APP_VERSION", "1.2.3")
	t.Setenv("APP_ACCESS_TOKEN", "token")
	t.Setenv("APP_LOG_FILE", "/tmp/client.log")
	t.Setenv("STORAGE_DB_DATABASE_URI", "file:catalog.db")
	t.Setenv("SERVER_ADDRESS", "localhost:8080")
	t.Setenv("ADAPTER_KIND", "postgres")
	t.Setenv("ADAPTER_ADDRESS", "https://remote/rest/v1")
	t.Setenv("ADAPTER_API_KEY", "anon")
	t.Setenv("ADAPTER_POSTGRES_DSN", "postgres://user@host/db")
	t.Setenv("ADAPTER_GEOCODER_ADDRESS", "http://geo")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "7s")
	t.Setenv("WORKERS_SYNC_INTERVAL", "1m")
	t.Setenv("WORKERS_CONNECTIVITY_INTERVAL", "3s")
	t.Setenv("WORKERS_ADDRESS_CONCURRENCY", "4")
	t.Setenv("WORKERS_PREFETCH_DELAY", "500ms")
	t.Setenv("WORKERS_PAGE_SIZE", "30")
	t.Setenv("WORKERS_DOWNLOAD_BATCH_SIZE", "40")
	t.Setenv("CONFIG", "/etc/catalog.json")

	cfg, err := parseEnv()
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "token", cfg.App.AccessToken)
	assert.Equal(t, "/tmp/client.log", cfg.App.LogFile)
	assert.Equal(t, "file:catalog.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres", cfg.Adapter.Kind)
	assert.Equal(t, "https://remote/rest/v1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "anon", cfg.Adapter.APIKey)
	assert.Equal(t, "postgres://user@host/db", cfg.Adapter.PostgresDSN)
	assert.Equal(t, "http://geo", cfg.Adapter.GeocoderAddress)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 3*time.Second, cfg.Workers.ConnectivityInterval)
	assert.Equal(t, 4, cfg.Workers.AddressConcurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.Workers.PrefetchDelay)
	assert.Equal(t, 30, cfg.Workers.PageSize)
	assert.Equal(t, 40, cfg.Workers.DownloadBatchSize)
	assert.Equal(t, "/etc/catalog.json", cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	cfg, err := parseEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "soon")

	cfg, err := parseEnv()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error getting env configs")
}
