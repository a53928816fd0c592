// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the catalog
// mirror. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string, the
	// user's access token and the log file location.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local SQLite mirror.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the address of the optional control HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration of the remote dataset and the geocoder.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds tuning knobs of the background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// AccessToken is the bearer JWT of the signed-in user. Its subject claim
	// scopes favorites sync; when empty, user-scoped sync is skipped.
	// Env: APP_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// LogFile is the path of the rotating client log file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Headless disables the terminal dashboard; the engine then runs until
	// it receives a termination signal.
	// Env: APP_HEADLESS
	Headless bool `env:"HEADLESS"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path or DSN
	// (e.g. "file:catalog.db?_busy_timeout=5000").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds settings of the control HTTP API. An empty HTTPAddress
// disables the API.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Adapter holds configuration of outbound integrations.
type Adapter struct {
	// Kind selects the remote implementation: "http" (PostgREST API, the
	// default) or "postgres" (direct database connection).
	// Env: ADAPTER_KIND
	Kind string `env:"KIND"`

	// HTTPAddress is the base URL of the PostgREST API
	// (e.g. "https://project.supabase.co/rest/v1").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// APIKey is sent as the "apikey" header on every REST request.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY"`

	// PostgresDSN is the connection string used when Kind is "postgres".
	// Env: ADAPTER_POSTGRES_DSN
	PostgresDSN string `env:"POSTGRES_DSN"`

	// GeocoderAddress is the base URL of the Nominatim-compatible reverse
	// geocoding service.
	// Env: ADAPTER_GEOCODER_ADDRESS
	GeocoderAddress string `env:"GEOCODER_ADDRESS"`

	// RequestTimeout is the transport timeout of outbound HTTP requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration of background workers.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ConnectivityInterval is the period of the remote reachability probe.
	// Env: WORKERS_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`

	// AddressConcurrency caps concurrent address resolutions.
	// Env: WORKERS_ADDRESS_CONCURRENCY
	AddressConcurrency int `env:"ADDRESS_CONCURRENCY"`

	// PrefetchDelay is the debounce before the next page is prefetched.
	// Env: WORKERS_PREFETCH_DELAY
	PrefetchDelay time.Duration `env:"PREFETCH_DELAY"`

	// PageSize is the number of records per remote page.
	// Env: WORKERS_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// DownloadBatchSize is the number of records fetched per bulk cache batch.
	// Env: WORKERS_DOWNLOAD_BATCH_SIZE
	DownloadBatchSize int `env:"DOWNLOAD_BATCH_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
