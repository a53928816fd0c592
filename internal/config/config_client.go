package config

import (
	"fmt"
	"time"
)

// Remote kinds accepted by [Adapter.Kind].
const (
	RemoteKindHTTP     = "http"
	RemoteKindPostgres = "postgres"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultGeocoderAddress      = "https://nominatim.openstreetmap.org"
	DefaultRequestTimeout       = 15 * time.Second
	DefaultSyncInterval         = 5 * time.Minute
	DefaultConnectivityInterval = 10 * time.Second
	DefaultAddressConcurrency   = 3
	DefaultPrefetchDelay        = 1500 * time.Millisecond
	DefaultPageSize             = 20
	DefaultDownloadBatchSize    = 20
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	Version     string
	AccessToken string
	LogFile     string
	Headless    bool
}

// ClientAdapter holds settings of the remote dataset and geocoder clients.
type ClientAdapter struct {
	Kind            string
	HTTPAddress     string
	APIKey          string
	PostgresDSN     string
	GeocoderAddress string
	RequestTimeout  time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SyncInterval         time.Duration
	ConnectivityInterval time.Duration
	AddressConcurrency   int
	PrefetchDelay        time.Duration
	PageSize             int
	DownloadBatchSize    int
}

// ClientServer contains control API settings.
type ClientServer struct {
	HTTPAddress string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Server  ClientServer
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, fills defaults and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Version:     cfg.App.Version,
			AccessToken: cfg.App.AccessToken,
			LogFile:     cfg.App.LogFile,
			Headless:    cfg.App.Headless,
		},
		Adapter: ClientAdapter{
			Kind:            cfg.Adapter.Kind,
			HTTPAddress:     cfg.Adapter.HTTPAddress,
			APIKey:          cfg.Adapter.APIKey,
			PostgresDSN:     cfg.Adapter.PostgresDSN,
			GeocoderAddress: cfg.Adapter.GeocoderAddress,
			RequestTimeout:  cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			ConnectivityInterval: cfg.Workers.ConnectivityInterval,
			AddressConcurrency:   cfg.Workers.AddressConcurrency,
			PrefetchDelay:        cfg.Workers.PrefetchDelay,
			PageSize:             cfg.Workers.PageSize,
			DownloadBatchSize:    cfg.Workers.DownloadBatchSize,
		},
		Server: ClientServer{HTTPAddress: cfg.Server.HTTPAddress},
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.Kind == "" {
		cfg.Adapter.Kind = RemoteKindHTTP
	}
	if cfg.Adapter.GeocoderAddress == "" {
		cfg.Adapter.GeocoderAddress = DefaultGeocoderAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.ConnectivityInterval == 0 {
		cfg.Workers.ConnectivityInterval = DefaultConnectivityInterval
	}
	if cfg.Workers.AddressConcurrency == 0 {
		cfg.Workers.AddressConcurrency = DefaultAddressConcurrency
	}
	if cfg.Workers.PrefetchDelay == 0 {
		cfg.Workers.PrefetchDelay = DefaultPrefetchDelay
	}
	if cfg.Workers.PageSize == 0 {
		cfg.Workers.PageSize = DefaultPageSize
	}
	if cfg.Workers.DownloadBatchSize == 0 {
		cfg.Workers.DownloadBatchSize = DefaultDownloadBatchSize
	}
}
