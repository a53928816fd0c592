// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Cross-field rules live in [ClientConfig.validate]; the structured config
// only rejects values that can never be valid.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.AddressConcurrency < 0 || cfg.Workers.PageSize < 0 || cfg.Workers.DownloadBatchSize < 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Adapter.Kind {
	case RemoteKindHTTP:
		if cfg.Adapter.HTTPAddress == "" {
			return ErrInvalidAdapterConfigs
		}
	case RemoteKindPostgres:
		if cfg.Adapter.PostgresDSN == "" {
			return ErrInvalidAdapterConfigs
		}
	default:
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.GeocoderAddress == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.ConnectivityInterval <= 0 ||
		cfg.Workers.AddressConcurrency <= 0 || cfg.Workers.PageSize <= 0 ||
		cfg.Workers.DownloadBatchSize <= 0 || cfg.Workers.PrefetchDelay < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
