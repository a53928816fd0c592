package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		Version     string `json:"version"`
		AccessToken string `json:"access_token"`
		LogFile     string `json:"log_file"`
		Headless    bool   `json:"headless"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`

	Adapter struct {
		Kind            string   `json:"kind"`
		HTTPAddress     string   `json:"http_address"`
		APIKey          string   `json:"api_key"`
		PostgresDSN     string   `json:"postgres_dsn"`
		GeocoderAddress string   `json:"geocoder_address"`
		RequestTimeout  Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval         Duration `json:"sync_interval"`
		ConnectivityInterval Duration `json:"connectivity_interval"`
		AddressConcurrency   int      `json:"address_concurrency"`
		PrefetchDelay        Duration `json:"prefetch_delay"`
		PageSize             int      `json:"page_size"`
		DownloadBatchSize    int      `json:"download_batch_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:     jsonCfg.App.Version,
			AccessToken: jsonCfg.App.AccessToken,
			LogFile:     jsonCfg.App.LogFile,
			Headless:    jsonCfg.App.Headless,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
		Adapter: Adapter{
			Kind:            jsonCfg.Adapter.Kind,
			HTTPAddress:     jsonCfg.Adapter.HTTPAddress,
			APIKey:          jsonCfg.Adapter.APIKey,
			PostgresDSN:     jsonCfg.Adapter.PostgresDSN,
			GeocoderAddress: jsonCfg.Adapter.GeocoderAddress,
			RequestTimeout:  time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:         time.Duration(jsonCfg.Workers.SyncInterval),
			ConnectivityInterval: time.Duration(jsonCfg.Workers.ConnectivityInterval),
			AddressConcurrency:   jsonCfg.Workers.AddressConcurrency,
			PrefetchDelay:        time.Duration(jsonCfg.Workers.PrefetchDelay),
			PageSize:             jsonCfg.Workers.PageSize,
			DownloadBatchSize:    jsonCfg.Workers.DownloadBatchSize,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
