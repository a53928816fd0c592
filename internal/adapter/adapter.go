package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
)

// NewRemoteAdapter builds the [RemoteAdapter] selected by adapterCfg.Kind
// and applies the configured access token.
func NewRemoteAdapter(ctx context.Context, adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (RemoteAdapter, error) {
	var (
		remote RemoteAdapter
		err    error
	)

	switch adapterCfg.Kind {
	case config.RemoteKindHTTP, "":
		remote, err = NewHTTPRemoteAdapter(adapterCfg, log)
	case config.RemoteKindPostgres:
		remote, err = NewPostgresRemoteAdapter(ctx, adapterCfg, log)
	default:
		return nil, fmt.Errorf("unknown remote kind %q", adapterCfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	if appCfg.AccessToken != "" {
		remote.SetToken(appCfg.AccessToken)
	}
	return remote, nil
}
