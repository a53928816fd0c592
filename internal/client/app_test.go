package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/mock"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

func testConfig(httpAddress string, headless bool) *config.ClientConfig {
	return &config.ClientConfig{
		App:     config.ClientApp{Headless: headless},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}},
		Workers: config.ClientWorkers{
			SyncInterval:         time.Hour,
			ConnectivityInterval: time.Hour,
			AddressConcurrency:   2,
			PageSize:             20,
			DownloadBatchSize:    20,
		},
		Server: config.ClientServer{HTTPAddress: httpAddress},
	}
}

// newTestApp builds an engine whose remote is always unreachable, so no
// sync is triggered by the connectivity monitor.
func newTestApp(t *testing.T, cfg *config.ClientConfig) (*App, *mock.MockRemoteAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	remote.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("dial: %w", adapter.ErrTransient)).AnyTimes()

	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, logger.Nop())
	require.NoError(t, err)

	app, err := newApp(context.Background(), storages, remote, mock.NewMockGeocoder(ctrl), cfg, models.NewAppBuildInfo("3.1.0", "", ""), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, remote
}

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewApp_Headless_NoServer(t *testing.T) {
	app, _ := newTestApp(t, testConfig("", true))

	assert.Nil(t, app.server)
	assert.Nil(t, app.dashboard)
	assert.NotNil(t, app.services.CacheService)
}

func TestApp_RunHeadlessUntilCancelled(t *testing.T) {
	app, _ := newTestApp(t, testConfig("", true))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return !app.monitor.Online() }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func TestApp_ServesControlAPI(t *testing.T) {
	addr := freeAddress(t)
	app, _ := newTestApp(t, testConfig(addr, true))
	require.NotNil(t, app.server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/cache/ready")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("engine did not stop")
	}
}

type fakeDashboard struct {
	err error
}

func (f fakeDashboard) Run(context.Context) error { return f.err }

func TestApp_LeavingDashboardStopsEngine(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "user quit"},
		{name: "dashboard failure", err: errors.New("terminal is gone"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, testConfig(freeAddress(t), true))
			app.dashboard = fakeDashboard{err: tt.err}

			err := app.Run(context.Background())

			if tt.wantErr {
				assert.ErrorContains(t, err, "terminal is gone")
				return
			}
			assert.NoError(t, err)
		})
	}
}
