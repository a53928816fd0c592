package tui

import (
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type cacheStatusMsg struct {
	status models.CacheStatus
}

type downloadDoneMsg struct {
	err error
}

type clearDoneMsg struct {
	err error
}

type syncDoneMsg struct {
	report models.SyncReport
	err    error
}

type statsLoadedMsg struct {
	stats models.Stats
	err   error
}

type clearStatusMsg struct{}
