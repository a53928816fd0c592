// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-catalog-mirror/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, status models.CacheStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Название приложения: %s\n", appName)
	fmt.Fprintf(&b, "Версия: %s\n", valueOrNA(info.BuildVersion()))
	fmt.Fprintf(&b, "Дата: %s\n", valueOrNA(info.BuildDate()))
	fmt.Fprintf(&b, "Коммит: %s\n\n", valueOrNA(info.BuildCommit()))
	fmt.Fprintf(&b, "Последнее обновление кэша: %s", formatTime(status.LastUpdated))

	return renderPage("ИНФОРМАЦИЯ О ПРОГРАММЕ", b.String(), "esc: назад")
}

const appName = "CatalogMirror"

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
