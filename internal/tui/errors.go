// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/service"
)

func humanizeRemoteUnavailableError(err error) string {
	if err == nil {
		return ""
	}
	if adapter.IsTransient(err) {
		return "Отсутствует сеть или источник данных недоступен"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или источник данных недоступен"
	}

	return err.Error()
}

func syncErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrSyncInProgress):
		return "синхронизация уже выполняется"
	case adapter.IsTransient(err):
		return "синхронизация не выполнена. " + humanizeRemoteUnavailableError(err)
	}
	return fmt.Sprintf("Ошибка синхронизации: %v", err)
}
