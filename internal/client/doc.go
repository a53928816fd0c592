// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the catalog mirror engine.
//
// It wires the local store, the remote adapter, the engine services, the
// background workers, the control API and the terminal dashboard into a
// single process lifecycle.
package client
