// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kris Dawg

// Package client implements the sync client application runtime.
//
// It wires local storage, the API gateway, the connectivity monitor and
// the background drain job into a single process lifecycle.
package client
