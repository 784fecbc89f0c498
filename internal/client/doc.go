// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the build-keeper command line client.
//
// The client resolves build configuration locally from descriptor,
// properties, environment, and --set layers, or asks a remote plan server to
// do it. Commands are built with cobra; configuration for the client itself
// (server address, token, local plan database) comes from
// [config.GetClientConfig].
package client
