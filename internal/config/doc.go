// Package config provides configuration loading, merging, and validation
// facilities for the go-build-keeper binaries.
//
// This is the configuration of the service itself (addresses, storage,
// token keys), not the build settings it resolves; those live in package
// resolver.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags (server only)
//  4. JSON config file
//
// The main entry points are [GetServerConfig] for the plan server and
// [GetClientConfig] for the command line client.
package config
