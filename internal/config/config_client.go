package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// LogLevel is the zerolog level for the client's stderr logger.
	LogLevel string
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
	// FingerprintSalt salts fingerprints of locally recorded plans.
	FingerprintSalt string
	// TokenSignKey lets the client mint tokens with `token`.
	TokenSignKey string
	// TokenIssuer is the "iss" claim of minted tokens.
	TokenIssuer string
	// TokenDuration is the lifetime of minted tokens.
	TokenDuration time.Duration
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// GRPCAddress is the gRPC endpoint address used by the client.
	GRPCAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is the bearer token sent with every request.
	Token string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// Driver is the database/sql driver name.
	Driver string
	// DSN is the SQLite/PostgreSQL connection string used by --record.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
}

// GetClientConfig builds and validates a client-specific config view from
// defaults, environment, the optional JSON file at jsonPath, and the
// command-line layer the CLI collected itself.
func GetClientConfig(jsonPath string, cli *StructuredConfig) (*ClientConfig, error) {
	b := newConfigBuilder().withDefaults().withEnv()
	if jsonPath != "" {
		b.withConfig(&StructuredConfig{JSONFilePath: jsonPath})
	}
	cfg, err := b.withJSON().withConfig(cli).build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			LogLevel:        cfg.App.LogLevel,
			HashKey:         cfg.App.HashKey,
			FingerprintSalt: cfg.App.FingerprintSalt,
			TokenSignKey:    cfg.App.TokenSignKey,
			TokenIssuer:     cfg.App.TokenIssuer,
			TokenDuration:   cfg.App.TokenDuration,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Driver: cfg.Storage.DB.Driver,
				DSN:    cfg.Storage.DB.DSN,
			},
		},
	}

	return clientCfg, clientCfg.validate()
}
