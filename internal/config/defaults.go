package config

import "time"

// Defaults used when no source sets a value.
const (
	DefaultTokenIssuer       = "go-build-keeper"
	DefaultTokenDuration     = 24 * time.Hour
	DefaultRequestTimeout    = 30 * time.Second
	DefaultRetentionInterval = time.Hour
	DefaultDBDriver          = "sqlite3"
	DefaultDBDSN             = "build-keeper.db"
	DefaultLogLevel          = "info"
	DefaultAdapterAddress    = "http://localhost:8080"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:      DefaultLogLevel,
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			DB: DB{Driver: DefaultDBDriver, DSN: DefaultDBDSN},
		},
		Server: Server{RequestTimeout: DefaultRequestTimeout},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{RetentionInterval: DefaultRetentionInterval},
	}
}
