package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
)

// globalFlags mirror the client config fields that can be set per
// invocation. Unset flags keep their zero value, which the config merge
// treats as "not given".
type globalFlags struct {
	configPath      string
	logLevel        string
	server          string
	grpcServer      string
	token           string
	timeout         time.Duration
	dbDriver        string
	dbDSN           string
	hashKey         string
	fingerprintSalt string
	tokenSignKey    string
}

func (f *globalFlags) structured() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			LogLevel:        f.logLevel,
			HashKey:         f.hashKey,
			FingerprintSalt: f.fingerprintSalt,
			TokenSignKey:    f.tokenSignKey,
		},
		Storage: config.Storage{
			DB: config.DB{Driver: f.dbDriver, DSN: f.dbDSN},
		},
		Adapter: config.Adapter{
			HTTPAddress:    f.server,
			GRPCAddress:    f.grpcServer,
			RequestTimeout: f.timeout,
			Token:          f.token,
		},
	}
}

func (a *App) newRootCommand() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "build-keeper",
		Short: "Resolve and validate mobile build configuration",
		Long: `build-keeper merges build settings from a descriptor, local.properties,
key.properties, the environment, and --set overrides, then checks the result
against the variant's policy before anything is packaged.

Secrets such as keystore passwords are redacted in every output unless
--reveal is given.`,
		Version:       a.buildInfo.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetClientConfig(flags.configPath, flags.structured())
			if err != nil {
				return fmt.Errorf("failed to load client config: %w", err)
			}
			if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logger.NewClientLogger("client", a.stderr)
			return nil
		},
	}

	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n" + a.buildInfo.String())

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a JSON config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.server, "server", "", "plan server HTTP address")
	pf.StringVar(&flags.grpcServer, "grpc-server", "", "plan server gRPC address")
	pf.StringVar(&flags.token, "token", "", "bearer token for the plan server")
	pf.DurationVar(&flags.timeout, "timeout", 0, "request timeout for the plan server")
	pf.StringVar(&flags.dbDriver, "db-driver", "", "driver of the local plan database (sqlite3, pgx)")
	pf.StringVar(&flags.dbDSN, "db", "", "DSN of the local plan database used by --record")
	pf.StringVar(&flags.hashKey, "hash-key", "", "HMAC key for request integrity headers")
	pf.StringVar(&flags.fingerprintSalt, "fingerprint-salt", "", "salt for credential fingerprints")
	pf.StringVar(&flags.tokenSignKey, "token-sign-key", "", "key used by `token` to sign API tokens")

	rootCmd.AddCommand(a.newResolveCommand())
	rootCmd.AddCommand(a.newInspectCommand())
	rootCmd.AddCommand(a.newVariantsCommand())
	rootCmd.AddCommand(a.newKeystoreCommand())
	rootCmd.AddCommand(a.newRemoteCommand())
	rootCmd.AddCommand(a.newTokenCommand())

	return rootCmd
}
