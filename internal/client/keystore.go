package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/models"
)

func (a *App) newKeystoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystore",
		Short: "Keystore checks",
	}
	cmd.AddCommand(a.newKeystoreVerifyCommand())
	return cmd
}

func (a *App) newKeystoreVerifyCommand() *cobra.Command {
	var (
		sf          stackFlags
		keystoreDir string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Resolve signing credentials and check them against the keystore",
		Long: `Verify resolves the configuration for the variant, then opens the
PKCS#12 keystore named by storeFile with storePassword and checks that
keyAlias is present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resolveLocal(cmd.Context(), &sf, false)
			if err != nil {
				return err
			}

			dir := keystoreDir
			if dir == "" {
				dir = defaultKeystoreDir(sf.properties)
			}
			if err = a.verifyKeystore(res.config.Signing(), dir); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "keystore ok: %s (alias %s)\n",
				res.config.Signing().StoreFile, res.config.Signing().KeyAlias)
			return err
		},
	}

	sf.register(cmd, models.VariantRelease)
	cmd.Flags().StringVar(&keystoreDir, "keystore-dir", "", "directory storeFile is relative to (default: the key.properties directory)")

	return cmd
}
