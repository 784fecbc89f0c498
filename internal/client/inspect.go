package client

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/models"
)

func (a *App) newInspectCommand() *cobra.Command {
	var sf stackFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Browse the resolved configuration interactively",
		Long: `Inspect resolves the configuration like "resolve" and opens a table of
every setting, its value, and the layer it came from.

Secrets are masked until you press r. Press c to copy the selected value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resolveLocal(cmd.Context(), &sf, false)
			if err != nil {
				return err
			}
			return a.inspect(res.config, res.fingerprint, cmd.OutOrStdout())
		},
	}

	sf.register(cmd, models.VariantDebug)
	return cmd
}
