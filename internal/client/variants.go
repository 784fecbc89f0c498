package client

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/internal/source"
	"github.com/MKhiriev/go-build-keeper/models"
)

func (a *App) newVariantsCommand() *cobra.Command {
	var (
		descriptor string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List build variants and what each one requires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}

			variants, err := listVariants(descriptor)
			if err != nil {
				return err
			}

			if format != formatTable {
				return writeDocument(cmd.OutOrStdout(), format, variants)
			}

			rows := make([][]string, 0, len(variants))
			for _, v := range variants {
				signing := "no"
				if v.RequiresSigning {
					signing = "yes"
				}
				required := make([]string, 0, len(v.Required))
				for _, k := range v.Required {
					required = append(required, string(k))
				}
				rows = append(rows, []string{v.Name, signing, strings.Join(required, ", ")})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Variant", "Signing", "Required"}, rows)
		},
	}

	cmd.Flags().StringVarP(&descriptor, "descriptor", "d", "", "build descriptor declaring extra variants")
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table, json, or yaml")

	return cmd
}

// listVariants returns the built-in variants, or the descriptor's view of
// them plus any variant only the descriptor declares.
func listVariants(descriptorPath string) ([]models.Variant, error) {
	if descriptorPath == "" {
		return models.BuiltinVariants(), nil
	}

	d, err := source.LoadDescriptorFile(descriptorPath)
	if err != nil {
		return nil, err
	}

	names := d.VariantNames()
	variants := make([]models.Variant, 0, len(names))
	for _, name := range names {
		v, err := d.Variant(name)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}
