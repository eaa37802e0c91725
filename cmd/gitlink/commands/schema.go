package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gitlink/internal/manifest"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for manifests",
		Long: `Print the JSON Schema that validate and materialize check manifests
against. Point an editor's YAML or TOML language server at it for completion.`,
		Example: `  gitlink schema > gitlink.schema.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(manifest.Schema())
			return err
		},
	}
}
