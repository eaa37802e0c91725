package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/manifest"
	"github.com/thoreinstein/gitlink/internal/validator"
)

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "validate MANIFEST",
		Short: "Check a manifest without touching the filesystem",
		Long: `Check MANIFEST against the manifest schema (see: gitlink schema), then
report every problem found: paths that leave the root, duplicates and
self-referencing hard links.

Exit codes:
  0 - Manifest is valid (warnings allowed)
  1 - Manifest has errors`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			res, err := manifest.CheckFile(path)
			if err != nil {
				return errors.NewUserError(err, "")
			}

			format := validator.FormatText
			if asJSON {
				format = validator.FormatJSON
			}
			if asJSON || !a.quiet || res.HasErrors() {
				if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(path, res); err != nil {
					return err
				}
			}

			if res.HasErrors() {
				return errors.NewExitError(nil, errors.ExitUser)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return c
}
