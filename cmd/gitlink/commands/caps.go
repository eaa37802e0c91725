package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gitlink/internal/errors"
)

func newCapsCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "caps",
		Short: "Show link capabilities of this machine",
		Long: `Classify the host OS, load its link adapter and report whether this
process can create symbolic links and hard links.

Capabilities are probed in a private scratch directory under the configured
probe_dir, which is removed afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.resolver.Report()
			if err != nil {
				return platformErr(err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return errors.Wrap(enc.Encode(report), "encoding JSON")
			}

			fmt.Fprintf(out, "os:       %s (%s family)\n", report.GOOS, report.Family)
			fmt.Fprintf(out, "adapter:  %s\n", report.Adapter)
			fmt.Fprintf(out, "symlink:  %s\n", yesNo(report.Symlink))
			fmt.Fprintf(out, "hardlink: %s\n", yesNo(report.Hardlink))
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return c
}

func yesNo(ok bool) string {
	if ok {
		return color.GreenString("yes")
	}
	return color.YellowString("no")
}
