package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/gitlink/cmd"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  `Print the version, commit, and build date of gitlink.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gitlink version %s\n", buildinfo.Version)
			fmt.Fprintf(out, "  commit: %s\n", buildinfo.Commit)
			fmt.Fprintf(out, "  built:  %s\n", buildinfo.Date)
			fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
