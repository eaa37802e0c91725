package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/platform"
)

const causeHint = "Run with -vv to see why"

func newSymlinkCmd(a *app) *cobra.Command {
	var isDir bool

	c := &cobra.Command{
		Use:   "symlink LINK TARGET",
		Short: "Create a symbolic link",
		Long: `Create LINK as a symbolic link to TARGET.

TARGET must exist. A relative TARGET is stored as written and resolved
against the directory of LINK. Use --dir when TARGET is a directory;
Windows needs to know, other systems ignore it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, target := args[0], args[1]

			ok, err := platform.CreateSymlink(link, target, isDir)
			if err != nil {
				return platformErr(err)
			}
			if !ok {
				return errors.NewUserError(errors.Newf("could not create symlink %s -> %s", link, target), causeHint)
			}

			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", link, target)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&isDir, "dir", false, "target is a directory")
	return c
}

func newHardlinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hardlink LINK EXISTING",
		Short: "Create a hard link",
		Long: `Create LINK as another name for the regular file EXISTING.

Both names must be on the same filesystem (the same volume on Windows).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, existing := args[0], args[1]

			ok, err := platform.CreateHardlink(link, existing)
			if err != nil {
				return platformErr(err)
			}
			if !ok {
				return errors.NewUserError(errors.Newf("could not create hard link %s => %s", link, existing), causeHint)
			}

			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s => %s\n", link, existing)
			}
			return nil
		},
	}
}
