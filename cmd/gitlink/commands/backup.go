package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gitlink/internal/backup"
	"github.com/thoreinstein/gitlink/internal/errors"
)

func newBackupCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "backup",
		Short: "List and restore files replaced by materialize",
		Long: `materialize --backup copies every regular file it is about to replace
into a snapshot kept under the XDG state directory. Snapshots are grouped by
materialize root; the newest backup_keep snapshots of each root are kept.`,
	}
	c.AddCommand(newBackupListCmd(a), newBackupRestoreCmd(a))
	return c
}

type backupInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Files     int       `json:"files"`
}

func newBackupListCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "list ROOT",
		Short: "List snapshots of a materialize root, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := a.backupManager().List(args[0])
			if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewSystemError(errors.Wrap(err, "listing backups"), "")
			}

			out := cmd.OutOrStdout()
			if asJSON {
				infos := make([]backupInfo, len(snaps))
				for i, s := range snaps {
					infos[i] = backupInfo{ID: s.ID, CreatedAt: s.CreatedAt, Files: len(s.Files)}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return errors.Wrap(enc.Encode(infos), "encoding JSON")
			}

			if len(snaps) == 0 {
				fmt.Fprintf(out, "No backups for %s\n", args[0])
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tFILES")
			for _, s := range snaps {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", color.GreenString(s.ID), s.CreatedAt.Local().Format("2006-01-02 15:04:05"), len(s.Files))
			}
			return tw.Flush()
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return c
}

func newBackupRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ROOT [ID]",
		Short: "Restore the files of a snapshot",
		Long: `Write the files of a snapshot back under ROOT, replacing whatever is
there now. Without ID the newest snapshot is restored.`,
		Example: `  gitlink backup restore ./out
  gitlink backup restore ./out 20260123T100712-1a2b3c4d`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			mgr := a.backupManager()

			id := ""
			if len(args) == 2 {
				id = args[1]
			} else {
				latest, err := mgr.Latest(root)
				if err != nil {
					if errors.Is(err, backup.ErrNoBackupsFound) {
						return errors.NewUserError(errors.Newf("no backups found for %s", root), "Run: gitlink backup list "+root)
					}
					return errors.NewSystemError(errors.Wrap(err, "listing backups"), "")
				}
				id = latest.ID
			}

			snap, err := mgr.Restore(root, id)
			if err != nil {
				if errors.Is(err, backup.ErrNoBackupsFound) {
					return errors.NewUserError(err, "Run: gitlink backup list "+root)
				}
				return errors.NewSystemError(errors.Wrapf(err, "restoring backup %s", id), "")
			}

			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %d file(s) from backup %s\n", len(snap.Files), snap.ID)
			}
			return nil
		},
	}
}
