package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/manifest"
	"github.com/thoreinstein/gitlink/internal/materialize"
	"github.com/thoreinstein/gitlink/internal/watch"
	"github.com/thoreinstein/gitlink/pkg/fileutil"
)

type materializeFlags struct {
	root       string
	only       []string
	noFallback bool
	backup     bool
	watch      bool
	report     string
	json       bool
}

func newMaterializeCmd(a *app) *cobra.Command {
	f := &materializeFlags{}

	c := &cobra.Command{
		Use:   "materialize MANIFEST",
		Short: "Create the files and links listed in a manifest",
		Long: `Create the files, symbolic links and hard links listed in MANIFEST under
the --root directory. MANIFEST is YAML (.yaml, .yml) or TOML (.toml).

Files are written first, then hard links, then symbolic links. When the host
cannot create a link, gitlink writes a plain file instead: the symlink target
text for symbolic links, a copy of the existing file for hard links. Use
--no-fallback to record those entries as failed instead.

With --watch the manifest is materialized again each time it is saved.`,
		Example: `  gitlink materialize links.yaml --root ./out
  gitlink materialize links.toml --root ./out --only 'bin/**'
  gitlink materialize links.yaml --root ./out --report result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialize(cmd, a, f, args[0])
		},
	}

	c.Flags().StringVar(&f.root, "root", ".", "directory to create entries in")
	c.Flags().StringArrayVar(&f.only, "only", nil, "only create entries matching this glob (repeatable)")
	c.Flags().BoolVar(&f.noFallback, "no-fallback", false, "fail entries whose link cannot be created")
	c.Flags().BoolVar(&f.backup, "backup", false, "snapshot files that will be replaced (see: gitlink backup)")
	c.Flags().StringVar(&f.report, "report", "", "write the result to this file (.json, .yaml or .yml)")
	c.Flags().BoolVar(&f.json, "json", false, "output the result as JSON")
	c.Flags().BoolVar(&f.watch, "watch", false, "materialize again whenever MANIFEST changes, until interrupted")
	return c
}

func runMaterialize(cmd *cobra.Command, a *app, f *materializeFlags, path string) error {
	err := materializeOnce(cmd.Context(), cmd, a, f, path)
	if !f.watch || errors.Is(err, errors.ErrUnsupportedPlatform) {
		return err
	}
	if err != nil {
		a.logger.Warn("materialize failed; waiting for manifest changes", "err", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watch.File(ctx, path, watch.DefaultDebounce, a.logger, func(ctx context.Context) error {
		return materializeOnce(ctx, cmd, a, f, path)
	})
}

func materializeOnce(ctx context.Context, cmd *cobra.Command, a *app, f *materializeFlags, path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidManifest) {
			return errors.NewUserError(err, "Run: gitlink validate "+path)
		}
		return errors.NewUserError(err, "")
	}

	opts := []materialize.Option{
		materialize.WithResolver(a.resolver),
		materialize.WithLogger(a.logger),
		materialize.WithCopyFallback(a.cfg.CopyFallback && !f.noFallback),
		materialize.WithOnly(f.only...),
	}
	if f.backup || a.cfg.Backup {
		opts = append(opts, materialize.WithBackup(a.backupManager()))
	}
	mat := materialize.New(opts...)

	res, err := mat.Materialize(ctx, f.root, m.Entries)
	if err != nil {
		if errors.Is(err, errors.ErrUnsupportedPlatform) {
			return platformErr(err)
		}
		return errors.NewUserError(err, "")
	}

	if f.report != "" {
		if err := fileutil.AtomicWriteEncoded(f.report, res); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "writing report"), "check the --report path")
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case f.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	case !a.quiet:
		printMaterializeResult(out, res)
	}

	if len(res.Failed) > 0 {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	return nil
}

func printMaterializeResult(w io.Writer, res *materialize.Result) {
	for _, o := range res.Outcomes {
		if o.Status == materialize.StatusSkipped {
			continue
		}
		fmt.Fprintf(w, "%-8s %-8s %s\n", o.Status, o.Kind, o.Path)
		if o.Error != "" {
			fmt.Fprintf(w, "         %s\n", o.Error)
		}
	}
	if res.Backup != "" {
		fmt.Fprintf(w, "\nreplaced files saved as backup %s\n", res.Backup)
	}
	fmt.Fprintf(w, "\n%d written, %d linked, %d fallback, %d skipped, %d failed\n",
		res.Count(materialize.StatusWritten),
		res.Count(materialize.StatusLinked),
		res.Count(materialize.StatusFallback),
		res.Count(materialize.StatusSkipped),
		len(res.Failed))
}
