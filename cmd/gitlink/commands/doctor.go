package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gitlink/internal/doctor"
	"github.com/thoreinstein/gitlink/internal/errors"
)

func newDoctorCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		fix    bool
	)

	c := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose link support on this machine",
		Long: `Run diagnostic checks on the host: OS classification, the probe
directory, and symbolic and hard link support.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  -v          Show all checks including passed ones
  -q          No output, exit code only
  --json      Machine-readable JSON output

Use --fix to create or repair the probe directory.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
		Args: cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if asJSON && (a.quiet || a.verbosity > 0) {
				return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			runner := doctor.NewDefaultRunner(a.resolver)
			report := runner.Run()

			if fix {
				fixes := runner.RunFixes()
				if len(fixes) > 0 {
					if !a.quiet && !asJSON {
						printFixes(out, fixes)
					}
					// Probes that ran before the fix cached their answers.
					a.resetResolver()
					runner = doctor.NewDefaultRunner(a.resolver)
					report = runner.Run()
				}
			}

			switch {
			case a.quiet:
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return errors.Wrap(err, "encoding JSON")
				}
			default:
				printDoctorReport(out, report, a.verbosity > 0)
			}

			if report.HasErrors() {
				return errors.NewExitError(nil, errors.ExitSystem)
			}
			if report.HasWarnings() {
				return errors.NewExitError(nil, errors.ExitUser)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	c.Flags().BoolVar(&fix, "fix", false, "attempt to fix problems that can be fixed")
	return c
}

func printFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), f.Path, f.Description)
			continue
		}
		fmt.Fprintf(w, "%s could not fix %s: %s\n", color.RedString("✗"), f.Path, f.Description)
		if f.Error != nil {
			fmt.Fprintf(w, "  error: %v\n", f.Error)
		}
	}
	fmt.Fprintln(w)
}

func printDoctorReport(w io.Writer, report *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status.Problem()
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
