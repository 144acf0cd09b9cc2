package cli

import (
	"fmt"
	"io"

	"github.com/bushkit/bush/internal/doctor"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the repository document for problems",
	Long: `Run diagnostic checks on the repository document without changing anything:
package manager availability, the manifest template, rule patterns, external
version specifiers, link targets and unnamed addresses.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var checkTitles = map[string]string{
	doctor.CheckManager:  "Package manager check:",
	doctor.CheckTemplate: "Template check:",
	doctor.CheckPatterns: "Pattern check:",
	doctor.CheckVersions: "Version check:",
	doctor.CheckLinks:    "Link check:",
	doctor.CheckGaps:     "Gap check:",
}

func runDoctor(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	repo, err := s.repository()
	if err != nil {
		return err
	}

	report := doctor.New(repo, doctor.Options{}).Run()
	printReport(cmd.OutOrStdout(), report)

	if report.HasErrors() {
		return fmt.Errorf("doctor found %d error(s)", report.Count(doctor.LevelError))
	}
	return nil
}

func printReport(w io.Writer, report *doctor.Report) {
	current := ""
	for _, f := range report.Findings {
		if f.Check != current {
			current = f.Check
			fmt.Fprintln(w, checkTitles[current])
		}
		fmt.Fprintf(w, "  %s %s\n", markerStyle(f.Level).Render(f.Level.Marker()), f)
	}
	if report.Count(doctor.LevelInfo)+report.Count(doctor.LevelWarn)+report.Count(doctor.LevelError) == 0 {
		fmt.Fprintln(w, okStyle.Render("No problems found."))
	}
}

func markerStyle(level doctor.Level) lipgloss.Style {
	switch level {
	case doctor.LevelInfo:
		return infoStyle
	case doctor.LevelWarn:
		return warnStyle
	case doctor.LevelError:
		return failStyle
	default:
		return okStyle
	}
}
