package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projecttitan/titan/internal/document"
	"github.com/projecttitan/titan/internal/indicator"
	"github.com/projecttitan/titan/internal/logging"
	"github.com/projecttitan/titan/internal/site"
)

var (
	refreshMonth    string
	refreshReadings string
	refreshSummary  string
	refreshSite     string
	refreshBaseline string
	refreshOut      string
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Apply a month's readings to the dashboard",
	Long: `Writes one month's readings into the index tables and chart pages.

By default the site folder is refreshed in place. With --baseline the
original release flow runs instead: extract the baseline zip, refresh it,
and pack the result as the release zip.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshMonth, "month", "", `column label for the new month, e.g. "Sep 1"`)
	refreshCmd.Flags().StringVar(&refreshReadings, "readings", "", "path to the month's readings JSON")
	refreshCmd.Flags().StringVar(&refreshSummary, "summary", "", "optional JSON file replacing the who's-better list")
	refreshCmd.Flags().StringVar(&refreshSite, "site", "", "site folder to refresh in place")
	refreshCmd.Flags().StringVar(&refreshBaseline, "baseline", "", "baseline zip to refresh instead of a folder")
	refreshCmd.Flags().StringVar(&refreshOut, "out", "", "release zip to write (with --baseline)")
	_ = refreshCmd.MarkFlagRequired("month")
	_ = refreshCmd.MarkFlagRequired("readings")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := logging.New("refresh")

	readings, err := indicator.LoadReadings(refreshReadings)
	if err != nil {
		return err
	}

	var summary []document.SummaryItem
	if refreshSummary != "" {
		if summary, err = site.LoadSummary(refreshSummary); err != nil {
			return err
		}
	}

	if refreshBaseline != "" {
		out := refreshOut
		if out == "" {
			out = cfg.OutputZip
		}
		return site.RefreshArchive(refreshBaseline, out, refreshMonth, readings, summary, logger)
	}

	dir := refreshSite
	if dir == "" {
		dir = cfg.SiteDir
	}
	if err := site.Refresh(dir, refreshMonth, readings, logger); err != nil {
		return err
	}
	if len(summary) > 0 {
		if err := site.UpdateSummary(dir, summary, logger); err != nil {
			return err
		}
	}

	fmt.Printf("refreshed %s for %s\n", dir, refreshMonth)
	return nil
}
