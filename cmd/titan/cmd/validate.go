package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/projecttitan/titan/internal/document"
)

var validateSite string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dashboard's structure before publishing",
	Long: `Runs the structural checks a publish should pass: the page has an
indicator table with at least one row, names are unique, and every trend
marker is one of the allowed symbols. Exits nonzero when anything fails.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSite, "site", "", "site folder to validate")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	dir := validateSite
	if dir == "" {
		dir = cfg.SiteDir
	}

	f, err := os.Open(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	doc, err := document.Parse(f)
	if err != nil {
		return err
	}

	findings := doc.Validate()
	for _, finding := range findings {
		fmt.Println(finding)
	}
	if len(findings) > 0 {
		return fmt.Errorf("%d validation finding(s)", len(findings))
	}

	fmt.Println("ok")
	return nil
}
