package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projecttitan/titan/internal/site"
)

var (
	packSite string
	packOut  string
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Package the site folder as a release zip",
	RunE:  runPack,
}

func init() {
	packCmd.Flags().StringVar(&packSite, "site", "", "site folder to package")
	packCmd.Flags().StringVar(&packOut, "out", "", "zip file to write")
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	dir := packSite
	if dir == "" {
		dir = cfg.SiteDir
	}
	out := packOut
	if out == "" {
		out = cfg.OutputZip
	}

	if err := site.Pack(dir, out); err != nil {
		return err
	}
	fmt.Printf("built %s\n", out)
	return nil
}
