// titan maintains the Titan Index: a static dashboard of monthly economic
// indicators published through a static-hosting branch.
package main

import (
	"os"

	"github.com/projecttitan/titan/cmd/titan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
