// Command teamboard routes users to their role dashboard and runs the
// onboarding wizard.
package main

import (
	"os"

	"github.com/Iron-Ham/teamboard/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
