// consolectl answers console prompts against the seeded operations data.
//
// Usage:
//
//	consolectl ask "What is the status of Jane Doe?" [--json] [--tz=America/New_York]
//	consolectl intents
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "consolectl",
		Short: "Ask the background-check operations console questions",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	root.AddCommand(newAskCmd())
	root.AddCommand(newIntentsCmd())
	root.Version = version
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
