package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/checkops/internal/domain/query"
)

func newIntentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "List intents in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, intent := range query.Intents() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, intent)
			}
			return nil
		},
	}
}
