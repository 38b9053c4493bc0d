package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/checkops/internal/application"
	"github.com/bryanwahyu/checkops/internal/application/console"
	"github.com/bryanwahyu/checkops/internal/domain/query"
	"github.com/bryanwahyu/checkops/internal/infra/memory"
	"github.com/bryanwahyu/checkops/internal/middleware"
)

type askFlags struct {
	asJSON   bool
	timeZone string
	layout   string
}

func newAskCmd() *cobra.Command {
	var flags askFlags
	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Answer a prompt against the seeded dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, strings.Join(args, " "), flags)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&flags.asJSON, "json", false, "Print the full response as JSON")
	f.StringVar(&flags.timeZone, "tz", "UTC", "IANA time zone for timestamps")
	f.StringVar(&flags.layout, "layout", query.DefaultTimeLayout, "Go time layout for timestamps")
	return cmd
}

func runAsk(cmd *cobra.Command, prompt string, flags askFlags) error {
	loc, err := time.LoadLocation(flags.timeZone)
	if err != nil {
		return fmt.Errorf("invalid --tz: %w", err)
	}
	prompt, err = middleware.SanitizePrompt(prompt)
	if err != nil {
		return err
	}

	svc := &console.Service{
		Provider: memory.NewStore(memory.DefaultSeed()),
		Engine:   query.NewEngine(query.WithLocation(loc), query.WithTimeLayout(flags.layout)),
		Clock:    application.SystemClock{},
	}
	resp, err := svc.Ask(cmd.Context(), console.AskCommand{Prompt: prompt})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	printResult(out, resp.Result)
	return nil
}

func printResult(w io.Writer, r query.Result) {
	fmt.Fprintf(w, "[%s] %s\n", r.Intent, r.Summary)
	if r.HasHighlights() {
		fmt.Fprintln(w, "Highlights:")
		for _, h := range r.Highlights {
			fmt.Fprintf(w, "  - %s\n", h)
		}
	}
	if r.HasRecommendedActions() {
		fmt.Fprintln(w, "Recommended actions:")
		for _, a := range r.RecommendedActions {
			fmt.Fprintf(w, "  - %s\n", a)
		}
	}
}
