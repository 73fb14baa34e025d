package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/sports-companion/internal/notify"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [sport]",
	Short: "Print live scores for a sport as JSON",
	Long:  `Prints the best available matches for a sport. Blank selects the configured default sport.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		return runWithApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return printJSON(a.aggregator.FetchLiveScores(ctx, name))
		})
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details <match-id>",
	Short: "Print the details of a single match as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd.Context(), func(ctx context.Context, a *app) error {
			details := a.details.FetchMatchDetails(ctx, args[0])
			if details == nil {
				return fmt.Errorf("no details for match %q", args[0])
			}
			return printJSON(details)
		})
	},
}

func runWithApp(ctx context.Context, fn func(context.Context, *app) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(cfg, notify.NewLogNotifier(appLog), appLog)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			appLog.WithError(cerr).Warn("Error closing resources")
		}
	}()
	return fn(ctx, a)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
