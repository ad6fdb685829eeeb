// Command strctl analyses strings and interprets filter queries offline,
// without a running server or record store.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stringanalyzer/internal/analysis"
	"stringanalyzer/internal/filter"
	"stringanalyzer/internal/nlquery"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "strctl",
		Short:        "Analyse strings and interpret natural-language filters",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAnalyzeCmd(), newParseCmd(), newVersionCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var raw string

	cmd := &cobra.Command{
		Use:   "analyze <value>...",
		Short: "Print the analysis record for a value",
		Long: `Print the analysis record for a value.

Multiple arguments are joined with single spaces. The value is trimmed
before analysis, exactly as the API does.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.TrimSpace(strings.Join(args, " "))
			if value == "" {
				return errors.New("value cannot be empty")
			}
			if raw != "" {
				f, err := filter.FromQuery(parseQuery(raw))
				if err != nil {
					return err
				}
				rec := analysis.NewRecord(value, time.Now())
				slog.Debug("filter evaluated", "filter", raw, "matches", f.Matches(rec))
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"record":  rec,
					"filter":  f,
					"matches": f.Matches(rec),
				})
			}
			return writeJSON(cmd.OutOrStdout(), analysis.NewRecord(value, time.Now()))
		},
	}
	cmd.Flags().StringVar(&raw, "filter", "", `query-string filter to test, e.g. "is_palindrome=true&min_length=3"`)
	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <query>...",
		Short: "Show how a natural-language query is interpreted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := nlquery.Parse(strings.Join(args, " "))
			if err != nil {
				var conflict *nlquery.ConflictError
				if errors.As(err, &conflict) {
					return fmt.Errorf("query parsed but resulted in conflicting filters: %w", err)
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the strctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "strctl %s\n", version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
