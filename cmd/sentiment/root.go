package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/app"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/config"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/pipeline"

	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	backend    string
	source     string
}

type analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.SentimentResult, error)
}

type resultJSON struct {
	Symbol           string           `json:"symbol"`
	Timestamp        string           `json:"timestamp"`
	Headlines        []model.Headline `json:"headlines"`
	OverallSentiment model.Sentiment  `json:"overall_sentiment"`
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "sentiment",
		Short:        "News sentiment for stock symbols",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", os.Getenv("CONFIG_FILE"), "path to YAML config")
	root.PersistentFlags().StringVar(&opts.backend, "cache", "", "cache backend override (sqlite, postgres, redis, memory)")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "headline source override (google, google-rss, finnhub, alphavantage, massive)")

	root.AddCommand(newAnalyzeCmd(opts), newHistoryCmd(opts))
	return root
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile, func(c *config.Config) {
		if opts.backend != "" {
			c.Cache.Backend = opts.backend
		}
		if opts.source != "" {
			c.Headlines.Source = opts.source
		}
	})
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return cfg, nil
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Fetch, classify and print the current sentiment for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return runAnalyze(cmd.Context(), a.Service, args[0], cmd.OutOrStdout())
		},
	}
}

func runAnalyze(ctx context.Context, svc analyzer, symbol string, out io.Writer) error {
	result, err := svc.Analyze(ctx, symbol)
	if errors.Is(err, pipeline.ErrNoHeadlines) {
		return fmt.Errorf("no news headlines found for %s", model.NormalizeSymbol(symbol))
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(*result))
}

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "List stored results for a symbol, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			backend, err := app.OpenBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			reader, ok := backend.(app.HistoryReader)
			if !ok {
				return fmt.Errorf("cache backend %q does not keep history", cfg.Cache.Backend)
			}

			return runHistory(cmd.Context(), reader, args[0], limit, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of records")
	return cmd
}

func runHistory(ctx context.Context, reader app.HistoryReader, symbol string, limit int, out io.Writer) error {
	results, err := reader.History(ctx, model.NormalizeSymbol(symbol), limit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(out, "no stored results for %s\n", model.NormalizeSymbol(symbol))
		return nil
	}

	for _, r := range results {
		titles := make([]string, len(r.Headlines))
		for i, h := range r.Headlines {
			titles[i] = fmt.Sprintf("%s (%s)", h.Title, h.Sentiment)
		}
		fmt.Fprintf(out, "%s  %-8s  %s\n", r.Timestamp.UTC().Format(time.RFC3339), r.OverallSentiment, strings.Join(titles, "; "))
	}
	return nil
}

func toJSON(r model.SentimentResult) resultJSON {
	return resultJSON{
		Symbol:           r.Symbol,
		Timestamp:        r.Timestamp.UTC().Format(time.RFC3339),
		Headlines:        r.Headlines,
		OverallSentiment: r.OverallSentiment,
	}
}
