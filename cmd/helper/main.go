// Command helper is the CLI companion to the collection-helper server. It
// talks to the catalog backends and the LLM provider directly using the
// same configuration as the server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mediashelf/collection-helper/internal/booklore"
	"github.com/mediashelf/collection-helper/internal/catalog"
	"github.com/mediashelf/collection-helper/internal/config"
	"github.com/mediashelf/collection-helper/internal/domain"
	"github.com/mediashelf/collection-helper/internal/emby"
	"github.com/mediashelf/collection-helper/internal/llm"
	"github.com/mediashelf/collection-helper/internal/logging"
	"github.com/mediashelf/collection-helper/internal/recommend"
)

func main() {
	root := &cobra.Command{
		Use:           "helper",
		Short:         "Manage your Emby and Booklore libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(searchCmd(), recommendCmd(), statsCmd(), healthCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// buildFacade loads config and wires the catalog facade for one command
// invocation.
func buildFacade() (*catalog.Facade, *config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.Logging.Level, "console")

	embyClient := emby.NewClient(cfg.Emby.URL, cfg.Emby.APIKey, cfg.Emby.Timeout)
	bookloreClient := booklore.NewClient(cfg.Booklore.URL, cfg.Booklore.APIKey, cfg.Booklore.Timeout)
	return catalog.NewFacade(embyClient, bookloreClient, log), cfg, log, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func searchCmd() *cobra.Command {
	var noEmby, noBooklore bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for media across your collections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, _, err := buildFacade()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			results := facade.SearchAll(ctx, args[0], !noEmby, !noBooklore)
			return printJSON(results)
		},
	}

	cmd.Flags().BoolVar(&noEmby, "no-emby", false, "skip the Emby backend")
	cmd.Flags().BoolVar(&noBooklore, "no-booklore", false, "skip the Booklore backend")
	return cmd
}

func recommendCmd() *cobra.Command {
	var count int
	var preferences string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate LLM recommendations from your collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, cfg, log, err := buildFacade()
			if err != nil {
				return err
			}

			var client llm.Client = llm.New(cfg.LLM)
			if cfg.LLM.Breaker {
				client = llm.NewBreakerClient(client, log)
			}
			engine := recommend.NewEngine(facade, client, cfg.LLM.Timeout, log)

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			resp, err := engine.Generate(ctx, domain.RecommendationRequest{
				Count:           count,
				UserPreferences: preferences,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 5, "pattern-based recommendations per category (1-20)")
	cmd.Flags().StringVarP(&preferences, "preferences", "p", "", "free-text preferences for the model")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, _, err := buildFacade()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			return printJSON(facade.CollectionStats(ctx))
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to both backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, _, err := buildFacade()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			health := facade.Health(ctx)
			if err := printJSON(health); err != nil {
				return err
			}
			if !health["emby"] && !health["booklore"] {
				return fmt.Errorf("no backend is reachable")
			}
			return nil
		},
	}
}
