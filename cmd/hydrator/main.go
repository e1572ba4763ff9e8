// Command hydrator exports the citizen graph as a tensor-ready bundle file.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/precrime-dept/precrime-backend-go/internal/config"
	"github.com/precrime-dept/precrime-backend-go/internal/database"
	"github.com/precrime-dept/precrime-backend-go/internal/hydrate"
)

func main() {
	var (
		output string
		seed   int64
	)

	rootCmd := &cobra.Command{
		Use:   "hydrator",
		Short: "Export the citizen graph as node features, labels and edges",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			db, err := database.Connect(ctx, database.Config{
				URI:      cfg.Neo4jURI,
				User:     cfg.Neo4jUser,
				Password: cfg.Neo4jPassword,
			})
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			hydrator := hydrate.NewHydrator(db.Driver(), cfg.CurrentYear)
			bundle, err := hydrator.Hydrate(ctx, seed)
			if err != nil {
				return err
			}

			if err := bundle.Save(output); err != nil {
				return err
			}

			log.Printf("Bundle written to %s: %d nodes, %d edges, %d positive labels",
				output, len(bundle.NodeIDs), len(bundle.EdgeSrc), countPositive(bundle.Labels))

			patterns, err := hydrator.CrimePatterns(ctx)
			if err != nil {
				return err
			}
			log.Printf("Crime patterns: %d crimes, mean severity %.2f, by type %v",
				patterns.TotalCrimes, patterns.MeanSeverity, patterns.ByCrimeType)
			return nil
		},
	}

	rootCmd.Flags().StringVar(&output, "output", "citygraph.bundle", "output bundle path")
	rootCmd.Flags().Int64Var(&seed, "seed", 42, "seed for the train/val/test split")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func countPositive(labels []int) int {
	n := 0
	for _, l := range labels {
		if l == 1 {
			n++
		}
	}
	return n
}
