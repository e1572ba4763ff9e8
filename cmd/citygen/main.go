// Command citygen populates the graph database with a synthetic city.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/precrime-dept/precrime-backend-go/internal/citygen"
	"github.com/precrime-dept/precrime-backend-go/internal/config"
	"github.com/precrime-dept/precrime-backend-go/internal/database"
)

func main() {
	var (
		citizens  int
		locations int
		seed      int64
		batchSize int
		clear     bool
	)

	rootCmd := &cobra.Command{
		Use:   "citygen",
		Short: "Generate a synthetic city graph of citizens, locations and crimes",
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

			gen := citygen.New(db.Driver(), citygen.Options{
				Citizens:  citizens,
				Locations: locations,
				Seed:      seed,
				BatchSize: batchSize,
			})

			if clear {
				log.Println("Clearing existing graph")
				if err := gen.Clear(ctx); err != nil {
					return err
				}
			}
			if err := db.EnsureSchema(ctx); err != nil {
				return err
			}

			stats, err := gen.Generate(ctx)
			if err != nil {
				return err
			}

			log.Printf("City generated: %d citizens, %d locations, %d KNOWS, %d VISITS, %d crimes",
				stats.Citizens, stats.Locations, stats.Knows, stats.Visits, stats.Crimes)
			return nil
		},
	}

	rootCmd.Flags().IntVar(&citizens, "citizens", 200, "number of citizens to generate")
	rootCmd.Flags().IntVar(&locations, "locations", 30, "number of locations to generate")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 derives one from the clock)")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", 500, "rows per batched insert")
	rootCmd.Flags().BoolVar(&clear, "clear", false, "wipe the graph before generating")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
