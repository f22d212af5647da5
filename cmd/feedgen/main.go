package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"tradex/internal/api/config"
	"tradex/internal/api/repository"
	"tradex/internal/feedgen"
	"tradex/pkg/postgres"

	"github.com/spf13/cobra"
)

var (
	configPath       string
	count            int
	minPrice         float64
	maxPrice         float64
	useExistingNames bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a random price-feed CSV file into the feed directory",
	Run:   runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	generator := feedgen.New(cfg.Feed.Directory, repository.NewStockRepository(db.DB))
	fileName, err := generator.Generate(context.Background(), feedgen.Options{
		Count:            count,
		MinPrice:         minPrice,
		MaxPrice:         maxPrice,
		UseExistingNames: useExistingNames,
	})
	if err != nil {
		log.Fatalf("Failed to generate feed file: %v", err)
	}

	fmt.Printf("Wrote %s\n", fileName)
}

func main() {
	rootCmd := &cobra.Command{Use: "feedgen"}

	generateCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")
	generateCmd.Flags().IntVarP(&count, "count", "n", 10, "Number of stocks to generate")
	generateCmd.Flags().Float64Var(&minPrice, "min-price", 20.0, "Minimum generated price")
	generateCmd.Flags().Float64Var(&maxPrice, "max-price", 100.0, "Maximum generated price")
	generateCmd.Flags().BoolVar(&useExistingNames, "existing-names", false, "Quote every name already in the catalog instead of inventing new ones")

	rootCmd.AddCommand(generateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing feedgen CLI: %s\n", err)
		os.Exit(1)
	}
}
