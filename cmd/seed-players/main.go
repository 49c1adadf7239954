// Package main provides the roster seeding CLI: it parses raw ranking
// exports, enriches each player through Wikidata, and upserts the
// results into the players table.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/sportology/internal/config"
	"github.com/yourusername/sportology/internal/database"
	"github.com/yourusername/sportology/internal/enrich"
	"github.com/yourusername/sportology/internal/logger"
	"github.com/yourusername/sportology/internal/models"
	"github.com/yourusername/sportology/internal/repository"
)

var (
	configFile string
	rankingFmt string
	sportName  string
	keyword    string
	inputFile  string
	limit      int
	skipLookup bool

	appLog *logrus.Logger
	cfg    *config.Config
	db     *database.DB
	repos  *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&rankingFmt, "format", "ranked", "Input format: ranked (ATP/WTA style) or ittf")
	rootCmd.Flags().StringVar(&sportName, "sport", "tennis", "Sport stored with each player")
	rootCmd.Flags().StringVar(&keyword, "keyword", "tennis player", "Description keyword used to disambiguate Wikidata hits")
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to the raw ranking export")
	rootCmd.Flags().IntVar(&limit, "limit", 200, "Maximum players to seed")
	rootCmd.Flags().BoolVar(&skipLookup, "skip-lookup", false, "Skip Wikidata enrichment and seed names only")
	rootCmd.MarkFlagRequired("input")
}

var rootCmd = &cobra.Command{
	Use:   "seed-players",
	Short: "Seed the player roster from a raw ranking export",
	Long:  `Parses a copied ranking page, enriches each player with a birthdate and country from Wikidata, and upserts the roster into the database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		appLog = logger.NewLogger(cfg.App.LogLevel)

		db, err = database.Initialize(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		repos = repository.NewRepositories(db)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func main() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runSeed(ctx context.Context) error {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var names []enrich.RankedName
	switch strings.ToLower(rankingFmt) {
	case "ranked":
		names = enrich.ParseRankedList(string(raw), limit)
	case "ittf":
		names = enrich.ParseITTFList(string(raw), limit)
	default:
		return fmt.Errorf("unknown format %q", rankingFmt)
	}

	appLog.WithFields(logrus.Fields{
		"input":   inputFile,
		"format":  rankingFmt,
		"players": len(names),
	}).Info("Parsed ranking export")

	var wikidata *enrich.WikidataClient
	if !skipLookup {
		httpCfg := enrich.DefaultHTTPClientConfig()
		httpCfg.Timeout = time.Duration(cfg.Enrichment.TimeoutSeconds) * time.Second
		httpCfg.MaxRetries = cfg.Enrichment.MaxRetries
		httpCfg.RateLimit = cfg.Enrichment.RequestsPerSecond
		httpCfg.UserAgent = cfg.Enrichment.UserAgent

		httpClient := enrich.NewRateLimitedHTTPClient(httpCfg, appLog)
		defer httpClient.Close()
		wikidata = enrich.NewWikidataClient(httpClient)
	}

	seeded := 0
	for _, ranked := range names {
		record := enrich.PlayerRecord{
			Name:  ranked.Name,
			Sport: sportName,
			Rank:  ranked.Rank,
		}

		if wikidata != nil {
			birthdate, country, err := wikidata.Enrich(ctx, ranked.Name, keyword)
			if err != nil {
				appLog.WithError(err).WithField("player", ranked.Name).Warn("Enrichment failed, seeding name only")
			} else {
				record.Birthdate = birthdate
				record.Country = country
			}
		}

		if err := upsertRecord(ctx, record); err != nil {
			appLog.WithError(err).WithField("player", record.Name).Error("Failed to upsert player")
			continue
		}
		seeded++
	}

	appLog.WithFields(logrus.Fields{
		"sport":  sportName,
		"seeded": seeded,
	}).Info("Roster seeding complete")
	return nil
}

func upsertRecord(ctx context.Context, record enrich.PlayerRecord) error {
	player := &models.Player{
		ID:        uuid.New(),
		Name:      record.Name,
		Sport:     record.Sport,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if record.Birthdate != "" {
		player.Birthdate = &record.Birthdate
	}
	if record.Country != "" {
		player.Country = &record.Country
	}
	if record.Rank > 0 {
		rank := record.Rank
		player.Rank = &rank
	}

	return repos.Players.Upsert(ctx, player)
}
