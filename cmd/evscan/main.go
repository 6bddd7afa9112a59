// Package main provides the evscan CLI for one-off fair-odds and EV scans.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/database"
	"github.com/yourusername/fairline/internal/datasource"
	"github.com/yourusername/fairline/internal/engine"
	"github.com/yourusername/fairline/internal/logger"
	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/repository"
)

var (
	configFile  string
	inputFile   string
	leagueFlag  string
	minEVFlag   float64
	jsonOutput  bool
	sinceFlag   time.Duration
	limitFlag   int
	appLog      *logrus.Logger
	cfg         *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	scanCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Scan records from a JSON file instead of the live feed")
	scanCmd.Flags().StringVarP(&leagueFlag, "league", "l", "", "Restrict the live scan to one league")
	scanCmd.Flags().Float64Var(&minEVFlag, "min-ev", 0, "Only print quotes at or above this EV percent")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full pass result as JSON")

	statusCmd.Flags().DurationVar(&sinceFlag, "since", 24*time.Hour, "Look-back window for opportunities")
	statusCmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum rows to print")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statusCmd)
}

var rootCmd = &cobra.Command{
	Use:   "evscan",
	Short: "Scan sportsbook odds for positive expected value",
	Long:  `Computes fair odds from sharp-book consensus and reports quotes priced better than the devigged market.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger("warn")
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single computation pass and print the findings",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd.Context())
		if err != nil {
			return err
		}

		eng := engine.NewEngine(cfg.Engine.FairOdds, cfg.Engine.FeeTable(), appLog)
		pass, err := eng.RunPass(records)
		if err != nil {
			return fmt.Errorf("pass failed: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(pass)
		}

		printPass(pass)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent passes and the best persisted opportunities",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			return err
		}

		passes, err := repos.Pass.GetRecent(ctx, limitFlag)
		if err != nil {
			return fmt.Errorf("failed to load recent passes: %w", err)
		}

		fmt.Printf("Recent passes (%d):\n", len(passes))
		for _, p := range passes {
			fmt.Printf("  %s  %s  records=%d pairs=%d groups=%d (%s)\n",
				p.StartedAt.Format(time.RFC3339), p.PassID, p.RecordCount, p.PairCount, p.GroupCount, p.Duration)
		}

		opportunities, err := repos.Opportunity.GetTopSince(ctx, time.Now().Add(-sinceFlag), limitFlag)
		if err != nil {
			return fmt.Errorf("failed to load opportunities: %w", err)
		}

		fmt.Printf("\nTop opportunities since %s:\n", sinceFlag)
		for _, opp := range opportunities {
			fmt.Printf("  %+6.2f%%  %-12s %-5s %+5d  fair %+5d (%s, %s)\n",
				opp.EVPercent, opp.BookKey, opp.Side, opp.Price, opp.FairAmericanOdds, opp.Confidence, opp.GroupKey)
		}

		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadRecords(ctx context.Context) ([]*models.BetRecord, error) {
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		var records []*models.BetRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse input file: %w", err)
		}
		return records, nil
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), nil)
	defer httpClient.Close()
	client := datasource.NewFeedClient(&cfg.Feed, httpClient, appLog)

	leagues := cfg.Feed.Leagues
	if leagueFlag != "" {
		leagues = []string{leagueFlag}
	}

	var records []*models.BetRecord
	for _, league := range leagues {
		fetched, err := client.FetchRecords(ctx, league)
		if err != nil {
			return nil, err
		}
		records = append(records, fetched...)
	}
	return records, nil
}

func printPass(pass *engine.PassResult) {
	fmt.Printf("Pass %s: %d records, %d pairs, %d groups in %s\n\n",
		pass.PassID, pass.RecordCount, pass.PairCount, len(pass.Reports), pass.Duration)

	type row struct {
		report engine.GroupReport
		best   *models.EVResult
	}
	var rows []row
	for _, report := range pass.Reports {
		if report.EV == nil || report.EV.Best == nil {
			continue
		}
		if report.EV.Best.EVPercent < minEVFlag {
			continue
		}
		rows = append(rows, row{report: report, best: report.EV.Best})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].best.EVPercent > rows[j].best.EVPercent
	})

	if len(rows) == 0 {
		fmt.Println("No quotes at or above the EV threshold.")
		return
	}

	for _, r := range rows {
		fmt.Printf("  %+6.2f%%  %-12s %-5s %+5d  fair %+5d p=%.4f (%s, %s)\n",
			r.best.EVPercent, r.best.BookKey, r.best.Side, r.best.Price,
			r.best.FairAmericanOdds, r.best.FairProbability, r.best.Confidence, r.report.Strategy)
	}
}
