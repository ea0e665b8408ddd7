// backend-go/cmd/report/main.go
package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/bioaura/platform/backend-go/internal/cache"
	"github.com/bioaura/platform/backend-go/internal/config"
	"github.com/bioaura/platform/backend-go/internal/repository/postgres"
	"github.com/bioaura/platform/backend-go/internal/service"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newService(c *cli.Context) (*service.AuraService, func(), error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := postgres.Wrap(sqlx.NewDb(db, "pgx"), 0)
	svc := service.NewAuraService(
		postgres.NewPharmacyRepository(wrapped),
		postgres.NewInventoryRepository(wrapped),
		postgres.NewOrderRepository(wrapped),
		cache.NewNoopViewCache(),
		config.Load().Engine,
	)
	return svc, func() { db.Close() }, nil
}

func writeJSON(c *cli.Context, payload any) error {
	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func runView(c *cli.Context, render func(*service.AuraService) (any, error)) error {
	svc, closeDB, err := newService(c)
	if err != nil {
		return err
	}
	defer closeDB()

	payload, err := render(svc)
	if err != nil {
		return err
	}
	return writeJSON(c, payload)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	commonFlags := []cli.Flag{
		newDBURLFlag(),
		&cli.IntFlag{Name: "days", Usage: "Lookback window in days"},
		&cli.StringFlag{Name: "out", Usage: "Write JSON to this file instead of stdout"},
	}

	app := &cli.App{
		Name:  "report",
		Usage: "Render BioAura analytics views as JSON",
		Commands: []*cli.Command{
			{
				Name:  "overview",
				Usage: "Dashboard overview with the network composite index",
				Flags: commonFlags,
				Action: func(c *cli.Context) error {
					return runView(c, func(svc *service.AuraService) (any, error) {
						return svc.Overview(c.Context, c.Int("days"))
					})
				},
			},
			{
				Name:  "health-index",
				Usage: "Health index with historical and regional series",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "region", Usage: "Anchor the view to a region"},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					return runView(c, func(svc *service.AuraService) (any, error) {
						return svc.HealthIndex(c.Context, c.Int("days"), c.String("region"))
					})
				},
			},
			{
				Name:  "demand-patterns",
				Usage: "Per-medicine demand listing",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "Filter by medicine category"},
					&cli.StringFlag{Name: "region", Usage: "Filter by region or state"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum medicines returned"},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					return runView(c, func(svc *service.AuraService) (any, error) {
						return svc.DemandPatterns(c.Context, c.Int("days"), c.String("category"), c.String("region"), c.Int("limit"))
					})
				},
			},
			{
				Name:  "pharmacy-network",
				Usage: "Pharmacy directory with inventory and sales summaries",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "state", Usage: "Filter by state"},
					&cli.StringFlag{Name: "region", Usage: "Filter by city"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum pharmacies returned"},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					return runView(c, func(svc *service.AuraService) (any, error) {
						return svc.PharmacyNetwork(c.Context, c.Int("days"), c.String("state"), c.String("region"), c.Int("limit"))
					})
				},
			},
			{
				Name:  "regional-sales",
				Usage: "Per-region sales with the daily cross-region summary",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "region", Usage: "Filter by region or state"},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					return runView(c, func(svc *service.AuraService) (any, error) {
						return svc.RegionalSales(c.Context, c.Int("days"), c.String("region"))
					})
				},
			},
			{
				Name:  "regional-stocks",
				Usage: "Per-region inventory picture",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "region", Usage: "Filter by region or state"},
					&cli.StringFlag{Name: "category", Usage: "Narrow category lists to one category"},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					return runView(c, func(svc *service.AuraService) (any, error) {
						return svc.RegionalStocks(c.Context, c.String("region"), c.String("category"))
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
