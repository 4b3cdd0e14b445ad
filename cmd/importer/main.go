package main

import (
	"context"
	"fmt"
	"os"

	"smv-nearby/internal/config"
	"smv-nearby/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	importFile  string
	importSheet string
	configPath  string
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "load points of interest into the PostGIS places table",
	Long: `
importer reads rows of name, category, lat, lon from a CSV file or an XLSX
sheet and bulk loads them into the places table used by the postgis provider
and by /places search. The first row is treated as a header.
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&importFile, "file", "", "path to the .csv or .xlsx file to import")
	rootCmd.Flags().StringVar(&importSheet, "sheet", "", "sheet name for .xlsx files (default: active sheet)")
	rootCmd.Flags().StringVar(&configPath, "config", "configs", "directory containing app.env")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runImport(ctx context.Context) error {
	fmt.Printf("Starting import from file: %s\n", importFile)

	records, err := readRecords(importFile, importSheet)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", importFile, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no records found in %s", importFile)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.DBSource == "" {
		return fmt.Errorf("DB_SOURCE is not set")
	}

	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, repository.Schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	var before int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM places").Scan(&before); err != nil {
		return fmt.Errorf("counting records: %w", err)
	}

	if err := insertRecords(ctx, conn, records); err != nil {
		return fmt.Errorf("inserting records: %w", err)
	}

	if err := verifyImport(ctx, conn, before+len(records)); err != nil {
		return fmt.Errorf("verifying import: %w", err)
	}

	fmt.Printf("Successfully imported %d records\n", len(records))
	return nil
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []PlaceRecord) error {
	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("Importing places"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"places"},
		[]string{"name", "category", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			if bar != nil {
				_ = bar.Add(1)
			}
			return []any{r.Name, string(r.Category), pointEWKT(r.Location.Lat, r.Location.Lon)}, nil
		}),
	)
	return err
}

// pointEWKT renders a point in PostGIS extended WKT, lon before lat.
func pointEWKT(lat, lon float64) string {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", lon, lat)
}

func verifyImport(ctx context.Context, conn *pgx.Conn, expectedCount int) error {
	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM places").Scan(&count); err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	var geom string
	if err := conn.QueryRow(ctx, "SELECT ST_AsText(geom) FROM places ORDER BY id DESC LIMIT 1").Scan(&geom); err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	fmt.Printf("Sample geom: %s\n", geom)
	return nil
}
