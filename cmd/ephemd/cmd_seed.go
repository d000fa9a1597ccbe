package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"gitlab.com/rt2-ephem.net/internal/adapter/logging"
	"gitlab.com/rt2-ephem.net/internal/adapter/postgres/catalogrepo"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
)

var seedCmd = &cobra.Command{
	Use:   "seed-catalog",
	Short: "Load catalog objects into the local postgres catalog",
	Long: "Read a file of \"name,ra_degrees,dec_degrees\" rows (comma- or\n" +
		"whitespace-separated) and upsert them into the catalog table the\n" +
		"postgres resolver backend answers from",
	RunE: runSeedCatalog,
}

var seedFile string

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedFile, "file", "", "File with name,ra_degrees,dec_degrees rows (required)")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeedCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.NewZapLogger()
	defer func() { _ = logger.Sync() }()

	objects, err := parseCatalogFile(seedFile)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return fmt.Errorf("no catalog rows in %s", seedFile)
	}

	db, err := setupDatabase(cfg.CatalogDB.Url)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := catalogrepo.NewCatalogRepository(db, logger, cfg.CatalogDB.Schema)
	count, err := seedCatalog(context.Background(), repo, objects)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d catalog objects from %s\n", count, seedFile)
	return nil
}

// seedCatalog writes the parsed objects through the catalog store port.
func seedCatalog(ctx context.Context, store secondary.CatalogStore, objects []*domain.CatalogObject) (int, error) {
	if err := store.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	return store.SaveBatch(ctx, objects)
}

// parseCatalogFile reads "name,ra_degrees,dec_degrees" rows. Rows without a
// comma split on whitespace instead, which keeps hand-written lists working
// as long as their names carry no spaces. Blank lines and lines starting
// with # are skipped.
func parseCatalogFile(path string) ([]*domain.CatalogObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	var objects []*domain.CatalogObject
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields, err := splitCatalogRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		obj, err := catalogObjectFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		objects = append(objects, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return objects, nil
}

func splitCatalogRow(line string) ([]string, error) {
	if strings.Contains(line, ",") {
		reader := csv.NewReader(strings.NewReader(line))
		reader.TrimLeadingSpace = true
		return reader.Read()
	}
	return strings.Fields(line), nil
}

func catalogObjectFromFields(fields []string) (*domain.CatalogObject, error) {
	if len(fields) != 3 {
		return nil, fmt.Errorf("row has %d fields, want 3", len(fields))
	}
	name := strings.TrimSpace(fields[0])
	if name == "" {
		return nil, errors.New("row has an empty name")
	}
	ra, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad right ascension %q", fields[1])
	}
	dec, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad declination %q", fields[2])
	}
	if dec < -90 || dec > 90 {
		return nil, fmt.Errorf("declination %v out of range [-90, 90]", dec)
	}
	return &domain.CatalogObject{Name: name, RADeg: ra, DecDeg: dec}, nil
}
