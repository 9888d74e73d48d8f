// Command seed-db loads a JSON seed file into the database: categories,
// customers and products for a fresh back office install. Plain .json and
// gzip-compressed .json.gz files are supported.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"

	"github.com/ordesk/backoffice/internal/domain/category"
	"github.com/ordesk/backoffice/internal/domain/customer"
	"github.com/ordesk/backoffice/internal/domain/product"
	"github.com/ordesk/backoffice/internal/storage/postgres"
)

type seedFile struct {
	Categories []categoryJSON `json:"categories"`
	Customers  []customerJSON `json:"customers"`
	Products   []productJSON  `json:"products"`
}

type categoryJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type customerJSON struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Notes    string `json:"notes"`
}

type productJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SKU         string `json:"sku"`
	Category    string `json:"category"`
	Kind        string `json:"kind"`
	Price       int64  `json:"price"`
	Unit        string `json:"unit"`
}

func main() {
	var (
		databaseURL string
		seedPath    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&seedPath, "seed-file", "db/seed/backoffice.json", "path to seed JSON file (.json or .json.gz)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, seedPath); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, seedPath string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	seed, err := readSeed(seedPath)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}

	categoryIDs, err := seedCategories(ctx, postgres.NewCategoryRepository(pool), seed.Categories)
	if err != nil {
		return errors.Wrap(err, "seed categories")
	}

	if err := seedCustomers(ctx, postgres.NewCustomerRepository(pool), seed.Customers); err != nil {
		return errors.Wrap(err, "seed customers")
	}

	if err := seedProducts(ctx, postgres.NewProductRepository(pool), seed.Products, categoryIDs); err != nil {
		return errors.Wrap(err, "seed products")
	}

	return nil
}

func readSeed(path string) (*seedFile, error) {
	slog.Info("reading seed file", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		defer gz.Close()
		r = gz
	}

	var seed seedFile
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return nil, errors.Wrap(err, "parse seed JSON")
	}
	return &seed, nil
}

// seedCategories inserts missing categories and returns name -> id for
// resolving product category references. Existing categories are matched by
// name and left untouched.
func seedCategories(ctx context.Context, repo category.Repository, categories []categoryJSON) (map[string]int64, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list existing categories")
	}

	ids := make(map[string]int64, len(existing)+len(categories))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, c := range categories {
		if _, ok := ids[c.Name]; ok {
			slog.Info("category exists, skipping", slog.String("name", c.Name))
			continue
		}
		id, err := repo.Create(ctx, &category.Category{
			Name:        c.Name,
			Description: c.Description,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "create category %s", c.Name)
		}
		ids[c.Name] = id
		slog.Info("created category", slog.Int64("id", id), slog.String("name", c.Name))
	}

	return ids, nil
}

func seedCustomers(ctx context.Context, repo customer.Repository, customers []customerJSON) error {
	existing, err := repo.List(ctx, "")
	if err != nil {
		return errors.Wrap(err, "list existing customers")
	}

	seenEmail := make(map[string]bool, len(existing))
	seenName := make(map[string]bool, len(existing))
	for _, c := range existing {
		if c.Email != "" {
			seenEmail[c.Email] = true
		}
		seenName[c.Name] = true
	}

	for _, c := range customers {
		// Match by email when the row has one, by name otherwise.
		if c.Email != "" && seenEmail[c.Email] {
			slog.Info("customer exists, skipping", slog.String("email", c.Email))
			continue
		}
		if c.Email == "" && seenName[c.Name] {
			slog.Info("customer exists, skipping", slog.String("name", c.Name))
			continue
		}
		id, err := repo.Create(ctx, &customer.Customer{
			Name:     c.Name,
			Email:    c.Email,
			Phone:    c.Phone,
			Document: c.Document,
			Address:  c.Address,
			City:     c.City,
			State:    c.State,
			ZipCode:  c.ZipCode,
			Notes:    c.Notes,
			Active:   true,
		})
		if err != nil {
			return errors.Wrapf(err, "create customer %s", c.Name)
		}
		slog.Info("created customer", slog.Int64("id", id), slog.String("name", c.Name))
	}

	return nil
}

func seedProducts(ctx context.Context, repo product.Repository, products []productJSON, categoryIDs map[string]int64) error {
	existing, err := repo.List(ctx, product.Filter{})
	if err != nil {
		return errors.Wrap(err, "list existing products")
	}

	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.SKU] = true
	}

	for _, p := range products {
		if p.SKU != "" && seen[p.SKU] {
			slog.Info("product exists, skipping", slog.String("sku", p.SKU))
			continue
		}

		kind := product.Kind(p.Kind)
		if !kind.Valid() {
			kind = product.KindProduct
		}
		unit := p.Unit
		if unit == "" {
			unit = "un"
		}

		var categoryID *int64
		if p.Category != "" {
			id, ok := categoryIDs[p.Category]
			if !ok {
				return errors.Errorf("product %s references unknown category %s", p.Name, p.Category)
			}
			categoryID = &id
		}

		id, err := repo.Create(ctx, &product.Product{
			Name:        p.Name,
			Description: p.Description,
			SKU:         p.SKU,
			CategoryID:  categoryID,
			Kind:        kind,
			Price:       p.Price,
			Unit:        unit,
			Active:      true,
		})
		if err != nil {
			return errors.Wrapf(err, "create product %s", p.Name)
		}
		slog.Info("created product", slog.Int64("id", id), slog.String("name", p.Name))
	}

	return nil
}
