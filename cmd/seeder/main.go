package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ammerola/inventory-dashboard/internal/adapters/db"
	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/pkg/config"
	"github.com/ammerola/inventory-dashboard/internal/pkg/logger"
)

type swatch struct {
	name string
	hex  string
}

// catalogEntry is one seeded product and the variant grid generated for it.
type catalogEntry struct {
	product    domain.Product
	sizes      []string
	colors     []swatch
	weight     int
	dimensions domain.Dimensions
	material   string
	buyPrice   string
	sellPrice  string
	images     []string
}

var (
	white   = swatch{"White", "#FFFFFF"}
	black   = swatch{"Black", "#000000"}
	navy    = swatch{"Navy", "#1f2937"}
	gray    = swatch{"Gray", "#6b7280"}
	natural = swatch{"Natural", "#f5f5dc"}
)

func strPtr(s string) *string { return &s }

func catalog() []catalogEntry {
	return []catalogEntry{
		{
			product: domain.Product{
				Name:        "Classic Cotton T-Shirt",
				Description: strPtr("Comfortable 100% cotton t-shirt perfect for everyday wear"),
				Category:    domain.CategoryTShirt,
				Tags:        []string{"cotton", "casual", "basic"},
				CustomizableAreas: []domain.CustomizableArea{
					{Area: domain.AreaFront, MaxSize: domain.AreaSize{Width: 25, Height: 30}},
					{Area: domain.AreaBack, MaxSize: domain.AreaSize{Width: 30, Height: 35}},
				},
			},
			sizes:      []string{"XS", "S", "M", "L", "XL", "XXL"},
			colors:     []swatch{white, black, navy, gray},
			weight:     150,
			dimensions: domain.Dimensions{Length: 70, Width: 50, Height: 1, Unit: "cm"},
			material:   "100% Cotton",
			buyPrice:   "8.99",
			sellPrice:  "19.99",
			images: []string{
				"https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e?w=800&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1529139574466-a303027c1d8b?w=800&auto=format&fit=crop",
			},
		},
		{
			product: domain.Product{
				Name:        "Premium Polo Shirt",
				Description: strPtr("Professional polo shirt with collar and button placket"),
				Category:    domain.CategoryPoloShirt,
				Tags:        []string{"polo", "professional", "collared"},
				CustomizableAreas: []domain.CustomizableArea{
					{Area: domain.AreaLeftHand, MaxSize: domain.AreaSize{Width: 10, Height: 8}},
					{Area: domain.AreaBack, MaxSize: domain.AreaSize{Width: 25, Height: 30}},
				},
			},
			sizes:      []string{"S", "M", "L", "XL", "XXL"},
			colors:     []swatch{white, black, navy},
			weight:     200,
			dimensions: domain.Dimensions{Length: 72, Width: 52, Height: 1, Unit: "cm"},
			material:   "Cotton Blend",
			buyPrice:   "12.99",
			sellPrice:  "29.99",
			images: []string{
				"https://images.unsplash.com/photo-1625910513520-bed0389ce32f?w=800&auto=format&fit=crop",
				"https://plus.unsplash.com/premium_photo-1683147816511-932c9cc82881?w=800&auto=format&fit=crop",
			},
		},
		{
			product: domain.Product{
				Name:        "Cozy Pullover Hoodie",
				Description: strPtr("Warm and comfortable hoodie with front pocket"),
				Category:    domain.CategoryHoodie,
				Tags:        []string{"hoodie", "warm", "casual"},
				CustomizableAreas: []domain.CustomizableArea{
					{Area: domain.AreaFront, MaxSize: domain.AreaSize{Width: 20, Height: 25}},
					{Area: domain.AreaBack, MaxSize: domain.AreaSize{Width: 30, Height: 35}},
				},
			},
			sizes:      []string{"S", "M", "L", "XL", "XXL"},
			colors:     []swatch{black, gray, navy},
			weight:     500,
			dimensions: domain.Dimensions{Length: 75, Width: 60, Height: 3, Unit: "cm"},
			material:   "Cotton/Polyester Blend",
			buyPrice:   "18.99",
			sellPrice:  "49.99",
			images: []string{
				"https://plus.unsplash.com/premium_photo-1726930176764-82601e0159df?w=800&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1677706195015-c8d077b0a62d?w=800&auto=format&fit=crop",
			},
		},
		{
			product: domain.Product{
				Name:        "Eco Canvas Tote Bag",
				Description: strPtr("Sustainable canvas tote bag for daily use"),
				Category:    domain.CategoryToteBag,
				Tags:        []string{"eco-friendly", "canvas", "reusable"},
				CustomizableAreas: []domain.CustomizableArea{
					{Area: domain.AreaFront, MaxSize: domain.AreaSize{Width: 30, Height: 35}},
				},
			},
			// totes come in one size
			sizes:      []string{""},
			colors:     []swatch{natural, black},
			weight:     120,
			dimensions: domain.Dimensions{Length: 40, Width: 35, Height: 10, Unit: "cm"},
			material:   "Canvas",
			buyPrice:   "5.99",
			sellPrice:  "16.99",
			images: []string{
				"https://images.unsplash.com/photo-1663573690125-d326a87a2535?w=800&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1623222403596-d0255da44c0b?w=800&auto=format&fit=crop",
			},
		},
	}
}

// variants expands the size x color grid of e.
func (e catalogEntry) variants(productID uuid.UUID, now time.Time) []domain.ProductVariant {
	out := make([]domain.ProductVariant, 0, len(e.sizes)*len(e.colors))
	for _, size := range e.sizes {
		for _, c := range e.colors {
			v := domain.ProductVariant{
				ID:          uuid.New(),
				ProductID:   productID,
				SKU:         domain.BuildSKU(e.product.Name, size, c.name),
				Color:       strPtr(c.name),
				ColorHex:    strPtr(c.hex),
				WeightGrams: &e.weight,
				Dimensions:  &e.dimensions,
				ImageURLs:   e.images,
				Material:    strPtr(e.material),
				Gender:      "unisex",
				BuyPrice:    decimal.RequireFromString(e.buyPrice),
				SellPrice:   decimal.RequireFromString(e.sellPrice),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if size != "" {
				v.Size = strPtr(size)
			}
			out = append(out, v)
		}
	}
	return out
}

type seedStats struct {
	products  int
	variants  int
	inventory int
}

type seeder struct {
	psql   squirrel.StatementBuilderType
	logger *slog.Logger
	rng    *rand.Rand
}

func (s *seeder) run(ctx context.Context, tx pgx.Tx, entries []catalogEntry) (seedStats, error) {
	var stats seedStats

	s.logger.InfoContext(ctx, "clearing existing data")
	for _, table := range []string{"inventory", "product_variants", "products"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return stats, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	now := time.Now().UTC()
	for _, e := range entries {
		p := e.product
		p.PrepareForStorage()

		query, args, err := s.psql.Insert("products").
			Columns("id", "name", "description", "category", "tags", "customizable_areas", "created_at", "updated_at").
			Values(p.ID, p.Name, p.Description, string(p.Category), p.Tags, p.CustomizableAreas, p.CreatedAt, p.UpdatedAt).
			ToSql()
		if err != nil {
			return stats, fmt.Errorf("failed to build product insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return stats, fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
		stats.products++

		for _, v := range e.variants(p.ID, now) {
			query, args, err := s.psql.Insert("product_variants").
				Columns("id", "product_id", "sku", "size", "color", "color_hex", "weight_grams",
					"dimensions", "image_urls", "material", "gender", "buy_price", "sell_price",
					"created_at", "updated_at").
				Values(v.ID, v.ProductID, v.SKU, v.Size, v.Color, v.ColorHex, v.WeightGrams,
					v.Dimensions, v.ImageURLs, v.Material, v.Gender, v.BuyPrice.String(), v.SellPrice.String(),
					v.CreatedAt, v.UpdatedAt).
				ToSql()
			if err != nil {
				return stats, fmt.Errorf("failed to build variant insert: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return stats, fmt.Errorf("failed to insert variant %s: %w", v.SKU, err)
			}
			stats.variants++

			query, args, err = s.psql.Insert("inventory").
				Columns("product_variant_id", "quantity_on_hand", "quantity_reserved", "last_counted_at").
				Values(v.ID, 10+s.rng.IntN(50), 0, now).
				ToSql()
			if err != nil {
				return stats, fmt.Errorf("failed to build inventory insert: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return stats, fmt.Errorf("failed to insert inventory for %s: %w", v.SKU, err)
			}
			stats.inventory++
		}

		s.logger.InfoContext(ctx, "product seeded",
			slog.String("name", p.Name),
			slog.String("category", string(p.Category)))
	}

	return stats, nil
}

func main() {
	var (
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun   = flag.Bool("dry-run", false, "Print the catalog without touching the database")
	)
	flag.Parse()

	log := logger.SetupLogger(*logLevel, "text").Logger

	entries := catalog()

	if *dryRun {
		total := 0
		for _, e := range entries {
			vs := e.variants(uuid.Nil, time.Now())
			total += len(vs)
			fmt.Printf("%-24s %-11s %3d variants  (%s ... %s)\n",
				e.product.Name, e.product.Category, len(vs), vs[0].SKU, vs[len(vs)-1].SKU)
		}
		fmt.Printf("\n[DRY RUN] %d products, %d variants; no changes were made\n", len(entries), total)
		return
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.NewDatabase(ctx, &db.Config{
		URL:            cfg.Database.URL,
		MaxConnections: 2,
		MinConnections: 1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	s := &seeder{
		psql:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: log,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}

	log.Info("starting database seeding")

	var stats seedStats
	err = database.Transaction(ctx, func(tx pgx.Tx) error {
		var err error
		stats, err = s.run(ctx, tx, entries)
		return err
	})
	if err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("\n" + strings.Repeat("=", 40))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Products:  %d\n", stats.products)
	fmt.Printf("Variants:  %d\n", stats.variants)
	fmt.Printf("Inventory: %d\n", stats.inventory)

	log.Info("seed operation completed",
		slog.Int("products", stats.products),
		slog.Int("variants", stats.variants),
		slog.Int("inventory", stats.inventory))
}
