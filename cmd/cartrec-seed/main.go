// Bulk data generator for cartrec. Fills Redis with synthetic products,
// customers and purchase history so the recommendation API has something to
// chew on in local and demo environments.
//
// Usage:
//
//	cartrec-seed -products 200 -customers 500 -orders 2000
//
// Env vars:
//
//	CARTREC_REDIS_ADDR     — Redis address (default: localhost:6379)
//	CARTREC_REDIS_PASSWORD — Redis password
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kasuga-cloud/cartrec/internal/db"
	dbRedis "github.com/kasuga-cloud/cartrec/internal/db/redis"
	"github.com/kasuga-cloud/cartrec/internal/domain"
	catalogrepo "github.com/kasuga-cloud/cartrec/internal/repository/catalog"
	customerrepo "github.com/kasuga-cloud/cartrec/internal/repository/customer"
	historyrepo "github.com/kasuga-cloud/cartrec/internal/repository/history"
)

const (
	hashBatchSize = 100
	rowBatchSize  = 500

	regionCount = 47
)

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

type config struct {
	products  int
	customers int
	orders    int
	seed      int64
	reset     bool
}

func parseFlags() config {
	cfg := config{}
	flag.IntVar(&cfg.products, "products", 100, "number of products to create")
	flag.IntVar(&cfg.customers, "customers", 200, "number of customers to create")
	flag.IntVar(&cfg.orders, "orders", 1000, "number of orders to create")
	flag.Int64Var(&cfg.seed, "seed", time.Now().UnixNano(), "random seed (fixed seed gives reproducible data)")
	flag.BoolVar(&cfg.reset, "reset", false, "delete existing cartrec keys first")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config) error {
	start := time.Now()
	rng := rand.New(rand.NewSource(cfg.seed))

	store, err := connect()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, 10*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	if cfg.reset {
		if err := stageReset(ctx, store); err != nil {
			return err
		}
	}

	productIDs, err := stageProducts(ctx, store, rng, cfg.products)
	if err != nil {
		return err
	}

	customers, err := stageCustomers(ctx, store, rng, cfg.customers)
	if err != nil {
		return err
	}

	rows, err := stageOrders(ctx, store, rng, cfg.orders, customers, productIDs)
	if err != nil {
		return err
	}

	log.Printf("DONE in %s", time.Since(start).Round(time.Millisecond))
	log.Printf("  products: %d, customers: %d, orders: %d, history rows: %d",
		len(productIDs), len(customers), cfg.orders, rows)

	return nil
}

func connect() (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{env("CARTREC_REDIS_ADDR", "localhost:6379")},
		Password: os.Getenv("CARTREC_REDIS_PASSWORD"),
	})
	if err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	return store, nil
}

func stageReset(ctx context.Context, store db.Store) error {
	log.Println("=== Stage 0: Reset ===")

	patterns := []string{
		catalogrepo.ProductKey("*"),
		customerrepo.Key("*"),
	}

	deleted := 0
	for _, pattern := range patterns {
		keys, err := store.Scan(ctx, pattern)
		if err != nil {
			return fmt.Errorf("scan %s: %w", pattern, err)
		}
		for _, key := range keys {
			if err := store.Del(ctx, key); err != nil {
				return fmt.Errorf("del %s: %w", key, err)
			}
			deleted++
		}
	}

	if err := store.Del(ctx, historyrepo.RowsKey()); err != nil {
		return fmt.Errorf("del history rows: %w", err)
	}

	log.Printf("reset done: %d keys deleted", deleted)
	return nil
}

var productWords = []string{
	"Matcha", "Yuzu", "Sakura", "Hinoki", "Kombu", "Shiso", "Umeboshi",
	"Sencha", "Mochi", "Ponzu", "Wasabi", "Azuki", "Hojicha", "Daikon",
}

var productKinds = []string{
	"Tea", "Soap", "Candle", "Snack", "Sauce", "Powder", "Oil", "Salt",
}

func stageProducts(ctx context.Context, store db.Store, rng *rand.Rand, count int) ([]string, error) {
	log.Println("=== Stage 1: Products ===")

	ids := make([]string, 0, count)
	items := make([]db.HashSetItem, 0, hashBatchSize)

	for i := 0; i < count; i++ {
		id := uuid.NewString()
		ids = append(ids, id)

		name := fmt.Sprintf("%s %s",
			productWords[rng.Intn(len(productWords))],
			productKinds[rng.Intn(len(productKinds))],
		)

		// Roughly 1 in 20 products is suspended, to exercise catalog filtering.
		suspended := "0"
		if rng.Intn(20) == 0 {
			suspended = "1"
		}

		items = append(items, db.HashSetItem{
			Key: catalogrepo.ProductKey(id),
			Fields: map[string]string{
				catalogrepo.FieldVariantID: id,
				catalogrepo.FieldName:      name,
				catalogrepo.FieldSuspended: suspended,
			},
		})

		if len(items) == hashBatchSize {
			if err := store.HSetMulti(ctx, items); err != nil {
				return nil, fmt.Errorf("hset products: %w", err)
			}
			items = items[:0]
		}
	}
	if len(items) > 0 {
		if err := store.HSetMulti(ctx, items); err != nil {
			return nil, fmt.Errorf("hset products: %w", err)
		}
	}

	log.Printf("products done: %d created", len(ids))
	return ids, nil
}

var firstNames = []string{
	"Hana", "Ken", "Yui", "Sora", "Ren", "Aoi", "Mei", "Riku", "Nao", "Kaito",
}

var lastNames = []string{
	"Sato", "Suzuki", "Takahashi", "Tanaka", "Watanabe", "Ito", "Yamamoto",
	"Nakamura", "Kobayashi", "Kato",
}

type seedCustomer struct {
	id     string
	region string
}

func stageCustomers(ctx context.Context, store db.Store, rng *rand.Rand, count int) ([]seedCustomer, error) {
	log.Println("=== Stage 2: Customers ===")

	customers := make([]seedCustomer, 0, count)
	items := make([]db.HashSetItem, 0, hashBatchSize)

	for i := 0; i < count; i++ {
		id := uuid.NewString()
		region := fmt.Sprintf("JP-%02d", 1+rng.Intn(regionCount))
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]

		customers = append(customers, seedCustomer{id: id, region: region})

		items = append(items, db.HashSetItem{
			Key: customerrepo.Key(id),
			Fields: map[string]string{
				customerrepo.FieldID:        id,
				customerrepo.FieldEmail:     fmt.Sprintf("%s.%s.%d@example.com", first, last, i),
				customerrepo.FieldFirstName: first,
				customerrepo.FieldLastName:  last,
				customerrepo.FieldRegion:    region,
			},
		})

		if len(items) == hashBatchSize {
			if err := store.HSetMulti(ctx, items); err != nil {
				return nil, fmt.Errorf("hset customers: %w", err)
			}
			items = items[:0]
		}
	}
	if len(items) > 0 {
		if err := store.HSetMulti(ctx, items); err != nil {
			return nil, fmt.Errorf("hset customers: %w", err)
		}
	}

	log.Printf("customers done: %d created", len(customers))
	return customers, nil
}

func stageOrders(
	ctx context.Context,
	store db.Store,
	rng *rand.Rand,
	count int,
	customers []seedCustomer,
	productIDs []string,
) (int, error) {
	log.Println("=== Stage 3: Orders ===")

	if len(customers) == 0 || len(productIDs) == 0 {
		log.Println("orders: skipping (no customers or products)")
		return 0, nil
	}

	total := 0
	batch := make([]string, 0, rowBatchSize)

	for i := 0; i < count; i++ {
		c := customers[rng.Intn(len(customers))]

		lines := 1 + rng.Intn(5)
		for l := 0; l < lines; l++ {
			row := historyrepo.EncodeRow(domain.PurchaseRow{
				CustomerID: c.id,
				RegionCode: c.region,
				ProductID:  productIDs[rng.Intn(len(productIDs))],
				Quantity:   1 + rng.Intn(3),
			})
			batch = append(batch, row)
			total++

			if len(batch) == rowBatchSize {
				if err := store.RPush(ctx, historyrepo.RowsKey(), batch); err != nil {
					return total, fmt.Errorf("rpush history rows: %w", err)
				}
				batch = batch[:0]
			}
		}
	}
	if len(batch) > 0 {
		if err := store.RPush(ctx, historyrepo.RowsKey(), batch); err != nil {
			return total, fmt.Errorf("rpush history rows: %w", err)
		}
	}

	log.Printf("orders done: %d orders, %d rows", count, total)
	return total, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
