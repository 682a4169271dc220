// Package main implements a standalone seed script that populates the
// storefront products table with realistic fashion catalog data for local
// development and demos.
//
// Run: go run ./cmd/seed
package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const productsPerCategory = 40

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// deterministicID produces a stable product ID from a namespace and an index
// so re-runs upsert the same rows instead of duplicating the catalog.
func deterministicID(namespace string, index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", namespace, index)))
	return fmt.Sprintf("%x", h[:12])
}

type categoryDef struct {
	name   string
	nouns  []string
	sizes  []string
	colors []string
}

var categories = []categoryDef{
	{"Dresses", []string{"Wrap Dress", "Maxi Dress", "Shirt Dress", "Pleated Dress"},
		[]string{"XS", "S", "M", "L", "XL"}, []string{"black", "navy", "burgundy", "cream"}},
	{"Shirts", []string{"Linen Shirt", "Oxford Shirt", "Flannel Shirt", "Silk Blouse"},
		[]string{"S", "M", "L", "XL"}, []string{"white", "blue", "olive", "stone"}},
	{"Jackets", []string{"Denim Jacket", "Bomber Jacket", "Trench Coat", "Puffer Jacket"},
		[]string{"S", "M", "L"}, []string{"black", "khaki", "camel"}},
	{"Trousers", []string{"Wide-Leg Trousers", "Chino Trousers", "Palazzo Pants", "Cargo Pants"},
		[]string{"S", "M", "L", "XL"}, []string{"black", "beige", "grey"}},
	{"Accessories", []string{"Silk Scarf", "Leather Belt", "Tote Bag", "Wool Beanie"},
		nil, nil},
}

var adjectives = []string{"Classic", "Relaxed", "Tailored", "Everyday", "Premium", "Soft-Touch", "Vintage", "Modern"}

var brands = []string{"Aria", "Nomad", "Refka", "Tuva", "Velora"}

var badges = []string{"", "", "", "trending", "hot", "new", "sale"}

func main() {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "storefront")
	pass := getEnv("POSTGRES_PASSWORD", "storefront_secret")
	dbname := getEnv("POSTGRES_DB", "storefront")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, dbname)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	rng := rand.New(rand.NewSource(42))

	total := 0
	for _, cat := range categories {
		for i := 0; i < productsPerCategory; i++ {
			id := deterministicID(cat.name, i)
			name := fmt.Sprintf("%s %s", adjectives[rng.Intn(len(adjectives))], cat.nouns[i%len(cat.nouns)])
			brand := brands[rng.Intn(len(brands))]
			price := int64(400 + rng.Intn(36)*100)
			badge := badges[rng.Intn(len(badges))]

			var originalPrice *int64
			if badge == "sale" || rng.Intn(4) == 0 {
				op := price * int64(100+10+rng.Intn(50)) / 100
				originalPrice = &op
			}

			rating := 3.0 + rng.Float64()*2.0
			outOfStock := rng.Intn(12) == 0
			imageURL := fmt.Sprintf("https://cdn.fashion-haven.dev/products/%s.jpg", id)

			_, err := pool.Exec(ctx, `
				INSERT INTO products (id, name, category, brand, price, original_price, sizes, colors, badge, rating, image_url, out_of_stock, active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE)
				ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name,
					category = EXCLUDED.category,
					brand = EXCLUDED.brand,
					price = EXCLUDED.price,
					original_price = EXCLUDED.original_price,
					sizes = EXCLUDED.sizes,
					colors = EXCLUDED.colors,
					badge = EXCLUDED.badge,
					rating = EXCLUDED.rating,
					image_url = EXCLUDED.image_url,
					out_of_stock = EXCLUDED.out_of_stock`,
				id, name, cat.name, brand, price, originalPrice,
				cat.sizes, cat.colors, badge, float64(int(rating*10))/10,
				imageURL, outOfStock,
			)
			if err != nil {
				log.Fatalf("insert product %s: %v", id, err)
			}
			total++
		}
	}

	log.Printf("seeded %d products across %d categories", total, len(categories))
}
