// Command seed wipes and repopulates the product catalog with generated
// demo data. Existing order items are removed first to satisfy foreign keys.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	catalogpostgres "github.com/Sam99132/full-stack-backend/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	platformmigrations "github.com/Sam99132/full-stack-backend/internal/platform/migrations"
	platformpostgres "github.com/Sam99132/full-stack-backend/internal/platform/postgres"
)

var categories = []string{"Electronics", "Accessories", "Furniture", "Home", "Clothing", "Books", "Sports", "Toys"}

var adjectives = []string{"Premium", "Wireless", "Ergonomic", "Smart", "Vintage", "Modern", "Durable", "Compact", "Luxury", "Essential"}

var nouns = []string{"Headphones", "Watch", "Chair", "Tracker", "Backpack", "Keyboard", "Mug", "Speaker", "T-Shirt", "Bottle", "Camera", "Plant", "Desk", "Lamp", "Shoes", "Wallet"}

var images = []string{
	"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800&q=80",
	"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800&q=80",
	"https://images.unsplash.com/photo-1592078615290-033ee584e267?w=800&q=80",
	"https://images.unsplash.com/photo-1575311373937-040b8e1fd5b6?w=800&q=80",
	"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800&q=80",
	"https://images.unsplash.com/photo-1587829741301-dc798b91add1?w=800&q=80",
	"https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=800&q=80",
	"https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=800&q=80",
	"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800&q=80",
	"https://images.unsplash.com/photo-1602143407151-01114192003f?w=800&q=80",
	"https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?w=800&q=80",
	"https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=800&q=80",
}

func main() {
	count := flag.Int("count", 200, "number of products to generate")
	flag.Parse()

	_ = godotenv.Load()
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN must be set")
	}

	ctx := context.Background()
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := platformmigrations.Run(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	log.Println("start seeding")
	if err := db.WithContext(ctx).Exec("DELETE FROM order_items").Error; err != nil {
		log.Fatalf("failed to clear order items: %v", err)
	}
	if err := db.WithContext(ctx).Exec("DELETE FROM products").Error; err != nil {
		log.Fatalf("failed to clear products: %v", err)
	}

	repo := catalogpostgres.NewRepository(db)
	for i := 0; i < *count; i++ {
		product, err := generateProduct(i)
		if err != nil {
			log.Fatalf("failed to generate product %d: %v", i+1, err)
		}
		if _, err := repo.Create(ctx, product); err != nil {
			log.Fatalf("failed to insert product %d: %v", i+1, err)
		}
	}
	log.Printf("seeding finished, %d products inserted", *count)
}

func generateProduct(index int) (*catalogdomain.Product, error) {
	adj := pick(adjectives)
	noun := pick(nouns)
	price := decimal.NewFromFloat(rand.Float64()*19500 + 500).Round(2)
	return catalogdomain.NewProduct(
		fmt.Sprintf("%s %s %d", adj, noun, index+1),
		fmt.Sprintf("This is a high-quality %s %s perfect for your needs. It features top-notch materials and excellent craftsmanship.",
			strings.ToLower(adj), strings.ToLower(noun)),
		price,
		rand.Intn(200),
		pick(categories),
		pick(images),
	)
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}
