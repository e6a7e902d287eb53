package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/cart"
	"github.com/furnshop/storefront/internal/config"
	"github.com/furnshop/storefront/internal/repository/postgres"
	"github.com/furnshop/storefront/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-product/main.go <name>")
		fmt.Println("Example: go run cmd/find-product/main.go \"oak chair\"")
		os.Exit(1)
	}

	query := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	catalog := service.NewCatalogService(repos, logger)
	profiles := service.ProfilesFromConfig(cfg.Pricing)

	fmt.Printf("Searching catalog for: %s\n\n", query)

	products, err := catalog.Search(context.Background(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to search catalog: %v\n", err)
		os.Exit(1)
	}

	if len(products) == 0 {
		fmt.Printf("No product matches '%s'.\n", query)
		os.Exit(1)
	}

	for _, p := range products {
		item, err := catalog.LineItemFor(context.Background(), p.ID.String())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to price %s: %v\n", p.ID, err)
			continue
		}

		// price a single unit the way the cart and checkout would
		session := cart.NewSession()
		session.Add(item)
		preview := session.Price(profiles.Preview)
		summary := session.Price(profiles.Summary)

		fmt.Printf("%s\n", p.Name)
		fmt.Printf("  ID:        %s\n", p.ID.String())
		fmt.Printf("  Category:  %s\n", p.Category)
		fmt.Printf("  Price:     %s (MRP %.2f)\n", item.UnitPrice.StringFixed(2), p.MRP)
		fmt.Printf("  In stock:  %d\n", p.Stock)
		fmt.Printf("  Cart total for one:     %s\n", preview.Total.StringFixed(2))
		if preview.Progress != nil && preview.Progress.Remaining.IsPositive() {
			fmt.Printf("  Free shipping after:    %s more\n", preview.Progress.Remaining.StringFixed(2))
		}
		fmt.Printf("  Checkout total for one: %s\n\n", summary.Total.StringFixed(2))
	}

	fmt.Printf("%d product(s) found\n", len(products))
}
