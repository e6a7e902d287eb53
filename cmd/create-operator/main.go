package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/furnshop/storefront/internal/config"
	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/internal/repository/postgres"
)

const minAPIKeyLength = 16

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: create-operator <name> <api-key>")
		os.Exit(2)
	}

	operatorName := strings.TrimSpace(os.Args[1])
	apiKey := os.Args[2]
	if operatorName == "" {
		fmt.Fprintln(os.Stderr, "operator name must not be blank")
		os.Exit(2)
	}
	if len(apiKey) < minAPIKeyLength {
		fmt.Fprintf(os.Stderr, "api key must be at least %d characters\n", minAPIKeyLength)
		os.Exit(2)
	}

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

	if err := postgres.RunMigrations(db, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	operator := &domain.Operator{
		Name:       operatorName,
		APIKeyHash: string(apiKeyHash),
		IsActive:   true,
	}
	if err := repos.Operator.Create(context.Background(), operator); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create operator: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("id:      %s\n", operator.ID)
	fmt.Printf("name:    %s\n", operator.Name)
	fmt.Printf("active:  %t\n", operator.IsActive)
	fmt.Printf("created: %s\n", operator.CreatedAt.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("The key is stored only as a bcrypt hash. Admin requests send it as either header:")
	fmt.Printf("  Authorization: Bearer %s\n", apiKey)
	fmt.Printf("  X-API-Key: %s\n", apiKey)
	fmt.Printf("Revoke with: revoke-operator %s\n", operator.ID)
}
