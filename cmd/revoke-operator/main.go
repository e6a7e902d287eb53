package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/config"
	"github.com/furnshop/storefront/internal/repository/postgres"
	"github.com/furnshop/storefront/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/revoke-operator/main.go <operator-id>")
		os.Exit(1)
	}

	operatorID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid operator ID %q: %v\n", os.Args[1], err)
		os.Exit(1)
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

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	operator, err := repos.Operator.GetByID(ctx, operatorID)
	if err != nil {
		if errors.IsNotFound(err) {
			fmt.Fprintf(os.Stderr, "No operator with ID %s\n", operatorID)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load operator: %v\n", err)
		}
		os.Exit(1)
	}

	if !operator.IsActive {
		fmt.Printf("Operator %q is already revoked\n", operator.Name)
		return
	}

	operator.IsActive = false
	if err := repos.Operator.Update(ctx, operator); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to revoke operator: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Revoked operator %q (%s); its API key no longer opens /v1/admin\n", operator.Name, operator.ID)
}
