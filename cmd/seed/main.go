package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/repository/postgres"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	owner := flag.String("owner", "", "principal id (Auth0 sub) that owns the seeded expenses")
	clients := flag.Int("clients", 8, "number of clients")
	employees := flag.Int("employees", 5, "number of employees")
	payments := flag.Int("payments", 20, "number of payments")
	expenses := flag.Int("expenses", 30, "number of expenses")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	migrate := flag.Bool("migrate", true, "apply migrations first")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	if *owner == "" {
		log.Fatal().Msg("-owner is required")
	}

	if *migrate {
		if err := postgres.RunMigrations(databaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	expenseRepo := postgres.NewExpenseRepository(pool, postgres.DefaultQueryTimeout)
	paymentRepo := postgres.NewPaymentRepository(pool, postgres.DefaultQueryTimeout)
	clientRepo := postgres.NewClientRepository(pool, postgres.DefaultQueryTimeout)
	employeeRepo := postgres.NewEmployeeRepository(pool, postgres.DefaultQueryTimeout)

	s := newSeeder(
		service.NewClientService(clientRepo),
		service.NewEmployeeService(employeeRepo),
		service.NewPaymentService(paymentRepo, clientRepo),
		service.NewExpenseService(expenseRepo, clientRepo),
		*seed,
		time.Now(),
	)

	counts, err := s.Run(ctx, *owner, plan{
		Clients:   *clients,
		Employees: *employees,
		Payments:  *payments,
		Expenses:  *expenses,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().
		Str("owner", *owner).
		Int("clients", counts.Clients).
		Int("employees", counts.Employees).
		Int("payments", counts.Payments).
		Int("expenses", counts.Expenses).
		Msg("Database seeded")
}
