// Command adduser provisions a dashboard account. There is no public
// signup endpoint: accounts are created by the operator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"channel-stats-backend/internal/common/validation"
	"channel-stats-backend/internal/features/auth/models"
	"channel-stats-backend/internal/features/auth/password"
	authPostgres "channel-stats-backend/internal/features/auth/repository/postgres"
	"channel-stats-backend/internal/platform/db"
)

func main() {
	_ = godotenv.Load()

	var (
		login = flag.String("login", "", "account login (email)")
		pass  = flag.String("password", "", "account password")
		dsn   = flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres connection string")
	)
	flag.Parse()

	if err := validation.ValidateLogin(*login); err != nil {
		log.Fatalf("invalid login: %v", err)
	}
	if err := validation.ValidatePassword(*pass); err != nil {
		log.Fatalf("invalid password: %v", err)
	}
	if *dsn == "" {
		log.Fatal("DATABASE_URL is not set and -dsn was not given")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := db.Open(ctx, *dsn)
	if err != nil {
		log.Fatalf("postgres open: %v", err)
	}
	defer pg.Close()

	if err := db.InitSchema(ctx, pg); err != nil {
		log.Fatalf("schema init: %v", err)
	}

	hash, err := password.Hash(*pass)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	repo := authPostgres.NewUserRepository(pg)
	user := &models.User{
		Login:        *login,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("user %s created\n", *login)
}
