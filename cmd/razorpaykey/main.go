package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra/credentials"
)

func main() {
	var secretFlag string
	flag.StringVar(&secretFlag, "secret", "", "Razorpay key secret (falls back to RAZORPAY_KEY_SECRET)")
	flag.Parse()

	secret := strings.TrimSpace(secretFlag)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET"))
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "razorpay key secret is required via -secret or environment")
		os.Exit(1)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "razorpaykey").Logger()
	store := credentials.NewStore(infra.NewSQLRunner(pool, logger))

	execCtx, cancelExec := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelExec()
	if err := store.SetRazorpayKeySecret(execCtx, secret); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist razorpay key secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Razorpay key secret stored successfully")
}
