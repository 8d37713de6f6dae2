package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhi-28-key/abhimusickeys-server/internal/adapter/repo"
	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
)

func main() {
	var (
		uidFlag   string
		planFlag  string
		grantFlag bool
	)

	flag.StringVar(&uidFlag, "uid", "", "Firebase uid of the user")
	flag.StringVar(&planFlag, "plan", "", "plan to grant (intermediate, advanced, styles-tones)")
	flag.BoolVar(&grantFlag, "grant", false, "grant the plan instead of just inspecting")
	flag.Parse()

	uid := strings.TrimSpace(uidFlag)
	if uid == "" {
		exitWithError(errors.New("-uid is required"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "userplan").Logger()
	store := repo.NewEntitlementStore(infra.NewSQLRunner(pool, logger))

	if grantFlag {
		plan, err := domain.ParsePlan(planFlag)
		if err != nil {
			exitWithError(err)
		}
		if !plan.Paid() {
			exitWithError(fmt.Errorf("plan %q is free and never persisted", plan))
		}
		now := time.Now().UTC()
		sub := &domain.Subscription{Plan: plan, Status: "active", GrantedAt: now}
		grantCtx, cancelGrant := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelGrant()
		if err := store.GrantPlan(grantCtx, uid, plan, sub); err != nil {
			exitWithError(fmt.Errorf("failed to grant plan: %w", err))
		}
		for _, implied := range plan.Implied() {
			if err := store.GrantPlan(grantCtx, uid, implied, sub); err != nil {
				exitWithError(fmt.Errorf("failed to grant implied plan %s: %w", implied, err))
			}
		}
		fmt.Printf("Granted %s to %s\n", plan, uid)
	}

	inspectCtx, cancelInspect := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelInspect()
	rec, err := store.Get(inspectCtx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Printf("User %s has no entitlement document\n", uid)
			return
		}
		exitWithError(fmt.Errorf("failed to load entitlements: %w", err))
	}

	plans := rec.GrantedPlans()
	if len(plans) == 0 {
		fmt.Printf("User %s owns no paid plans\n", uid)
		return
	}
	names := make([]string, 0, len(plans))
	for _, p := range plans {
		names = append(names, string(p))
	}
	fmt.Printf("User %s owns: %s\n", uid, strings.Join(names, ", "))
	if rec.Subscription != nil {
		fmt.Printf("subscription: plan=%s status=%s granted_at=%s\n",
			rec.Subscription.Plan, rec.Subscription.Status, rec.Subscription.GrantedAt.Format(time.RFC3339))
		if rec.Subscription.ExpiresAt != nil {
			fmt.Printf("expires_at=%s (display only, access is not revoked)\n",
				rec.Subscription.ExpiresAt.Format(time.RFC3339))
		}
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
