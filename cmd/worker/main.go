package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhi-28-key/abhimusickeys-server/internal/adapter/repo"
	"github.com/abhi-28-key/abhimusickeys-server/internal/domain"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
)

// The sweep folds the legacy redundant flags into the canonical
// purchaseStatus keys for every entitlement document. It is additive only:
// the legacy field names stay in place for old clients, and re-running the
// sweep is a no-op because the store merge never flips a flag back.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	store := repo.NewEntitlementStore(infra.NewSQLRunner(pool, logger))

	listCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	records, err := store.ListAll(listCtx)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: list entitlements failed")
	}

	var swept, updated int
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		swept++
		plans := missingCanonical(&rec)
		if len(plans) == 0 {
			continue
		}
		for _, plan := range plans {
			grantCtx, cancelGrant := context.WithTimeout(ctx, 5*time.Second)
			err := store.GrantPlan(grantCtx, rec.UID, plan, rec.Subscription)
			cancelGrant()
			if err != nil {
				logger.Error().Err(err).Str("uid", rec.UID).Str("plan", string(plan)).Msg("worker: fold failed")
				continue
			}
		}
		updated++
		logger.Info().Str("uid", rec.UID).Int("plans", len(plans)).Msg("worker: folded legacy flags")
	}

	logger.Info().Int("swept", swept).Int("updated", updated).Msg("worker: sweep complete")
}

// missingCanonical returns the plans a document grants through legacy fields
// without the matching purchaseStatus key being set yet.
func missingCanonical(rec *domain.EntitlementRecord) []domain.Plan {
	var out []domain.Plan
	if rec.IntermediateAccess && !rec.PurchaseStatus.Intermediate {
		out = append(out, domain.PlanIntermediate)
	}
	if rec.AdvancedAccess && !rec.PurchaseStatus.Advanced {
		out = append(out, domain.PlanAdvanced)
	}
	stylesLegacy := rec.HasPurchasedIndianStyles || rec.HasStylesTonesAccess || rec.HasIndianStylesAccess
	if stylesLegacy && !rec.PurchaseStatus.StylesTones {
		out = append(out, domain.PlanStylesTones)
	}
	return out
}
