package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
	"github.com/abhi-28-key/abhimusickeys-server/internal/sqlinline"
)

const (
	ProviderRazorpay = "razorpay"
)

// Store keeps third-party API secrets in the integration_tokens table so
// rotating a key does not require redeploying with new env vars.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// RazorpayKeySecret returns the stored gateway secret, or "" when none has
// been set yet.
func (s *Store) RazorpayKeySecret(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderRazorpay)
}

func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetRazorpayKeySecret stores the gateway secret. The key id is public and
// stays in config; only the secret lives here.
func (s *Store) SetRazorpayKeySecret(ctx context.Context, secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("razorpay key secret is required")
	}
	return s.upsert(ctx, ProviderRazorpay, secret, nil)
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}
