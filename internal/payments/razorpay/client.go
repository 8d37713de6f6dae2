package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the production Razorpay REST endpoint.
const DefaultBaseURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay orders API and verifies checkout signatures.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client. baseURL may be empty for production.
func NewClient(keyID, keySecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Order is the subset of the Razorpay order object this service uses.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder opens a gateway order for the given amount in the smallest
// currency unit. Any non-2xx response is fatal for the checkout attempt;
// nothing here retries.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	if amount <= 0 {
		return nil, errors.New("razorpay: amount must be positive")
	}
	body, err := json.Marshal(orderRequest{Amount: amount, Currency: currency, Receipt: receipt, Notes: notes})
	if err != nil {
		return nil, fmt.Errorf("razorpay: encode order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("razorpay: create order failed with status %d: %s", resp.StatusCode, snippet)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("razorpay: decode order: %w", err)
	}
	if order.ID == "" {
		return nil, errors.New("razorpay: order response missing id")
	}
	return &order, nil
}

// VerifyPaymentSignature checks the signature the checkout widget posts back
// after a successful payment: hex(HMAC-SHA256("<order_id>|<payment_id>",
// key_secret)).
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return errors.New("razorpay: missing verification fields")
	}
	expected := signHex(c.keySecret, orderID+"|"+paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errors.New("razorpay: signature mismatch")
	}
	return nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw webhook body.
func VerifyWebhookSignature(body []byte, signature, webhookSecret string) error {
	if signature == "" {
		return errors.New("razorpay: missing webhook signature")
	}
	expected := signHex(webhookSecret, string(body))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errors.New("razorpay: webhook signature mismatch")
	}
	return nil
}

func signHex(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
