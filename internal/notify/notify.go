// Package notify delivers balance notifications to the notification
// collaborator. Delivery is best effort: callers log a failed notification
// and move on, it never affects the posting that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/pkg/clients"
)

type Client struct {
	url    string
	client clients.HTTPClientI
}

func New(url string, client clients.HTTPClientI) *Client {
	return &Client{
		url:    url,
		client: client,
	}
}

type payload struct {
	UserID        int             `json:"user_id"`
	TransactionID int             `json:"transaction_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

func (c *Client) Notify(ctx context.Context, userID int, txn *domain.Transaction, currency string, newBalance decimal.Decimal) error {
	body, err := json.Marshal(payload{
		UserID:        userID,
		TransactionID: txn.ID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		Currency:      currency,
		NewBalance:    newBalance,
	})
	if err != nil {
		return fmt.Errorf("can't marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/notifications/balance", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("can't build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("can't deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}
	return nil
}
