package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adikrishnan/expense-ledger/internal"
)

// Converter converts a monetary amount between two supported currencies.
// Implementations must treat same-currency conversion as an exact identity
// with no external lookup. The interface is deliberately narrow so a
// caching or batching decorator can wrap it without touching callers.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// RateClient fetches a live rate table anchored at the source currency and
// converts with it. Every cross-currency call issues a fresh lookup: no
// retries, no caching, so the rate used is always current.
type RateClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewRateClient(baseURL string, timeout time.Duration, logger *slog.Logger) *RateClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RateClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type rateTableResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (c *RateClient) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, internal.ErrConversionUnavailable.WithCause(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("rate lookup request failed", "source", from, "error", err)
		return decimal.Zero, internal.ErrConversionUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("rate lookup returned non-success status", "source", from, "status_code", resp.StatusCode)
		return decimal.Zero, internal.ErrConversionUnavailable.WithCause(
			fmt.Errorf("rate source returned status %d", resp.StatusCode))
	}

	var table rateTableResponse
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return decimal.Zero, internal.ErrConversionUnavailable.WithCause(err)
	}

	rate, ok := table.Rates[to]
	if !ok {
		c.logger.Warn("target currency missing from rate table", "source", from, "target", to)
		return decimal.Zero, internal.NewExternalError(
			fmt.Sprintf("rate for %s not found in %s table", to, from),
			internal.ErrCodeRateNotFound)
	}

	// Round half-up to 2 decimal places; amounts are always positive here
	// so Round's half-away-from-zero is half-up.
	converted := decimal.NewFromFloat(rate).Mul(amount).Round(2)

	c.logger.Debug("converted amount",
		"source", from,
		"target", to,
		"rate", rate,
		"amount", amount.String(),
		"converted", converted.String())

	return converted, nil
}
