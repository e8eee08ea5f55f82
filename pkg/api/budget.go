package api

import (
	"context"
	"net/http"
)

// TransactionRecord is a budget transaction as the server sends it.
// Recurrence metadata is stored but never expanded into future
// occurrences by the client.
type TransactionRecord struct {
	ID                 string  `json:"_id"`
	UserID             string  `json:"userId"`
	Amount             float64 `json:"amount"`
	Type               string  `json:"type"`
	Category           string  `json:"category"`
	Note               string  `json:"note,omitempty"`
	Date               string  `json:"date"`
	IsRecurring        bool    `json:"isRecurring,omitempty"`
	RecurringFrequency string  `json:"recurringFrequency,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt,omitempty"`
}

// TransactionInput is the payload for recording a transaction.
type TransactionInput struct {
	UserID             string  `json:"userId,omitempty"`
	Amount             float64 `json:"amount"`
	Type               string  `json:"type"`
	Category           string  `json:"category"`
	Note               string  `json:"note,omitempty"`
	Date               string  `json:"date"`
	IsRecurring        bool    `json:"isRecurring,omitempty"`
	RecurringFrequency string  `json:"recurringFrequency,omitempty"`
}

// SummaryRecord is the /budget/summary response shape. Any field the
// server omits or mistypes is zeroed by the caller before use.
type SummaryRecord struct {
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpenses     float64            `json:"totalExpenses"`
	Balance           float64            `json:"balance"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	MonthlyTrends     []MonthlyTrend     `json:"monthlyTrends"`
}

// MonthlyTrend is one month's income/expense pair in the summary.
type MonthlyTrend struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// ListTransactions fetches every transaction for the session user.
func (c *Client) ListTransactions(ctx context.Context) ([]TransactionRecord, error) {
	if c.userID == "" {
		return []TransactionRecord{}, nil
	}

	raw, err := c.do(ctx, "budget", http.MethodGet, "/budget", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[TransactionRecord]("budget", raw), nil
}

// CreateTransaction records a transaction for the session user.
func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) error {
	if c.userID == "" {
		return nil
	}

	in.UserID = c.userID

	_, err := c.do(ctx, "budget", http.MethodPost, "/budget", nil, in)

	return err
}

// DeleteTransaction deletes a transaction by id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	_, err := c.do(ctx, "budget", http.MethodDelete, "/budget/"+id, nil, nil)

	return err
}

// BudgetSummary fetches the server-side budget summary. The caller
// falls back to a local recompute when this secondary read fails.
func (c *Client) BudgetSummary(ctx context.Context) (*SummaryRecord, error) {
	if c.userID == "" {
		return &SummaryRecord{CategoryBreakdown: map[string]float64{}}, nil
	}

	raw, err := c.do(ctx, "budget", http.MethodGet, "/budget/summary", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeItem[SummaryRecord]("budget", raw)
}
