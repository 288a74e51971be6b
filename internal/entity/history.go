package entity

import (
	"context"
	"time"
)

// FieldChange records one field of a buyer before and after a mutation.
type FieldChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

type BuyerHistory struct {
	ID        string                 `json:"id"`
	BuyerID   string                 `json:"buyerId"`
	ChangedBy string                 `json:"changedBy"`
	Diff      map[string]FieldChange `json:"diff"`
	ChangedAt time.Time              `json:"changedAt"`
}

type HistoryRepositoryInterface interface {
	Append(ctx context.Context, h *BuyerHistory) error
	ListByBuyer(ctx context.Context, buyerID string, limit int) ([]BuyerHistory, error)
}
