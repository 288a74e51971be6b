package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/buyer-intake/internal/entity"
	"github.com/xavierca1/buyer-intake/internal/infra/queue"
)

// BuyerStore is the persistence collaborator. It owns identity and the
// version token: Create/BulkCreate assign id and updatedAt, Update compares
// the caller's expected token against the stored one and returns
// entity.ErrConflict on mismatch.
type BuyerStore interface {
	GetByID(ctx context.Context, id string) (*entity.Buyer, error)
	List(ctx context.Context) ([]entity.Buyer, error)
	Create(ctx context.Context, b *entity.Buyer) error
	Update(ctx context.Context, b *entity.Buyer, expectedUpdatedAt time.Time) (*entity.Buyer, error)
	Delete(ctx context.Context, id string) error
	BulkCreate(ctx context.Context, buyers []entity.Buyer) (int, error)
}

type QueueProducerInterface interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}
