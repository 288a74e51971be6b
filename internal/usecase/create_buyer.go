package usecase

import (
	"context"
	"log/slog"

	"github.com/xavierca1/buyer-intake/internal/entity"
	"github.com/xavierca1/buyer-intake/internal/infra/queue"
)

type CreateBuyerUseCase struct {
	Repo     BuyerStore
	History  entity.HistoryRepositoryInterface
	Producer QueueProducerInterface
}

func NewCreateBuyerUseCase(
	repo BuyerStore,
	history entity.HistoryRepositoryInterface,
	producer QueueProducerInterface,
) *CreateBuyerUseCase {
	return &CreateBuyerUseCase{
		Repo:     repo,
		History:  history,
		Producer: producer,
	}
}

// Execute validates the raw input, persists the normalized buyer (the store
// assigns id and the version token) and records a creation history entry.
// Validation failures come back as ValidationErrors, never as a panic.
func (uc *CreateBuyerUseCase) Execute(ctx context.Context, fields map[string]any, ownerID string) (*entity.Buyer, error) {
	buyer, verrs := ValidateBuyerCreate(fields)
	if verrs != nil {
		return nil, verrs
	}
	buyer.OwnerID = ownerID

	txn := NewTransaction()
	txn.AddOperation("create_buyer", func(ctx context.Context) error {
		return uc.Repo.Create(ctx, buyer)
	})
	txn.AddCompensation("delete_buyer", func(ctx context.Context) error {
		return uc.Repo.Delete(ctx, buyer.ID)
	})
	if uc.History != nil {
		txn.AddOperation("append_history", func(ctx context.Context) error {
			return uc.History.Append(ctx, &entity.BuyerHistory{
				BuyerID:   buyer.ID,
				ChangedBy: ownerID,
				Diff:      diffBuyers(&entity.Buyer{}, buyer),
			})
		})
	}

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to persist buyer: " + err.Error(),
		}
	}

	if uc.Producer != nil {
		payload := queue.LeadEventPayload{
			Event:        queue.EventLeadCreated,
			BuyerID:      buyer.ID,
			FullName:     buyer.FullName,
			Email:        buyer.Email,
			Phone:        buyer.Phone,
			City:         buyer.City,
			PropertyType: buyer.PropertyType,
			OwnerID:      buyer.OwnerID,
		}
		if err := uc.Producer.PublishLeadEvent(ctx, payload); err != nil {
			// the lead is saved either way; the notification is best effort
			slog.Warn("failed to publish lead.created event", "buyer_id", buyer.ID, "error", err)
		}
	}

	return buyer, nil
}
