package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

type UpdateBuyerUseCase struct {
	Repo    BuyerStore
	History entity.HistoryRepositoryInterface
}

func NewUpdateBuyerUseCase(repo BuyerStore, history entity.HistoryRepositoryInterface) *UpdateBuyerUseCase {
	return &UpdateBuyerUseCase{
		Repo:    repo,
		History: history,
	}
}

// Execute applies a partial update. The provided fields are merged over the
// stored record and the merged view re-validated in full. versionToken must be
// the updatedAt the caller last saw; the store rejects the write with
// entity.ErrConflict when it no longer matches. The use case only checks the
// token's presence and shape, never its freshness.
func (uc *UpdateBuyerUseCase) Execute(
	ctx context.Context,
	id string,
	fields map[string]any,
	versionToken string,
	changedBy string,
) (*entity.Buyer, error) {
	expected, verrs := parseVersionToken(versionToken)
	if verrs != nil {
		return nil, verrs
	}

	current, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, verrs := ValidateBuyerUpdate(current, fields)
	if verrs != nil {
		return nil, verrs
	}
	merged.ID = current.ID
	merged.OwnerID = current.OwnerID

	updated, err := uc.Repo.Update(ctx, merged, expected)
	if err != nil {
		return nil, err
	}

	if uc.History != nil {
		diff := diffBuyers(current, updated)
		if len(diff) > 0 {
			h := &entity.BuyerHistory{
				BuyerID:   updated.ID,
				ChangedBy: changedBy,
				Diff:      diff,
			}
			if herr := uc.History.Append(ctx, h); herr != nil {
				// the update itself succeeded; a missing audit row is not fatal
				slog.Warn("failed to append buyer history", "buyer_id", updated.ID, "error", herr)
			}
		}
	}

	return updated, nil
}

func parseVersionToken(token string) (time.Time, ValidationErrors) {
	if token == "" {
		return time.Time{}, ValidationErrors{{Field: "updatedAt", Message: "is required"}}
	}
	t, err := time.Parse(time.RFC3339Nano, token)
	if err != nil {
		return time.Time{}, ValidationErrors{{Field: "updatedAt", Message: "must be an RFC3339 timestamp"}}
	}
	return t, nil
}
