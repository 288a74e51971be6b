package usecase

import (
	"context"

	"github.com/xavierca1/buyer-intake/internal/csv"
)

type ExportBuyersUseCase struct {
	Repo BuyerStore
}

func NewExportBuyersUseCase(repo BuyerStore) *ExportBuyersUseCase {
	return &ExportBuyersUseCase{Repo: repo}
}

// Execute serializes the filtered record set as CSV text, using the same
// filter semantics as listing so an export matches what the caller sees.
func (uc *ExportBuyersUseCase) Execute(ctx context.Context, filter BuyerFilter) (string, error) {
	all, err := uc.Repo.List(ctx)
	if err != nil {
		return "", &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to list buyers: " + err.Error(),
		}
	}
	return csv.Encode(FilterBuyers(all, filter))
}
