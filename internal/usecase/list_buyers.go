package usecase

import "context"

// PageSize is the fixed page length of buyer listings.
const PageSize = 10

type ListBuyersUseCase struct {
	Repo BuyerStore
}

func NewListBuyersUseCase(repo BuyerStore) *ListBuyersUseCase {
	return &ListBuyersUseCase{Repo: repo}
}

// Execute filters the full stored set and returns one page plus the total
// match count. Pagination never reorders; the store's ordering is preserved.
func (uc *ListBuyersUseCase) Execute(ctx context.Context, filter BuyerFilter, page int) (*ListBuyersOutput, error) {
	all, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to list buyers: " + err.Error(),
		}
	}

	matched := FilterBuyers(all, filter)

	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &ListBuyersOutput{
		Total: len(matched),
		Items: matched[start:end],
	}, nil
}
