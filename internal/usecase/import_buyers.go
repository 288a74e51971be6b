package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/xavierca1/buyer-intake/internal/csv"
	"github.com/xavierca1/buyer-intake/internal/infra/queue"
)

type ImportBuyersUseCase struct {
	Repo     BuyerStore
	Producer QueueProducerInterface
}

func NewImportBuyersUseCase(repo BuyerStore, producer QueueProducerInterface) *ImportBuyersUseCase {
	return &ImportBuyersUseCase{
		Repo:     repo,
		Producer: producer,
	}
}

// Execute runs the bulk-ingestion pipeline: decode the CSV, validate every
// row with the relaxed row rules, then persist the valid records in one
// batch. Row failures never abort the remaining rows; a file where every row
// failed reports zero insertions without touching the store.
func (uc *ImportBuyersUseCase) Execute(ctx context.Context, content string, ownerID string) (*ImportOutcome, error) {
	rows, err := csv.DecodeRows(content)
	if err != nil {
		if errors.Is(err, csv.ErrTooManyRows) {
			return nil, &DomainError{Code: CodeSizeLimit, Message: "Max 200 rows"}
		}
		return nil, &DomainError{Code: CodeMalformedCSV, Message: err.Error()}
	}

	outcome := &ImportOutcome{Errors: []RowError{}}
	for i, row := range rows {
		missing := missingHeaders(row)
		if len(missing) > 0 {
			// a row without the required columns is not worth field-validating
			outcome.Errors = append(outcome.Errors, RowError{
				Index:  i,
				Errors: []string{"Missing headers: " + strings.Join(missing, ", ")},
			})
			continue
		}

		fields := make(map[string]any, len(row))
		for k, v := range row {
			fields[k] = v
		}

		buyer, verrs := ValidateBuyerRow(fields)
		if verrs != nil {
			outcome.Errors = append(outcome.Errors, RowError{Index: i, Errors: verrs.Messages()})
			continue
		}
		buyer.OwnerID = ownerID
		outcome.Valid = append(outcome.Valid, *buyer)
	}

	if len(outcome.Valid) == 0 {
		return outcome, nil
	}

	inserted, err := uc.Repo.BulkCreate(ctx, outcome.Valid)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to persist imported buyers: " + err.Error(),
		}
	}
	outcome.Inserted = inserted

	if uc.Producer != nil {
		payload := queue.LeadEventPayload{
			Event:    queue.EventLeadsImported,
			OwnerID:  ownerID,
			Inserted: inserted,
			Rejected: len(outcome.Errors),
		}
		if err := uc.Producer.PublishLeadEvent(ctx, payload); err != nil {
			slog.Warn("failed to publish leads.imported event", "error", err)
		}
	}

	return outcome, nil
}

func missingHeaders(row map[string]string) []string {
	var missing []string
	for _, h := range csv.Headers {
		if _, ok := row[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}
