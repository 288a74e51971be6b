package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// Transaction runs a sequence of store operations with best-effort
// compensation: if operation N fails, the compensations registered for
// operations 0..N-1 run in reverse order.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{
		operations:    []Operation{},
		compensations: []Compensation{},
	}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations = append(t.compensations, Compensation{name, fn})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation %q failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		if i >= len(t.compensations) {
			continue
		}
		comp := t.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			slog.Warn("compensation failed, data may be inconsistent", "compensation", comp.Name, "error", err)
		}
	}
}
