package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/buyer-intake/internal/entity"
	"github.com/xavierca1/buyer-intake/internal/infra/queue"
)

type MockBuyerStore struct {
	mock.Mock
}

func (m *MockBuyerStore) GetByID(ctx context.Context, id string) (*entity.Buyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Buyer), args.Error(1)
}

func (m *MockBuyerStore) List(ctx context.Context) ([]entity.Buyer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Buyer), args.Error(1)
}

func (m *MockBuyerStore) Create(ctx context.Context, b *entity.Buyer) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBuyerStore) Update(ctx context.Context, b *entity.Buyer, expectedUpdatedAt time.Time) (*entity.Buyer, error) {
	args := m.Called(ctx, b, expectedUpdatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Buyer), args.Error(1)
}

func (m *MockBuyerStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBuyerStore) BulkCreate(ctx context.Context, buyers []entity.Buyer) (int, error) {
	args := m.Called(ctx, buyers)
	return args.Int(0), args.Error(1)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, h *entity.BuyerHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByBuyer(ctx context.Context, buyerID string, limit int) ([]entity.BuyerHistory, error) {
	args := m.Called(ctx, buyerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BuyerHistory), args.Error(1)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
