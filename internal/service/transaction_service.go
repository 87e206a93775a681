package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tvandenberg/portfolio-tracker/internal/api/request"
	"github.com/tvandenberg/portfolio-tracker/internal/model"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
// Transactions are immutable once created: the service exposes create,
// read, and whole-record delete, never update.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	positionRepo    *repository.PositionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	positionRepo *repository.PositionRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		positionRepo:    positionRepo,
	}
}

// GetTransactionsPerPosition retrieves a position's transactions in stored
// insertion order — the same order the ledger replays them in.
func (s *TransactionService) GetTransactionsPerPosition(positionID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactionsOnPositionID(positionID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction validates the target position exists and stores a new
// buy/sell record.
//
// An over-sell (selling more shares than currently held) is deliberately
// accepted here: the ledger absorbs it as a full liquidation. Callers that
// want a hard error must check holdings before submitting.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	if _, err := s.positionRepo.GetPositionOnID(req.PositionID); err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction date: %w", err)
	}

	transaction := &model.Transaction{
		ID:         uuid.New().String(),
		PositionID: req.PositionID,
		Date:       transactionDate,
		Type:       req.Type,
		Shares:     req.Shares,
		Price:      req.Price,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction as a whole record. Derived state is
// never stored, so no recalculation is needed — the next read replays the
// remaining transactions.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}
