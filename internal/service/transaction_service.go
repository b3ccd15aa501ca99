package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/api/request"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
// It maps user-facing transaction types (buy, sell, trade, stake, mine,
// transfer) onto the stored event kinds the tax engine consumes.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// GetTransactions retrieves all stored transactions ordered by date.
func (s *TransactionService) GetTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.GetAllTransactions()
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction records the events described by a validated request.
// Most types map to a single stored transaction; a trade is stored as two,
// a disposal of the outgoing asset and an acquisition of the incoming asset,
// both valued at the trade's fair market value.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) ([]model.Transaction, error) {
	transactions, err := mapCreateRequest(req)
	if err != nil {
		return nil, err
	}

	for i := range transactions {
		if err := s.transactionRepo.InsertTransaction(ctx, &transactions[i]); err != nil {
			return nil, fmt.Errorf("failed to create transaction: %w", err)
		}
	}

	return transactions, nil
}

// ImportTransactions records a validated batch of transactions. Rows are
// inserted in order; on failure the already-inserted rows remain.
func (s *TransactionService) ImportTransactions(ctx context.Context, req request.ImportTransactionsRequest) ([]model.Transaction, error) {
	imported := make([]model.Transaction, 0, len(req.Transactions))
	for i, row := range req.Transactions {
		transactions, err := mapCreateRequest(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		for j := range transactions {
			if err := s.transactionRepo.InsertTransaction(ctx, &transactions[j]); err != nil {
				return nil, fmt.Errorf("row %d: failed to import transaction: %w", i, err)
			}
		}
		imported = append(imported, transactions...)
	}
	return imported, nil
}

// UpdateTransaction applies the non-nil fields of a validated update request
// to an existing transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Date = date
	}
	if req.Type != nil {
		kind, _, err := kindForType(*req.Type)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Kind = kind
	}
	if req.Asset != nil {
		transaction.Asset = *req.Asset
	}
	if req.Quantity != nil {
		quantity, err := decimal.NewFromString(*req.Quantity)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Quantity = quantity
	}
	if req.CostBasis != nil {
		costBasis, err := decimal.NewFromString(*req.CostBasis)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.CostBasisTotal = costBasis
	}
	if req.FairMarketValue != nil {
		fmv, err := decimal.NewFromString(*req.FairMarketValue)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.FairMarketValueTotal = fmv
	}
	if req.Venue != nil {
		transaction.Venue = *req.Venue
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction by its ID.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}

// kindForType maps a user-facing transaction type onto a stored kind. The
// second result reports whether the type is a trade, which callers expand
// into two stored transactions.
func kindForType(transactionType string) (model.TransactionKind, bool, error) {
	switch transactionType {
	case "buy":
		return model.KindAcquire, false, nil
	case "sell":
		return model.KindDispose, false, nil
	case "stake", "mine":
		return model.KindIncome, false, nil
	case "transfer":
		return model.KindTransfer, false, nil
	case "trade":
		return model.KindDispose, true, nil
	default:
		return "", false, fmt.Errorf("unknown transaction type: %s", transactionType)
	}
}

func mapCreateRequest(req request.CreateTransactionRequest) ([]model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	kind, isTrade, err := kindForType(req.Type)
	if err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %w", err)
	}

	costBasis := decimal.Zero
	if req.CostBasis != "" {
		if costBasis, err = decimal.NewFromString(req.CostBasis); err != nil {
			return nil, fmt.Errorf("invalid costBasis: %w", err)
		}
	}
	fmv := decimal.Zero
	if req.FairMarketValue != "" {
		if fmv, err = decimal.NewFromString(req.FairMarketValue); err != nil {
			return nil, fmt.Errorf("invalid fairMarketValue: %w", err)
		}
	}
	// Income lots open at the receipt value.
	if kind == model.KindIncome {
		costBasis = fmv
	}

	now := time.Now()
	transactions := []model.Transaction{{
		ID:                   uuid.New().String(),
		Date:                 date,
		Kind:                 kind,
		Asset:                req.Asset,
		Quantity:             quantity,
		CostBasisTotal:       costBasis,
		FairMarketValueTotal: fmv,
		Venue:                req.Venue,
		CreatedAt:            now,
	}}

	if isTrade {
		toQuantity, err := decimal.NewFromString(req.ToQuantity)
		if err != nil {
			return nil, fmt.Errorf("invalid toQuantity: %w", err)
		}
		// The incoming leg's cost basis is the value given up.
		transactions = append(transactions, model.Transaction{
			ID:             uuid.New().String(),
			Date:           date,
			Kind:           model.KindAcquire,
			Asset:          req.ToAsset,
			Quantity:       toQuantity,
			CostBasisTotal: fmv,
			Venue:          req.Venue,
			CreatedAt:      now,
		})
	}

	return transactions, nil
}
