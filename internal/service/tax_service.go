package service

import (
	"fmt"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/config"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/engine"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/repository"
)

// TaxService runs the tax engine over the stored transaction history.
type TaxService struct {
	transactionRepo *repository.TransactionRepository
	prices          engine.PriceLookup
	cfg             config.TaxConfig
}

// NewTaxService creates a new TaxService. The price lookup may be nil, in
// which case holdings are reported without current values.
func NewTaxService(
	transactionRepo *repository.TransactionRepository,
	prices engine.PriceLookup,
	cfg config.TaxConfig,
) *TaxService {
	return &TaxService{
		transactionRepo: transactionRepo,
		prices:          prices,
		cfg:             cfg,
	}
}

// ComputeReport calculates the full tax report for the given accounting
// method over every stored transaction.
func (s *TaxService) ComputeReport(method string) (*model.TaxResult, error) {
	m, err := engine.ParseMethod(method)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetAllTransactions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeTaxReport, err)
	}

	eng := engine.New(engine.Config{
		ShortTermRate:      s.cfg.ShortTermRate,
		LongTermRate:       s.cfg.LongTermRate,
		HarvestThreshold:   s.cfg.HarvestThreshold,
		LongTermWindowDays: s.cfg.LongTermWindowDays,
	})

	return eng.Calculate(transactions, m, s.prices)
}

// ComputeHoldings calculates the current open positions for the given
// accounting method. It runs the full engine and returns only the snapshot.
func (s *TaxService) ComputeHoldings(method string) ([]model.Holding, error) {
	result, err := s.ComputeReport(method)
	if err != nil {
		return nil, err
	}
	return result.Holdings, nil
}
