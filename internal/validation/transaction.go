package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/api/request"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true, "trade": true, "stake": true, "mine": true, "transfer": true,
}

func validateDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = "date is required"
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = err.Error()
	}
}

func validatePositiveDecimal(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = fmt.Sprintf("%s is required", field)
		return
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		errors[field] = fmt.Sprintf("%s not a valid number", field)
		return
	}
	if d.Sign() <= 0 {
		errors[field] = fmt.Sprintf("%s must be positive", field)
	}
}

func validateNonNegativeDecimal(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		errors[field] = fmt.Sprintf("%s not a valid number", field)
		return
	}
	if d.Sign() < 0 {
		errors[field] = fmt.Sprintf("%s cannot be negative", field)
	}
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: buy, sell, trade, stake, mine, transfer
//   - asset: Must be non-empty
//   - quantity: Must be a positive decimal
//
// Type-specific fields:
//   - buy: costBasis must be a non-negative decimal
//   - sell, stake, mine, trade: fairMarketValue must be a non-negative decimal
//   - trade: toAsset and toQuantity describe the incoming leg and are required
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	validateDate(errors, "date", req.Date)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Asset) == "" {
		errors["asset"] = "asset is required"
	}

	validatePositiveDecimal(errors, "quantity", req.Quantity)

	switch req.Type {
	case "buy":
		if strings.TrimSpace(req.CostBasis) == "" {
			errors["costBasis"] = "costBasis is required for buy"
		}
		validateNonNegativeDecimal(errors, "costBasis", req.CostBasis)
	case "sell", "stake", "mine":
		if strings.TrimSpace(req.FairMarketValue) == "" {
			errors["fairMarketValue"] = fmt.Sprintf("fairMarketValue is required for %s", req.Type)
		}
		validateNonNegativeDecimal(errors, "fairMarketValue", req.FairMarketValue)
	case "trade":
		if strings.TrimSpace(req.FairMarketValue) == "" {
			errors["fairMarketValue"] = "fairMarketValue is required for trade"
		}
		validateNonNegativeDecimal(errors, "fairMarketValue", req.FairMarketValue)
		if strings.TrimSpace(req.ToAsset) == "" {
			errors["toAsset"] = "toAsset is required for trade"
		}
		validatePositiveDecimal(errors, "toQuantity", req.ToQuantity)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
// Updating a transaction to type "trade" is not allowed; trades are stored as their
// two component legs and each leg is updated on its own.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		validateDate(errors, "date", *req.Date)
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if *req.Type == "trade" || !ValidTransactionType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Asset != nil && strings.TrimSpace(*req.Asset) == "" {
		errors["asset"] = "asset is required"
	}
	if req.Quantity != nil {
		validatePositiveDecimal(errors, "quantity", *req.Quantity)
	}
	if req.CostBasis != nil {
		validateNonNegativeDecimal(errors, "costBasis", *req.CostBasis)
	}
	if req.FairMarketValue != nil {
		validateNonNegativeDecimal(errors, "fairMarketValue", *req.FairMarketValue)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateImportTransactions validates a batch import request. Row errors are
// keyed by index so callers can point at the offending record.
func ValidateImportTransactions(req request.ImportTransactionsRequest) error {
	if len(req.Transactions) == 0 {
		return &Error{Fields: map[string]string{"transactions": "at least one transaction is required"}}
	}

	errors := make(map[string]string)
	for i, tx := range req.Transactions {
		if err := ValidateCreateTransaction(tx); err != nil {
			errors[fmt.Sprintf("transactions[%d]", i)] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
