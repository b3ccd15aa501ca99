package request

// CreateTransactionRequest is the payload for recording a single transaction.
// Monetary fields are strings so values round-trip without float rounding.
//
// For type "trade" the request describes both legs: the outgoing asset in
// asset/quantity and the incoming asset in toAsset/toQuantity, valued at
// fairMarketValue.
type CreateTransactionRequest struct {
	Date            string `json:"date"`
	Type            string `json:"type"`
	Asset           string `json:"asset"`
	Quantity        string `json:"quantity"`
	CostBasis       string `json:"costBasis,omitempty"`
	FairMarketValue string `json:"fairMarketValue,omitempty"`
	ToAsset         string `json:"toAsset,omitempty"`
	ToQuantity      string `json:"toQuantity,omitempty"`
	Venue           string `json:"venue,omitempty"`
}

// UpdateTransactionRequest carries a partial update to a stored transaction.
// All fields are optional; only non-nil fields are applied. Type cannot be
// changed to "trade" — trades are stored as two legs, each updated on its own.
type UpdateTransactionRequest struct {
	Date            *string `json:"date,omitempty"`
	Type            *string `json:"type,omitempty"`
	Asset           *string `json:"asset,omitempty"`
	Quantity        *string `json:"quantity,omitempty"`
	CostBasis       *string `json:"costBasis,omitempty"`
	FairMarketValue *string `json:"fairMarketValue,omitempty"`
	Venue           *string `json:"venue,omitempty"`
}

// ImportTransactionsRequest wraps a batch of transactions recorded in one call.
type ImportTransactionsRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions"`
}
