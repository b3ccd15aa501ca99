package handlers

import (
	"errors"
	"net/http"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/api/response"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/service"
)

// TaxHandler handles HTTP requests for tax report endpoints.
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new TaxHandler with the provided service dependency.
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
	}
}

// methodParam reads the accounting method query parameter, defaulting to fifo.
func methodParam(r *http.Request) string {
	method := r.URL.Query().Get("method")
	if method == "" {
		method = "fifo"
	}
	return method
}

// Report handles GET requests to compute the full tax report.
//
// Endpoint: GET /api/tax/report?method={fifo|lifo|hifo}
// Response: 200 OK with TaxResult
// Error: 400 Bad Request if the method is not recognized or the history is malformed
// Error: 500 Internal Server Error if the computation fails
func (h *TaxHandler) Report(w http.ResponseWriter, r *http.Request) {
	result, err := h.taxService.ComputeReport(methodParam(r))
	if err != nil {
		respondTaxError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Holdings handles GET requests to compute the current open positions.
//
// Endpoint: GET /api/tax/holdings?method={fifo|lifo|hifo}
// Response: 200 OK with array of Holding
// Error: 400 Bad Request if the method is not recognized or the history is malformed
// Error: 500 Internal Server Error if the computation fails
func (h *TaxHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.taxService.ComputeHoldings(methodParam(r))
	if err != nil {
		respondTaxError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// respondTaxError maps engine errors onto HTTP status codes. Bad inputs
// (unknown method, malformed or over-disposing history) are the caller's
// fault; everything else is a server error.
func respondTaxError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnsupportedMethod),
		errors.Is(err, apperrors.ErrMalformedTransaction),
		errors.Is(err, apperrors.ErrInsufficientLots):
		response.RespondError(w, http.StatusBadRequest, "invalid tax report request", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeTaxReport.Error(), err.Error())
	}
}
