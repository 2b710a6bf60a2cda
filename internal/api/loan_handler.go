package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/openlibro/biblio-api/internal/api/shared"
	"github.com/openlibro/biblio-api/internal/domain"
	"github.com/openlibro/biblio-api/internal/service"
)

// LoanRequest represents the request body for borrowing and returning.
type LoanRequest struct {
	BookCode string `json:"book_code" validate:"required"`
	UserID   string `json:"user_id"   validate:"required"`
}

// LoanResponse represents the response data for a loan.
type LoanResponse struct {
	ID         string     `json:"id"`
	BookCode   string     `json:"book_code"`
	UserID     string     `json:"user_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Active     bool       `json:"active"`
}

// UserLoansResponse represents a user's active loans plus their count,
// the same number the ledger uses for admission control.
type UserLoansResponse struct {
	UserID string         `json:"user_id"`
	Count  int            `json:"count"`
	Loans  []LoanResponse `json:"loans"`
}

// LoanHandler handles loan-related HTTP requests.
type LoanHandler struct {
	ledgerService service.LedgerService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(ledgerService service.LedgerService, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{
		ledgerService: ledgerService,
		validator:     validator.New(),
		logger:        logger.With("component", "loan_handler"),
	}
}

// BorrowBook handles POST /api/loans requests.
func (h *LoanHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	loan, err := h.ledgerService.Borrow(r.Context(), req.BookCode, req.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, loanToResponse(loan))
}

// ReturnBook handles POST /api/loans/return requests.
func (h *LoanHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.ledgerService.Return(r.Context(), req.BookCode, req.UserID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLoans handles GET /api/loans requests, returning every loan ever
// created, active or not.
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.ledgerService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, loanToResponse(loan))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UserLoans handles GET /api/users/{userID}/loans requests.
func (h *LoanHandler) UserLoans(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	loans, err := h.ledgerService.ActiveLoans(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := UserLoansResponse{
		UserID: userID,
		Count:  len(loans),
		Loans:  make([]LoanResponse, 0, len(loans)),
	}
	for _, loan := range loans {
		response.Loans = append(response.Loans, loanToResponse(loan))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// loanToResponse converts a domain.Loan to a LoanResponse.
func loanToResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:         loan.ID,
		BookCode:   loan.BookCode,
		UserID:     loan.UserID,
		LoanedAt:   loan.LoanedAt,
		ReturnedAt: loan.ReturnedAt,
		Active:     loan.Active,
	}
}
