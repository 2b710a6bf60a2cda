package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/openlibro/biblio-api/internal/api/shared"
	"github.com/openlibro/biblio-api/internal/domain"
	"github.com/openlibro/biblio-api/internal/service"
)

// RegisterBookRequest represents the request body for registering a book.
// Catalog-code format and copy-count admission are checked by the catalog
// service so the error taxonomy stays in one place; the tags here only
// reject structurally empty requests.
type RegisterBookRequest struct {
	Code        string `json:"code"         validate:"required"`
	Title       string `json:"title"        validate:"required"`
	Author      string `json:"author"       validate:"required"`
	TotalCopies int    `json:"total_copies"`
}

// SetAvailabilityRequest represents the request body for the
// administrative availability override. Available is a pointer so an
// explicit zero survives the required check.
type SetAvailabilityRequest struct {
	Available *int `json:"available" validate:"required"`
}

// BookResponse represents the response data for a book.
type BookResponse struct {
	Code            string `json:"code"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// BookHandler handles book-related HTTP requests.
type BookHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(catalogService service.CatalogService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		logger:         logger.With("component", "book_handler"),
	}
}

// RegisterBook handles POST /api/books requests.
func (h *BookHandler) RegisterBook(w http.ResponseWriter, r *http.Request) {
	var req RegisterBookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	book, err := h.catalogService.Register(r.Context(), req.Code, req.Title, req.Author, req.TotalCopies)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, bookToResponse(book))
}

// GetBook handles GET /api/books/{code} requests.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	book, err := h.catalogService.GetByCode(r.Context(), code)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// ListBooks handles GET /api/books requests. Optional title= or author=
// query parameters switch the listing to a case-insensitive substring
// search; title wins when both are supplied.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	var (
		books []*domain.Book
		err   error
	)

	switch {
	case r.URL.Query().Get("title") != "":
		books, err = h.catalogService.FindByTitle(r.Context(), r.URL.Query().Get("title"))
	case r.URL.Query().Get("author") != "":
		books, err = h.catalogService.FindByAuthor(r.Context(), r.URL.Query().Get("author"))
	default:
		books, err = h.catalogService.List(r.Context())
	}

	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, bookToResponse(book))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// SetAvailability handles PUT /api/books/{code}/availability requests.
func (h *BookHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req SetAvailabilityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.catalogService.SetAvailability(r.Context(), code, *req.Available); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	book, err := h.catalogService.GetByCode(r.Context(), code)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// bookToResponse converts a domain.Book to a BookResponse.
func bookToResponse(book *domain.Book) BookResponse {
	return BookResponse{
		Code:            book.Code,
		Title:           book.Title,
		Author:          book.Author,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
	}
}
