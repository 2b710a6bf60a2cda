package domain

import (
	"errors"

	"github.com/openlibro/biblio-api/internal/validation"
)

// Book-specific validation errors.
var (
	ErrEmptyTitle  = errors.New("book title cannot be empty")
	ErrEmptyAuthor = errors.New("book author cannot be empty")
)

// Book represents a title held by the library, together with its copy
// counters. Code is the identity; TotalCopies is fixed at registration
// while AvailableCopies moves between 0 and TotalCopies as loans are
// opened and closed.
type Book struct {
	Code            string `json:"code"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// NewBook creates a new Book with all copies available.
// Returns an error if validation fails.
func NewBook(code, title, author string, totalCopies int) (*Book, error) {
	book := &Book{
		Code:            code,
		Title:           title,
		Author:          author,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
// Returns an error if any field fails validation.
func (b *Book) Validate() error {
	if !validation.IsValidCatalogCode(b.Code) {
		return ErrInvalidCode
	}

	if b.Title == "" {
		return ErrEmptyTitle
	}

	if b.Author == "" {
		return ErrEmptyAuthor
	}

	if !validation.IsPositiveQuantity(b.TotalCopies) {
		return ErrInvalidQuantity
	}

	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return ErrInvalidQuantity
	}

	return nil
}

// IsAvailable reports whether at least one copy can be borrowed.
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// Borrow decrements the available count by one. At zero it is a silent
// no-op, not an error: the count never goes negative.
func (b *Book) Borrow() {
	if b.AvailableCopies > 0 {
		b.AvailableCopies--
	}
}

// Return increments the available count by one. At TotalCopies it is a
// silent no-op, not an error: the count never exceeds the total.
func (b *Book) Return() {
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
}
