package domain

import (
	"testing"
)

func TestNewBook(t *testing.T) {
	t.Parallel()

	book, err := NewBook("1234567890123", "Clean Architecture", "Robert C. Martin", 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if book.Code != "1234567890123" {
		t.Errorf("Expected code 1234567890123, got %s", book.Code)
	}

	if book.AvailableCopies != book.TotalCopies {
		t.Errorf("Expected all copies available, got %d of %d",
			book.AvailableCopies, book.TotalCopies)
	}

	// Test malformed catalog code
	_, err = NewBook("12345", "Title", "Author", 1)
	if err != ErrInvalidCode {
		t.Errorf("Expected error %v, got %v", ErrInvalidCode, err)
	}

	// Test empty title
	_, err = NewBook("1234567890123", "", "Author", 1)
	if err != ErrEmptyTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTitle, err)
	}

	// Test empty author
	_, err = NewBook("1234567890123", "Title", "", 1)
	if err != ErrEmptyAuthor {
		t.Errorf("Expected error %v, got %v", ErrEmptyAuthor, err)
	}

	// Test non-positive copy counts
	_, err = NewBook("1234567890123", "Title", "Author", 0)
	if err != ErrInvalidQuantity {
		t.Errorf("Expected error %v, got %v", ErrInvalidQuantity, err)
	}

	_, err = NewBook("1234567890123", "Title", "Author", -3)
	if err != ErrInvalidQuantity {
		t.Errorf("Expected error %v, got %v", ErrInvalidQuantity, err)
	}
}

func TestBookValidate(t *testing.T) {
	t.Parallel()

	validBook := Book{
		Code:            "1234567890123",
		Title:           "The Go Programming Language",
		Author:          "Donovan and Kernighan",
		TotalCopies:     3,
		AvailableCopies: 2,
	}

	if err := validBook.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Available above total
	invalidBook := validBook
	invalidBook.AvailableCopies = 4
	if err := invalidBook.Validate(); err != ErrInvalidQuantity {
		t.Errorf("Expected error %v, got %v", ErrInvalidQuantity, err)
	}

	// Negative available
	invalidBook = validBook
	invalidBook.AvailableCopies = -1
	if err := invalidBook.Validate(); err != ErrInvalidQuantity {
		t.Errorf("Expected error %v, got %v", ErrInvalidQuantity, err)
	}
}

func TestBookIsAvailable(t *testing.T) {
	t.Parallel()

	book := Book{TotalCopies: 10, AvailableCopies: 10}
	if !book.IsAvailable() {
		t.Error("Expected book to be available")
	}

	book.AvailableCopies = 0
	if book.IsAvailable() {
		t.Error("Expected book to be unavailable")
	}
}

func TestBookBorrow(t *testing.T) {
	t.Parallel()

	book := Book{TotalCopies: 50, AvailableCopies: 50}

	book.Borrow()
	if book.AvailableCopies != 49 {
		t.Errorf("Expected 49 available, got %d", book.AvailableCopies)
	}

	// Borrow at zero is a silent no-op, never negative
	book.AvailableCopies = 0
	book.Borrow()
	if book.AvailableCopies != 0 {
		t.Errorf("Expected available to stay at 0, got %d", book.AvailableCopies)
	}
}

func TestBookReturn(t *testing.T) {
	t.Parallel()

	book := Book{TotalCopies: 51, AvailableCopies: 50}

	book.Return()
	if book.AvailableCopies != 51 {
		t.Errorf("Expected 51 available, got %d", book.AvailableCopies)
	}

	// Return at the total is a silent no-op, never exceeds the ceiling
	book.Return()
	if book.AvailableCopies != 51 {
		t.Errorf("Expected available to stay at 51, got %d", book.AvailableCopies)
	}
}
