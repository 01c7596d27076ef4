package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"bookhaven/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// FieldErrors collects one message per failed field so callers can report
// every violation at once instead of stopping at the first.
type FieldErrors []string

func (e FieldErrors) Any() bool { return len(e) > 0 }

func (e FieldErrors) Error() string { return strings.Join(e, "; ") }

// Book checks every field constraint and returns the full list of failures.
func Book(b domain.Book) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(b.Title) == "" {
		errs = append(errs, "Book title is required")
	} else if len(b.Title) > 200 {
		errs = append(errs, "Title cannot exceed 200 characters")
	}
	if strings.TrimSpace(b.Author) == "" {
		errs = append(errs, "Author name is required")
	} else if len(b.Author) > 100 {
		errs = append(errs, "Author name cannot exceed 100 characters")
	}
	if b.Price < 0 {
		errs = append(errs, "Price cannot be negative")
	}
	if strings.TrimSpace(b.Description) == "" {
		errs = append(errs, "Description is required")
	} else if len(b.Description) > 2000 {
		errs = append(errs, "Description cannot exceed 2000 characters")
	}
	if strings.TrimSpace(b.Image) == "" {
		errs = append(errs, "Image URL is required")
	}
	if strings.TrimSpace(b.Category) == "" {
		errs = append(errs, "Category is required")
	} else if !domain.ValidCategory(b.Category) {
		errs = append(errs, fmt.Sprintf("%s is not a valid category", b.Category))
	}
	if b.Rating < 0 {
		errs = append(errs, "Rating cannot be less than 0")
	}
	if b.Rating > 5 {
		errs = append(errs, "Rating cannot be more than 5")
	}
	if b.Stock < 0 {
		errs = append(errs, "Stock cannot be negative")
	}
	if b.PublishedYear != 0 {
		if b.PublishedYear < 1900 {
			errs = append(errs, "Published year must be after 1900")
		} else if b.PublishedYear > time.Now().Year() {
			errs = append(errs, "Published year cannot be in the future")
		}
	}
	return errs
}

// Registration checks the fields of a new account.
func Registration(fullName, email, password string) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(fullName) == "" {
		errs = append(errs, "Full name is required")
	} else if len(fullName) > 100 {
		errs = append(errs, "Full name cannot exceed 100 characters")
	}
	if !Email(email) {
		errs = append(errs, "A valid email is required")
	}
	if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	return errs
}

func Email(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= 100 && reEmail.MatchString(s)
}

// ID validates a resource identifier (book/order/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
