// Package quote defines the quote record and its display format.
package quote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout used when printing a quote's date.
const DateLayout = "01-02-2006"

// Separator is printed after every quote in human output.
const Separator = "------------"

// ErrEmptyText is returned when a quote has no text.
var ErrEmptyText = errors.New("quote text cannot be empty")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Quote is a single stored quote. Quotes are never modified once stored.
type Quote struct {
	ID     int        `json:"id"`
	Text   string     `json:"quote" validate:"required"`
	Author string     `json:"author,omitempty"` // Empty when no author was given
	Date   *time.Time `json:"date,omitempty"`   // Set only when stamped at creation
}

// New builds a quote from CLI input. The id is left at zero until the
// quote is appended to a store.
func New(text, author string, date *time.Time) (Quote, error) {
	q := Quote{
		Text:   strings.TrimSpace(text),
		Author: strings.TrimSpace(author),
		Date:   date,
	}
	if err := q.Validate(); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// Validate checks that the quote can be stored.
func (q Quote) Validate() error {
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				if e.Field() == "Text" {
					return ErrEmptyText
				}
			}
		}
		return fmt.Errorf("invalid quote: %w", err)
	}
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// HasAuthor reports whether the quote was attributed to someone.
func (q Quote) HasAuthor() bool {
	return q.Author != ""
}

// HasDate reports whether the quote was stamped at creation.
func (q Quote) HasDate() bool {
	return q.Date != nil && !q.Date.IsZero()
}

// FilterByAuthor returns the quotes whose author equals author exactly,
// preserving order. An empty author returns every quote.
func FilterByAuthor(quotes []Quote, author string) []Quote {
	if author == "" {
		return quotes
	}
	var matched []Quote
	for _, q := range quotes {
		if q.Author == author {
			matched = append(matched, q)
		}
	}
	return matched
}

// Format renders the quote for terminal output:
//
//	[1] "text"
//	  - author on 01-02-2006
//	------------
func (q Quote) Format() string {
	var sb strings.Builder
	if q.ID > 0 {
		sb.WriteString(fmt.Sprintf("[%d] ", q.ID))
	}
	sb.WriteString(strconv.Quote(q.Text))
	if q.HasAuthor() {
		sb.WriteString("\n  - ")
		sb.WriteString(q.Author)
	}
	if q.HasDate() {
		sb.WriteString(" on ")
		sb.WriteString(q.Date.Local().Format(DateLayout))
	}
	sb.WriteString("\n")
	sb.WriteString(Separator)
	return sb.String()
}
