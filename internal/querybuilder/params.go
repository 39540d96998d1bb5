package querybuilder

import (
	"errors"
	"fmt"
	"math"
	"net/url"

	"github.com/gorilla/schema"
)

// Params carries the list query string: search, sort and pagination
type Params struct {
	Q           string  `schema:"q"`
	Page        int     `schema:"page"`
	Limit       int     `schema:"limit"`
	Sort        string  `schema:"sort"`
	OrderBy     string  `schema:"orderby"`
	SearchField *string `schema:"search_field"`
	SearchValue *string `schema:"search_value"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ParseParams decodes list parameters from a query string.
// Page and limit values that are not positive integers are treated as absent.
func ParseParams(values url.Values) (Params, error) {
	var p Params
	if err := decoder.Decode(&p, values); err != nil {
		var multi schema.MultiError
		if !errors.As(err, &multi) {
			return Params{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
		for key, e := range multi {
			var conv schema.ConversionError
			if errors.As(e, &conv) && (key == "page" || key == "limit") {
				continue
			}
			return Params{}, fmt.Errorf("%w: %s: %v", ErrInvalidParams, key, e)
		}
	}

	if p.Page < 0 {
		p.Page = 0
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Paginated() && p.Page-1 > math.MaxInt/p.Limit {
		return Params{}, fmt.Errorf("%w: page %d is out of range", ErrInvalidParams, p.Page)
	}

	// an explicitly empty value still counts as given
	if p.SearchField == nil && values.Has("search_field") {
		p.SearchField = new(string)
	}
	if p.SearchValue == nil && values.Has("search_value") {
		p.SearchValue = new(string)
	}
	return p, nil
}

// Ascending reports whether the requested order is ascending
func (p Params) Ascending() bool {
	return p.OrderBy == "asc"
}

// Paginated reports whether both page and limit were given
func (p Params) Paginated() bool {
	return p.Page > 0 && p.Limit > 0
}

// Offset returns the row offset of the requested page
func (p Params) Offset() int {
	if !p.Paginated() {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// FieldSearch reports whether a single-field search was requested
func (p Params) FieldSearch() bool {
	return p.SearchField != nil && p.SearchValue != nil
}
