package pagekit

import "fmt"

// ValidationError reports a caller error in the pagination parameters. It is
// surfaced as-is so the transport layer can reject the request; the engine
// never silently corrects an out-of-range page or page size.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Request is the caller's pagination intent, built by the API layer from
// query parameters. It is intended for API payloads; inline it:
//
//	type ListContentParams struct {
//	    Paging pagekit.Request `json:",inline"`
//	}
type Request struct {
	// Page is the 1-based page number. Ignored when Cursor is set. The
	// transport layer substitutes DefaultPage for an absent parameter; a
	// page that is still < 1 here is a caller error.
	Page int `json:"page"`
	// PageSize must be within [MinPageSize, MaxPageSize].
	PageSize int `json:"page_size"`
	// Cursor is an opaque token from a previous response's next_cursor or
	// prev_cursor. Empty means offset pagination at Page.
	Cursor string `json:"cursor,omitempty"`
	// SortField names a Registry entry. Unknown values degrade to the
	// registry default, never error.
	SortField string `json:"sort_field,omitempty"`
	// SortOrder is "asc" or "desc"; anything else degrades to the sort
	// field's default direction.
	SortOrder string `json:"sort_order,omitempty"`
	// Filters is an opaque column→value map handed to the row source
	// unmodified and ANDed with the plan's bounding predicate. Filters never
	// affect sort resolution. Entity-specific filtering beyond simple
	// equality belongs to the repository, which scopes the *gorm.DB it
	// passes to Paginate.
	Filters map[string]any `json:"-"`
}

// Validate checks the request's ranges. It runs before any row source call
// and returns *ValidationError on the first violation.
func (r Request) Validate() error {
	if r.PageSize < MinPageSize || r.PageSize > MaxPageSize {
		return &ValidationError{
			Field:  "page_size",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinPageSize, MaxPageSize, r.PageSize),
		}
	}

	if r.Cursor == "" && r.Page < 1 {
		return &ValidationError{
			Field:  "page",
			Reason: fmt.Sprintf("must be a positive integer, got %d", r.Page),
		}
	}

	return nil
}
