package pagekit

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Getters maps sort columns to value extractors for the paginated row type.
// Cover every column reachable through the registry, tie-break included.
// Example:
//
//	pagekit.Getters[models.Content]{
//		"id":         func(c models.Content) any { return c.ID },
//		"created_at": func(c models.Content) any { return c.CreatedAt },
//	}
type Getters[T any] map[string]func(T) any

// Metadata describes a page's position within the filtered dataset.
type Metadata struct {
	Page        int     `json:"page"`
	PageSize    int     `json:"page_size"`
	TotalCount  int64   `json:"total_count"`
	TotalPages  int     `json:"total_pages"`
	HasNext     bool    `json:"has_next"`
	HasPrevious bool    `json:"has_previous"`
	NextCursor  *string `json:"next_cursor"`
	PrevCursor  *string `json:"prev_cursor"`
}

// Page is a paginated response envelope, generic over the row shape the
// calling repository returns.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination Metadata `json:"pagination"`
}

// Paginator plans and executes pagination for one row type. It is stateless
// and read-only: construct once next to the repository and share it across
// any number of concurrent requests.
type Paginator[T any] struct {
	registry *Registry
	getters  Getters[T]
	logger   zerolog.Logger
}

func New[T any](registry *Registry, getters Getters[T]) *Paginator[T] {
	return &Paginator[T]{
		registry: registry,
		getters:  getters,
		logger:   zerolog.Nop(),
	}
}

// WithLogger sets the logger used for cursor-fallback and sort-degradation
// events. The default discards everything.
func (p *Paginator[T]) WithLogger(logger zerolog.Logger) *Paginator[T] {
	p.logger = logger

	return p
}

// Paginate executes req against the row source query db. The caller scopes
// db to the entity (Model/Table) and any repository-owned filtering;
// Paginate adds req.Filters, the ordering, the bounding predicate and the
// limit, then runs the fetch and count queries.
//
// Errors: *ValidationError for out-of-range page/page_size; row source errors
// from the fetch and count queries propagate wrapped but otherwise unchanged.
// A cursor that fails to decode is NOT an error: the request silently runs as
// the first offset page.
func (p *Paginator[T]) Paginate(ctx context.Context, db *gorm.DB, req Request) (*Page[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	desc, known := p.registry.Resolve(req.SortField, req.SortOrder)
	if !known && req.SortField != "" {
		p.logger.Debug().
			Str("sort_field", req.SortField).
			Str("closest", closestField(req.SortField, p.registry.Fields())).
			Msg("unknown sort field, using default descriptor")
	}
	if err := desc.validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	base := db.WithContext(ctx)
	if len(req.Filters) > 0 {
		base = base.Where(req.Filters)
	}

	// The count runs over the same filters but without ordering or bounds,
	// so totals stay position-independent.
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count query: %w", err)
	}

	pl := p.plan(req, desc)

	var rows []T
	if err := pl.apply(base.Session(&gorm.Session{}), req.PageSize).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch query: %w", err)
	}

	return p.assemble(req.PageSize, desc, pl, rows, total)
}

func (p *Paginator[T]) plan(req Request, desc Descriptor) plan {
	if req.Cursor == "" {
		return offsetPlan{desc: desc, pageNum: req.Page}
	}

	tok, err := DecodeToken(req.Cursor, desc)
	if err != nil {
		// Fallback policy: a malformed or stale cursor degrades to the first
		// offset page. The response shape gives no hint that it happened.
		p.logger.Debug().Err(err).Msg("unusable cursor, falling back to first page")

		return offsetPlan{desc: desc, pageNum: DefaultPage}
	}

	scan := desc
	if tok.Backward {
		scan = desc.Invert()
	}

	return seekPlan{scan: scan, tok: tok}
}

func (p *Paginator[T]) assemble(pageSize int, desc Descriptor, pl plan, rows []T, total int64) (*Page[T], error) {
	more := len(rows) > pageSize
	if more {
		rows = rows[:pageSize]
	}
	if pl.backward() {
		// Backward plans scan in inverted order; restore display order.
		slices.Reverse(rows)
	}
	if rows == nil {
		rows = []T{}
	}

	pageNum := pl.page()

	var hasNext, hasPrev bool
	switch pt := pl.(type) {
	case seekPlan:
		if pt.tok.Backward {
			// The caller navigated here from a later page, so one always
			// exists; the lookahead row tells whether earlier pages do.
			hasNext = true
			hasPrev = more
		} else {
			hasNext = more
			hasPrev = true
		}
	case offsetPlan:
		hasNext = more
		hasPrev = pt.pageNum > DefaultPage
	}

	meta := Metadata{
		Page:        pageNum,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages(total, pageSize),
		HasNext:     hasNext,
		HasPrevious: hasPrev,
	}

	if len(rows) > 0 {
		if hasNext {
			tok, err := p.boundaryToken(desc, lo.LastOrEmpty(rows), pageNum+1, false)
			if err != nil {
				return nil, err
			}
			meta.NextCursor = lo.ToPtr(tok.String())
		}
		if hasPrev {
			tok, err := p.boundaryToken(desc, rows[0], max(pageNum-1, 1), true)
			if err != nil {
				return nil, err
			}
			meta.PrevCursor = lo.ToPtr(tok.String())
		}
	}

	return &Page[T]{Items: rows, Pagination: meta}, nil
}

// boundaryToken captures a boundary row's sort-relevant values as a token.
// Next tokens carry the descriptor's own operators; prev tokens carry the
// inverted ones, which is how decode later tells them apart.
func (p *Paginator[T]) boundaryToken(desc Descriptor, row T, pageNum int, backward bool) (*Token, error) {
	elements := make([]Element, 0, len(desc))
	for _, term := range desc {
		getter, ok := p.getters[term.Column]
		if !ok {
			return nil, fmt.Errorf("cannot find getter for column '%s' met in sort descriptor", term.Column)
		}

		op := term.Direction.ForOperator()
		if backward {
			op = op.Invert()
		}

		elements = append(elements, Element{Column: term.Column, Value: getter(row), Operator: op})
	}

	return &Token{Elements: elements, Page: pageNum, Backward: backward}, nil
}

// totalPages is ceil(total/pageSize); zero for an empty dataset.
func totalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}

	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
