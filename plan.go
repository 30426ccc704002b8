package pagekit

import "gorm.io/gorm"

// plan is a bounded query over the row source: ordering plus either an
// offset/limit window or a keyset bound. Plans fetch one row past the page
// size so the assembler can decide whether the dataset extends further
// without a second query.
type plan interface {
	apply(db *gorm.DB, pageSize int) *gorm.DB
	page() int
	backward() bool
}

// offsetPlan is classic skip/limit pagination. It serves explicit page
// numbers and the cursor-fallback path. Concurrent inserts ahead of the
// offset shift subsequent pages; that is accepted for this mode.
type offsetPlan struct {
	desc    Descriptor
	pageNum int
}

func (p offsetPlan) apply(db *gorm.DB, pageSize int) *gorm.DB {
	db = p.desc.Apply(db)

	if skip := (p.pageNum - 1) * pageSize; skip > 0 {
		db = db.Offset(skip)
	}

	return db.Limit(pageSize + 1)
}

func (p offsetPlan) page() int { return p.pageNum }

func (p offsetPlan) backward() bool { return false }

// seekPlan resumes traversal from a decoded cursor boundary. Correctness
// depends only on the boundary values, not on a live position, so rows
// already returned before the boundary can never reappear and rows sorted
// before it can never be skipped, regardless of concurrent writes.
type seekPlan struct {
	// scan is the effective scan descriptor: the requested descriptor for
	// next tokens, its inversion for prev tokens.
	scan Descriptor
	tok  *Token
}

func (p seekPlan) apply(db *gorm.DB, pageSize int) *gorm.DB {
	db = p.scan.Apply(db)

	if exp := seekDNF(p.scan, p.tok.Elements).toGORMExpression(); exp != nil {
		db = db.Clauses(exp)
	}

	return db.Limit(pageSize + 1)
}

func (p seekPlan) page() int { return p.tok.Page }

func (p seekPlan) backward() bool { return p.tok.Backward }
