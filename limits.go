package pagekit

const (
	// DefaultPage is the page served when the transport layer received no
	// page parameter. The engine itself rejects Page < 1; defaulting an
	// absent parameter is the transport's job.
	DefaultPage = 1

	// DefaultPageSize is a transport-side convenience for absent size
	// parameters. The engine never substitutes it.
	DefaultPageSize = 20

	MinPageSize = 1
	MaxPageSize = 1000
)

// IsNormalizedPageSize returns a usable page size and whether the input was
// already within bounds. Zero and negative sizes map to DefaultPageSize,
// oversized ones are clamped to maxSize.
func IsNormalizedPageSize(size int, maxSize int) (int, bool) {
	if size <= 0 {
		return DefaultPageSize, false
	} else if size > maxSize {
		return maxSize, false
	}

	return size, true
}

// NormalizePageSize clamps a page size into [1, MaxPageSize], substituting
// DefaultPageSize for absent values.
//
// This is for transports that prefer clamping over rejection. The engine's
// own Request.Validate is strict: an out-of-range size that reaches
// Paginator.Paginate is a caller error, never silently corrected.
func NormalizePageSize(size int) int {
	ret, _ := IsNormalizedPageSize(size, MaxPageSize)
	return ret
}
