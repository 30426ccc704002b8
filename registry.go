package pagekit

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Entry describes one registered sort field.
//
// Terms are listed in their ascending-equivalent form: the descriptor served
// for sort_order=asc. Resolving with sort_order=desc flips every term. A term
// with an empty Direction defaults to ASC; explicit directions express
// composite sorts whose terms run in opposite relative directions.
type Entry struct {
	Terms []Term
	// Default is the direction applied when the request carries no usable
	// sort order. Empty means ASC.
	Default Direction
}

// Registry maps caller-facing sort field names to sort descriptors. Build it
// once at startup and share it across requests; it is read-only afterwards.
//
// Resolution never fails: unknown sort fields degrade to the default entry
// (reverse-chronological by created_at unless overridden via SetDefault), and
// unknown sort orders degrade to the entry's default direction. Every
// resolved descriptor is terminated by the tie-break column.
type Registry struct {
	tieBreak string
	entries  map[string]Entry
	def      Entry
}

// DefaultSortColumn is the leading column of the built-in default entry.
const DefaultSortColumn = "created_at"

// NewRegistry creates a registry whose descriptors tie-break on the given
// primary-key column.
func NewRegistry(tieBreak string) *Registry {
	return &Registry{
		tieBreak: tieBreak,
		entries:  make(map[string]Entry),
		def: normalizeEntry(Entry{
			Terms:   []Term{{Column: DefaultSortColumn}},
			Default: DirectionDESC,
		}),
	}
}

// Register adds a sort field. It panics on malformed entries: registration
// happens once at startup and a bad entry is a programming error, not a
// runtime condition.
func (r *Registry) Register(name string, entry Entry) *Registry {
	r.entries[name] = mustEntry(name, entry)

	return r
}

// SetDefault replaces the entry served for unknown or empty sort fields.
func (r *Registry) SetDefault(entry Entry) *Registry {
	r.def = mustEntry("default", entry)

	return r
}

// Fields returns the registered sort field names.
func (r *Registry) Fields() []string {
	return lo.Keys(r.entries)
}

// Resolve maps (sort_field, sort_order) to a Descriptor. The second return
// value reports whether sortField was registered; callers may use it to log
// the degradation, but resolution itself never errors.
func (r *Registry) Resolve(sortField, sortOrder string) (Descriptor, bool) {
	entry, known := r.entries[sortField]
	if !known {
		entry = r.def
	}

	dir, ok := ParseDirection(sortOrder)
	if !ok {
		dir = entry.Default
	}

	desc := make(Descriptor, 0, len(entry.Terms)+1)
	desc = append(desc, entry.Terms...)

	if !slices.ContainsFunc(desc, func(t Term) bool { return t.Column == r.tieBreak }) {
		desc = append(desc, Term{Column: r.tieBreak, Direction: DirectionASC})
	}

	// A descending request flips directions only. The nulls policy is pinned
	// to the entry: where null values sit in a view is a property of the sort
	// field, not of the traversal order.
	if dir == DirectionDESC {
		for i := range desc {
			desc[i].Direction = desc[i].Direction.Invert()
		}
	}

	return desc, known
}

func mustEntry(name string, entry Entry) Entry {
	entry = normalizeEntry(entry)

	if len(entry.Terms) == 0 {
		panic(fmt.Errorf("sort entry '%s' has no terms", name))
	}
	for _, term := range entry.Terms {
		if err := term.validate(); err != nil {
			panic(fmt.Errorf("sort entry '%s': %w", name, err))
		}
	}

	return entry
}

func normalizeEntry(entry Entry) Entry {
	entry.Terms = lo.Map(entry.Terms, func(term Term, _ int) Term {
		if term.Direction == "" {
			term.Direction = DirectionASC
		}

		return term
	})
	if entry.Default == "" {
		entry.Default = DirectionASC
	}

	return entry
}

// ParseSortParam splits a transport-level "field dir" sort string, e.g.
// "rating_then_created desc". The direction part is optional; both values are
// returned raw for the Registry to resolve, so malformed input degrades
// instead of erroring.
func ParseSortParam(s string) (sortField, sortOrder string) {
	parts := strings.Fields(strings.TrimSpace(s))
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[1]
	}
}

// closestField returns the registered field closest to input by edit
// distance. Used for debug logging when a request degrades to the default
// descriptor.
func closestField(input string, fields []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, field := range fields {
		dist := levenshtein([]rune(field), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = field
		}
	}

	return closest
}
