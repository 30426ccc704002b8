// Package pagekit provides the pagination engine behind curately's listing
// endpoints (content, bookmarks, tags, search history, generation jobs).
//
// Overview
//
// pagekit plans and executes bounded queries over a GORM row source using one
// of two strategies:
//   - keyset ("seek") pagination: resumes traversal from an opaque cursor
//     token carrying the sort-relevant values of a boundary row. Scales on
//     large datasets and never duplicates or skips rows relative to a fixed
//     boundary, even under concurrent inserts.
//   - offset pagination: classic skip/limit, used for explicit page numbers
//     and as the silent fallback target whenever a supplied cursor fails to
//     decode.
//
// Key concepts
//   - Registry: maps named sort fields ("created_at", "quality_score",
//     "rating_then_created", ...) to sort descriptors. Unknown fields resolve
//     to a default reverse-chronological descriptor instead of erroring.
//   - Descriptor: ordered list of (column, direction, nulls policy) terms,
//     always terminated by the row source's primary key so the order is total.
//   - Token: opaque base64 cursor produced at every page boundary; decoding is
//     validated against the currently requested descriptor, never the one that
//     produced the token.
//   - Paginator: validates the request, plans offset or seek execution, runs
//     the fetch and count queries and assembles items plus page metadata.
//
// See README for examples and usage details.
package pagekit

import "encoding/base64"

var _encoder = base64.RawURLEncoding
