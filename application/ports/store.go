package ports

import "context"

// OverlayStore is the single mutable slot that shadows the seed dataset once
// any mutation has persisted. The slot holds one JSON catalog document and is
// always read and replaced wholesale; there is no partial-key access.
type OverlayStore interface {
	// Read returns the stored document and whether the slot is populated.
	// A populated slot with unreadable content is a read error, not absence.
	Read(ctx context.Context) ([]byte, bool, error)

	// WriteAll atomically replaces the slot with the given document. On
	// failure the previously committed content must remain intact.
	WriteAll(ctx context.Context, doc []byte) error
}

// SeedSource fetches the read-only bundled dataset used until an overlay
// exists. Implementations report any non-success outcome as an error.
type SeedSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}
