package pos

import (
	"context"

	"github.com/google/uuid"
)

// RegistrySnapshot is the persisted state of the session registry.
// The whole registry is written after every mutation so that a terminal
// restart restores the open sessions exactly as they were.
type RegistrySnapshot struct {
	Sessions        []*CustomerSession `json:"sessions"`
	ActiveSessionID *uuid.UUID         `json:"activeSessionId,omitempty"`
}

// SessionStore persists session registry snapshots
type SessionStore interface {
	// Load returns the last saved snapshot, or an empty snapshot when
	// nothing has been saved yet.
	Load(ctx context.Context) (*RegistrySnapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot *RegistrySnapshot) error
}

// TemporaryProductCache holds products registered at the register for
// barcodes the catalog does not know. Entries are keyed by barcode.
type TemporaryProductCache interface {
	// Get returns the temporary product for a barcode, or nil when absent.
	Get(ctx context.Context, barcode string) (*TemporaryProduct, error)
	// Put stores or replaces the temporary product for its barcode.
	Put(ctx context.Context, product *TemporaryProduct) error
	// Delete removes the entry for a barcode. Missing entries are not an error.
	Delete(ctx context.Context, barcode string) error
	// List returns all cached temporary products.
	List(ctx context.Context) ([]*TemporaryProduct, error)
}
