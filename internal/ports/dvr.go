package ports

import (
	"context"

	"github.com/bnema/dvrsweep/internal/domain"
)

// InventorySource lists every recording currently on the device, flattened
// across series. Failures here abort the whole pass.
type InventorySource interface {
	Recordings(ctx context.Context) ([]domain.Recording, error)
}

// RecordingDeleter removes one recording from the device. This is the only
// port allowed to mutate remote state.
type RecordingDeleter interface {
	Delete(ctx context.Context, rec domain.Recording) error
}
