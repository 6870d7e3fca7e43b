package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InstallID returns the stable opaque id for this install, generating and
// persisting one on first use. It seeds the deterministic quest selection,
// so it must never change once written.
func InstallID(ctx context.Context, store Store) (string, error) {
	raw, ok, err := store.Get(ctx, KeyInstallID)
	if err != nil {
		return "", fmt.Errorf("load install id: %w", err)
	}
	if ok && len(raw) > 0 {
		return string(raw), nil
	}

	id := uuid.NewString()
	if err := store.Set(ctx, KeyInstallID, []byte(id)); err != nil {
		return "", fmt.Errorf("save install id: %w", err)
	}
	return id, nil
}
