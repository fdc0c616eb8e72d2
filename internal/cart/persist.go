package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// BlobName names the persisted cart blob in every backend.
const BlobName = "frocone-cart"

var ErrNoSnapshot = errors.New("no persisted cart")

// Snapshot is the persisted part of the cart. The drawer state is never saved.
type Snapshot struct {
	Items []LineItem `json:"items"`
}

// Persister stores a single cart blob. Load returns ErrNoSnapshot when
// nothing was saved yet.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

func encodeSnapshot(snap Snapshot) ([]byte, error) {
	if snap.Items == nil {
		snap.Items = []LineItem{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal cart failed: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return snap, nil
}
