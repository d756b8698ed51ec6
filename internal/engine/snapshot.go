package engine

import (
	"encoding/json"
	"fmt"
)

// Snapshot serializes the state for persistence. Restoring the snapshot and
// replaying no further actions reproduces an identical state.
func Snapshot(s GameState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return data, nil
}

// RestoreSnapshot rebuilds a GameState from a snapshot.
func RestoreSnapshot(data []byte) (GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return GameState{}, fmt.Errorf("restore snapshot: %w", err)
	}
	return s, nil
}
