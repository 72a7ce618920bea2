package persist

import (
	"context"
	"encoding/json"
	"fmt"
)

// Slots the stores persist into.
const (
	DataKey = "yasmin-alsham-data"
	ShopKey = "yasmin-alsham-shop"
	UserKey = "yasmin-alsham-user"
)

// Mirror is a durable key/value slot holding one serialized snapshot per key.
type Mirror interface {
	// Load decodes the snapshot under key into dest. It reports false, with
	// dest untouched, when nothing has been saved yet.
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Clear(ctx context.Context, key string) error
}

// snapshotVersion is bumped whenever a store changes its persisted shape.
const snapshotVersion = 0

// envelope is the on-disk form of every snapshot.
type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

func encode(value any) ([]byte, error) {
	state, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return json.Marshal(envelope{State: state, Version: snapshotVersion})
}

func decode(data []byte, dest any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Version != snapshotVersion {
		return fmt.Errorf("decode snapshot: unsupported version %d", env.Version)
	}
	if len(env.State) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.State, dest); err != nil {
		return fmt.Errorf("decode snapshot state: %w", err)
	}
	return nil
}
