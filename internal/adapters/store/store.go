// Package store provides durable key-value persistence for serialized
// sessions, keyed by channel identifier.
package store

import "context"

// Store persists one serialized session per channel. Put must commit
// synchronously: when it returns nil the data is durably recorded.
type Store interface {
	// Get returns the stored blob for channelID.
	// Returns ErrNotFound if the channel has no session.
	Get(ctx context.Context, channelID string) ([]byte, error)

	// Put durably records the blob for channelID, replacing any prior value.
	Put(ctx context.Context, channelID string, data []byte) error

	// Delete removes the stored blob for channelID. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, channelID string) error

	// Count returns the number of channels with a stored session.
	Count(ctx context.Context) int
}
