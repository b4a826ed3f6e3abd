package types

import (
	"encoding/json"
	"fmt"

	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"
)

// EventKind identifies the kind of a feed event.
type EventKind string

const (
	// EventKindBlock is published when the node connects a new block.
	EventKindBlock EventKind = "block"

	// EventKindTransaction is published when the node accepts a new
	// transaction into its mempool.
	EventKindTransaction EventKind = "transaction"

	// EventKindReconnect is a synthetic event injected by the feed client
	// after the underlying connection was lost and re-established. Its
	// payload is empty; consumers use it to re-enter their syncing state.
	EventKindReconnect EventKind = "reconnect"
)

// FeedEvent is a single notification delivered by the node's event feed.
// Payload carries the raw serialized event body; Seq is the feed's
// monotonically increasing sequence marker.
type FeedEvent struct {
	Kind    EventKind `json:"kind"`
	Seq     uint64    `json:"seq"`
	Payload []byte    `json:"payload"`
}

// BlockEvent is the decoded payload of an EventKindBlock feed event.
type BlockEvent struct {
	Height int64            `json:"height"`
	Hash   tmbytes.HexBytes `json:"hash"`
}

// ParseBlockEvent decodes a block event payload.
func ParseBlockEvent(payload []byte) (BlockEvent, error) {
	var ev BlockEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return BlockEvent{}, fmt.Errorf("decoding block event: %w", err)
	}
	if ev.Height < 0 {
		return BlockEvent{}, fmt.Errorf("block event height %d is negative", ev.Height)
	}
	return ev, nil
}
