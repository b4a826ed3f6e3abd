package quorum

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"
	"github.com/K0LbAzzeR/dapi/libs/log"
	"github.com/K0LbAzzeR/dapi/libs/service"
	"github.com/K0LbAzzeR/dapi/types"
)

// State is the tracker's lifecycle state.
type State int32

const (
	Uninitialized State = iota
	Syncing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Syncing:
		return "syncing"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Snapshot is an immutable view of the quorum derived at one block height.
// A published snapshot is never mutated; a newer one fully replaces it.
// Handlers receive the shared pointer and must treat it as read-only.
type Snapshot struct {
	Height     int64              `json:"height"`
	QuorumHash tmbytes.HexBytes   `json:"quorum_hash"`
	Members    []*types.Validator `json:"members"`
	ComputedAt time.Time          `json:"computed_at"`
}

// ValidatorRegistry is the backend lookup the tracker derives quorums from.
type ValidatorRegistry interface {
	// ValidatorSet returns the registry contents effective at height.
	ValidatorSet(ctx context.Context, height int64) ([]*types.Validator, error)
}

// FeedSubscriber is the slice of the event feed client the tracker needs.
type FeedSubscriber interface {
	Subscribe(outCapacity int) (<-chan types.FeedEvent, func())
}

const (
	// feedBufferCapacity bounds the subscription channel; the consumption
	// loop drains it promptly so the feed client never waits on us.
	feedBufferCapacity = 64
)

// Tracker consumes block events and maintains the current quorum snapshot.
// Reads are lock-free: the snapshot is replaced by atomic pointer swap,
// never mutated in place, so an in-flight request keeps a consistent view
// for its whole lifetime.
type Tracker struct {
	service.BaseService
	logger log.Logger

	feed       FeedSubscriber
	registry   ValidatorRegistry
	quorumSize int

	state    int32        // State, atomic
	snapshot atomic.Value // *Snapshot

	// latest pending block event; holding at most one entry keeps the
	// consumption loop non-blocking while recomputation catches up.
	pending chan types.BlockEvent

	unsubscribe func()
}

// NewTracker creates a tracker over the given feed and validator registry.
// quorumSize <= 0 selects the whole validator set.
func NewTracker(logger log.Logger, feed FeedSubscriber, registry ValidatorRegistry, quorumSize int) *Tracker {
	t := &Tracker{
		logger:     logger.With("module", "quorum"),
		feed:       feed,
		registry:   registry,
		quorumSize: quorumSize,
		pending:    make(chan types.BlockEvent, 1),
	}
	t.BaseService = *service.NewBaseService(t.logger, "QuorumTracker", t)
	return t
}

// State returns the tracker's lifecycle state.
func (t *Tracker) State() State {
	return State(atomic.LoadInt32(&t.state))
}

func (t *Tracker) setState(s State) {
	atomic.StoreInt32(&t.state, int32(s))
}

// Snapshot returns the last published quorum snapshot. Before the first
// block event has been processed it fails with QuorumNotReadyError. After a
// feed reconnect the last-known snapshot stays readable; callers judge
// staleness by its Height and ComputedAt fields.
func (t *Tracker) Snapshot() (*Snapshot, error) {
	snap, _ := t.snapshot.Load().(*Snapshot)
	if snap == nil {
		return nil, &gatewayerr.QuorumNotReadyError{}
	}
	return snap, nil
}

// OnStart implements service.Implementation by subscribing to the feed and
// launching the consumption and recomputation routines.
func (t *Tracker) OnStart(ctx context.Context) error {
	ch, unsubscribe := t.feed.Subscribe(feedBufferCapacity)
	t.unsubscribe = unsubscribe
	t.setState(Syncing)

	go t.consumeRoutine(ctx, ch)
	go t.recomputeRoutine(ctx)
	return nil
}

// OnStop implements service.Implementation.
func (t *Tracker) OnStop() {
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
}

// consumeRoutine drains feed events in order. Block events are staged for
// the recomputation routine; the stage holds only the newest event, so a
// slow registry lookup never backs up feed consumption.
func (t *Tracker) consumeRoutine(ctx context.Context, ch <-chan types.FeedEvent) {
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			switch ev.Kind {
			case types.EventKindBlock:
				be, err := types.ParseBlockEvent(ev.Payload)
				if err != nil {
					t.logger.Error("ignoring malformed block event", "seq", ev.Seq, "err", err)
					continue
				}
				t.stage(be)

			case types.EventKindReconnect:
				// Stale snapshot stays readable while we resync.
				t.logger.Info("feed reconnected; resyncing quorum state")
				t.setState(Syncing)
			}

		case <-ctx.Done():
			return
		}
	}
}

// stage replaces any pending block event with the newer one. Heights on the
// feed are non-decreasing, so dropping the older entry cannot violate the
// monotonic publish order.
func (t *Tracker) stage(be types.BlockEvent) {
	for {
		select {
		case t.pending <- be:
			return
		default:
			select {
			case <-t.pending:
			default:
			}
		}
	}
}

func (t *Tracker) recomputeRoutine(ctx context.Context) {
	for {
		select {
		case be := <-t.pending:
			t.recompute(ctx, be)
		case <-ctx.Done():
			return
		}
	}
}

// recompute derives and publishes the snapshot for one block event. A
// failed registry lookup or a malformed registry keeps the previous
// snapshot in place; a partially computed one is never exposed.
func (t *Tracker) recompute(ctx context.Context, be types.BlockEvent) {
	if current, _ := t.snapshot.Load().(*Snapshot); current != nil && be.Height <= current.Height {
		// Duplicate or replayed block; recomputation is idempotent so
		// there is nothing new to publish.
		t.logger.Debug("skipping already-processed block", "height", be.Height)
		t.setState(Ready)
		return
	}

	validators, err := t.registry.ValidatorSet(ctx, be.Height)
	if err != nil {
		t.logger.Error("validator registry lookup failed; keeping previous snapshot",
			"height", be.Height, "err", err)
		return
	}

	members, err := SelectMembers(validators, be.Hash, t.quorumSize)
	if err != nil {
		t.logger.Error("quorum computation failed; keeping previous snapshot",
			"height", be.Height, "err", err)
		return
	}

	snap := &Snapshot{
		Height:     be.Height,
		QuorumHash: be.Hash,
		Members:    members,
		ComputedAt: time.Now().UTC(),
	}
	t.snapshot.Store(snap)
	t.setState(Ready)
	t.logger.Info("published quorum snapshot", "height", snap.Height, "members", len(snap.Members))
}
