package quorum

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"
	"github.com/K0LbAzzeR/dapi/libs/log"
	"github.com/K0LbAzzeR/dapi/types"
)

type fakeFeed struct {
	ch chan types.FeedEvent
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{ch: make(chan types.FeedEvent)}
}

func (f *fakeFeed) Subscribe(outCapacity int) (<-chan types.FeedEvent, func()) {
	return f.ch, func() {}
}

type fakeRegistry struct {
	validators []*types.Validator
	err        error
	lookups    int
}

func (r *fakeRegistry) ValidatorSet(ctx context.Context, height int64) ([]*types.Validator, error) {
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	return r.validators, nil
}

func blockEvent(t *testing.T, height int64, seq uint64) types.FeedEvent {
	t.Helper()
	payload, err := json.Marshal(types.BlockEvent{
		Height: height,
		Hash:   tmbytes.HexBytes{byte(height), 0x02, 0x03},
	})
	require.NoError(t, err)
	return types.FeedEvent{Kind: types.EventKindBlock, Seq: seq, Payload: payload}
}

func TestTrackerPublishesSnapshot(t *testing.T) {
	defer leaktest.CheckTimeout(t, 10*time.Second)()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := newFakeFeed()
	registry := &fakeRegistry{validators: makeValidators(t, 10)}
	tracker := NewTracker(log.NewTestingLogger(t), feed, registry, 4)

	_, err := tracker.Snapshot()
	var notReady *gatewayerr.QuorumNotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, Uninitialized, tracker.State())

	require.NoError(t, tracker.Start(ctx))
	assert.Equal(t, Syncing, tracker.State())

	feed.ch <- blockEvent(t, 100, 1)

	require.Eventually(t, func() bool {
		return tracker.State() == Ready
	}, 2*time.Second, 10*time.Millisecond)

	snap, err := tracker.Snapshot()
	require.NoError(t, err)
	assert.EqualValues(t, 100, snap.Height)
	assert.Len(t, snap.Members, 4)
	assert.False(t, snap.ComputedAt.IsZero())

	cancel()
	tracker.Wait()
}

func TestTrackerMonotonicHeights(t *testing.T) {
	ctx := context.Background()
	registry := &fakeRegistry{validators: makeValidators(t, 6)}
	tracker := NewTracker(log.NewTestingLogger(t), newFakeFeed(), registry, 3)

	tracker.recompute(ctx, types.BlockEvent{Height: 5, Hash: tmbytes.HexBytes{0x05}})
	snap, err := tracker.Snapshot()
	require.NoError(t, err)
	require.EqualValues(t, 5, snap.Height)

	// A replayed or stale block changes nothing.
	tracker.recompute(ctx, types.BlockEvent{Height: 4, Hash: tmbytes.HexBytes{0x04}})
	again, err := tracker.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, again)

	tracker.recompute(ctx, types.BlockEvent{Height: 5, Hash: tmbytes.HexBytes{0x05}})
	again, err = tracker.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, again)
	assert.Equal(t, 1, registry.lookups)

	tracker.recompute(ctx, types.BlockEvent{Height: 6, Hash: tmbytes.HexBytes{0x06}})
	next, err := tracker.Snapshot()
	require.NoError(t, err)
	assert.EqualValues(t, 6, next.Height)
}

func TestTrackerKeepsSnapshotOnFailure(t *testing.T) {
	ctx := context.Background()
	registry := &fakeRegistry{validators: makeValidators(t, 6)}
	tracker := NewTracker(log.NewTestingLogger(t), newFakeFeed(), registry, 3)

	tracker.recompute(ctx, types.BlockEvent{Height: 7, Hash: tmbytes.HexBytes{0x07}})
	require.Equal(t, Ready, tracker.State())

	registry.err = errors.New("registry down")
	tracker.recompute(ctx, types.BlockEvent{Height: 8, Hash: tmbytes.HexBytes{0x08}})

	snap, err := tracker.Snapshot()
	require.NoError(t, err)
	assert.EqualValues(t, 7, snap.Height, "failed recomputation must keep the previous snapshot")

	// An empty registry result is as bad as an error.
	registry.err = nil
	registry.validators = nil
	tracker.recompute(ctx, types.BlockEvent{Height: 9, Hash: tmbytes.HexBytes{0x09}})
	snap, err = tracker.Snapshot()
	require.NoError(t, err)
	assert.EqualValues(t, 7, snap.Height)
}

func TestTrackerResyncsOnReconnect(t *testing.T) {
	defer leaktest.CheckTimeout(t, 10*time.Second)()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := newFakeFeed()
	registry := &fakeRegistry{validators: makeValidators(t, 10)}
	tracker := NewTracker(log.NewTestingLogger(t), feed, registry, 4)
	require.NoError(t, tracker.Start(ctx))

	feed.ch <- blockEvent(t, 100, 1)
	require.Eventually(t, func() bool {
		return tracker.State() == Ready
	}, 2*time.Second, 10*time.Millisecond)

	feed.ch <- types.FeedEvent{Kind: types.EventKindReconnect, Seq: 1}
	require.Eventually(t, func() bool {
		return tracker.State() == Syncing
	}, 2*time.Second, 10*time.Millisecond)

	// The stale snapshot stays readable while resyncing.
	snap, err := tracker.Snapshot()
	require.NoError(t, err)
	assert.EqualValues(t, 100, snap.Height)

	feed.ch <- blockEvent(t, 101, 2)
	require.Eventually(t, func() bool {
		snap, err := tracker.Snapshot()
		return err == nil && snap.Height == 101 && tracker.State() == Ready
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	tracker.Wait()
}

func TestTrackerStageKeepsNewest(t *testing.T) {
	tracker := NewTracker(log.NewTestingLogger(t), newFakeFeed(), &fakeRegistry{}, 3)

	tracker.stage(types.BlockEvent{Height: 1})
	tracker.stage(types.BlockEvent{Height: 2})
	tracker.stage(types.BlockEvent{Height: 3})

	got := <-tracker.pending
	assert.EqualValues(t, 3, got.Height)
	select {
	case extra := <-tracker.pending:
		t.Fatalf("unexpected extra staged event at height %d", extra.Height)
	default:
	}
}

func TestTrackerIgnoresMalformedBlockEvents(t *testing.T) {
	defer leaktest.CheckTimeout(t, 10*time.Second)()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := newFakeFeed()
	registry := &fakeRegistry{validators: makeValidators(t, 4)}
	tracker := NewTracker(log.NewTestingLogger(t), feed, registry, 2)
	require.NoError(t, tracker.Start(ctx))

	feed.ch <- types.FeedEvent{Kind: types.EventKindBlock, Seq: 1, Payload: []byte("{not json")}
	feed.ch <- blockEvent(t, 50, 2)

	require.Eventually(t, func() bool {
		snap, err := tracker.Snapshot()
		return err == nil && snap.Height == 50
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	tracker.Wait()
}
