package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/npillmayer/flattree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, c <-chan flattree.Change, n int) []flattree.Change {
	t.Helper()
	var got []flattree.Change
	timeout := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case ch, ok := <-c:
			if !ok {
				return got
			}
			got = append(got, ch)
		case <-timeout:
			t.Fatalf("timed out after %d of %d changes", len(got), n)
		}
	}
	return got
}

func TestSubscribersReceiveChangesInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flattree")
	defer teardown()
	//
	sink := New(context.Background())
	defer sink.Close()
	sub1, err := sink.Subscribe(context.Background(), 0)
	require.NoError(t, err)
	sub2, err := sink.Subscribe(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 2, sink.Subscribers())

	log := &flattree.ChangeLog{}
	tree, err := flattree.New[string](flattree.Config{Sink: flattree.Sinks{log, sink}})
	require.NoError(t, err)
	root, a, b := tree.NewNode("root"), tree.NewNode("a"), tree.NewNode("b")
	require.NoError(t, tree.Append(root, a, b))
	tree.Fold(root, true)
	tree.Fold(root, false)
	require.NoError(t, tree.MoveWithin(root, 0, 0, 2))
	require.Len(t, log.Changes, 4)

	assert.Equal(t, log.Changes, collect(t, sub1.C, 4))
	assert.Equal(t, log.Changes, collect(t, sub2.C, 4))
}

func TestCancelledSubscriptionIsClosed(t *testing.T) {
	sink := New(context.Background())
	defer sink.Close()
	sub, err := sink.Subscribe(context.Background(), 1)
	require.NoError(t, err)
	sub.Cancel()
	sub.Cancel()
	select {
	case _, ok := <-sub.C:
		assert.False(t, ok, "no change was published")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription channel not closed after Cancel")
	}
	assert.Eventually(t, func() bool { return sink.Subscribers() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestClosedSinkRejectsSubscribers(t *testing.T) {
	sink := New(context.Background())
	sub, err := sink.Subscribe(context.Background(), 1)
	require.NoError(t, err)
	sink.Close()
	_, ok := <-sub.C
	assert.False(t, ok)
	_, err = sink.Subscribe(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
	sink.Changed(flattree.Change{Kind: flattree.ChangeInvalidate}) // dropped
}
