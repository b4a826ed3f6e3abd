package eventfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0LbAzzeR/dapi/libs/log"
	"github.com/K0LbAzzeR/dapi/types"
)

// feedServer is a minimal websocket feed endpoint. Every accepted
// connection's subscribe handshake is pushed to handshakes; events are
// written through the most recent connection.
type feedServer struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	handshakes chan subscribeMsg

	mtx  sync.Mutex
	conn *websocket.Conn
}

func newFeedServer(t *testing.T) *feedServer {
	t.Helper()
	fs := &feedServer{
		t:          t,
		handshakes: make(chan subscribeMsg, 4),
	}
	fs.srv = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *feedServer) addr() string {
	return fs.srv.Listener.Addr().String()
}

func (fs *feedServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := fs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		fs.t.Logf("upgrade failed: %v", err)
		return
	}

	var msg subscribeMsg
	if err := conn.ReadJSON(&msg); err != nil {
		fs.t.Logf("reading handshake: %v", err)
		return
	}

	// Store first so a test that saw the handshake can write immediately.
	fs.mtx.Lock()
	fs.conn = conn
	fs.mtx.Unlock()

	fs.handshakes <- msg
}

func (fs *feedServer) send(ev types.FeedEvent) {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	require.NoError(fs.t, fs.conn.WriteJSON(ev))
}

func (fs *feedServer) dropConnection() {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	_ = fs.conn.Close()
}

func (fs *feedServer) awaitHandshake(t *testing.T) subscribeMsg {
	t.Helper()
	select {
	case msg := <-fs.handshakes:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for subscribe handshake")
		return subscribeMsg{}
	}
}

func recvEvent(t *testing.T, ch <-chan types.FeedEvent) types.FeedEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for feed event")
		return types.FeedEvent{}
	}
}

func TestClientSubscribeAndFanOut(t *testing.T) {
	defer leaktest.CheckTimeout(t, 10*time.Second)()

	fs := newFeedServer(t)
	defer fs.srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewClient(log.NewTestingLogger(t), fs.addr(), "/websocket")
	require.NoError(t, c.Start(ctx))
	assert.Equal(t, Connected, c.State())

	handshake := fs.awaitHandshake(t)
	assert.Equal(t, "subscribe", handshake.Op)
	assert.ElementsMatch(t, []string{"block", "transaction"}, handshake.Topics)
	assert.EqualValues(t, 0, handshake.Since)

	sub1, unsub1 := c.Subscribe(8)
	sub2, unsub2 := c.Subscribe(8)
	defer unsub1()
	defer unsub2()

	first := types.FeedEvent{Kind: types.EventKindBlock, Seq: 1, Payload: []byte(`{"height":10}`)}
	second := types.FeedEvent{Kind: types.EventKindTransaction, Seq: 2, Payload: []byte(`"rawtx"`)}
	fs.send(first)
	fs.send(second)

	for _, sub := range []<-chan types.FeedEvent{sub1, sub2} {
		got := recvEvent(t, sub)
		assert.Equal(t, first, got)
		got = recvEvent(t, sub)
		assert.Equal(t, second, got)
	}
	assert.EqualValues(t, 2, c.LastSeq())

	cancel()
	_ = c.Stop()
}

func TestClientReconnects(t *testing.T) {
	defer leaktest.CheckTimeout(t, 30*time.Second)()

	fs := newFeedServer(t)
	defer fs.srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewClient(log.NewTestingLogger(t), fs.addr(), "/websocket", MaxReconnectAttempts(3))
	require.NoError(t, c.Start(ctx))
	fs.awaitHandshake(t)

	sub, unsub := c.Subscribe(8)
	defer unsub()

	fs.send(types.FeedEvent{Kind: types.EventKindBlock, Seq: 7, Payload: []byte(`{"height":7}`)})
	assert.EqualValues(t, 7, recvEvent(t, sub).Seq)

	fs.dropConnection()

	// The redial handshake resumes from the last seen sequence marker.
	handshake := fs.awaitHandshake(t)
	assert.EqualValues(t, 7, handshake.Since)

	got := recvEvent(t, sub)
	assert.Equal(t, types.EventKindReconnect, got.Kind)

	fs.send(types.FeedEvent{Kind: types.EventKindBlock, Seq: 8, Payload: []byte(`{"height":8}`)})
	got = recvEvent(t, sub)
	assert.Equal(t, types.EventKindBlock, got.Kind)
	assert.EqualValues(t, 8, got.Seq)

	cancel()
	_ = c.Stop()
}

func TestClientGivesUpAfterMaxAttempts(t *testing.T) {
	defer leaktest.CheckTimeout(t, 30*time.Second)()

	fs := newFeedServer(t)
	defer fs.srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewClient(log.NewTestingLogger(t), fs.addr(), "/websocket", MaxReconnectAttempts(0))
	require.NoError(t, c.Start(ctx))
	fs.awaitHandshake(t)

	// Take the whole server down so redials cannot succeed. The feed
	// connection is hijacked, so CloseClientConnections does not reach it;
	// drop it explicitly so the client observes the outage.
	fs.srv.CloseClientConnections()
	fs.srv.Close()
	fs.dropConnection()

	require.Eventually(t, func() bool {
		return !c.IsRunning()
	}, 20*time.Second, 50*time.Millisecond)
	assert.Equal(t, Disconnected, c.State())

	cancel()
}

func TestReconnectBackoffCapped(t *testing.T) {
	assert.Equal(t, 1*time.Second, reconnectBackoff(0))
	assert.Equal(t, 8*time.Second, reconnectBackoff(3))
	assert.Equal(t, maxReconnectBackoff, reconnectBackoff(6))
	assert.Equal(t, maxReconnectBackoff, reconnectBackoff(25))
	assert.Equal(t, maxReconnectBackoff, reconnectBackoff(100))
}
