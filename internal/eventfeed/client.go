// Package eventfeed maintains a persistent subscription to the node's
// push-based event stream and fans the received events out to local
// subscribers. The connection is re-established with exponential backoff on
// any transport failure; consumers are told about reconnects through a
// synthetic event so they can re-enter their own syncing state.
package eventfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/K0LbAzzeR/dapi/libs/log"
	"github.com/K0LbAzzeR/dapi/libs/service"
	"github.com/K0LbAzzeR/dapi/types"
)

const (
	defaultMaxReconnectAttempts = 25
	defaultSubscribeTimeout     = 5 * time.Second
	maxReconnectBackoff         = 60 * time.Second
)

// ConnState is the feed connection's state.
type ConnState int32

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return fmt.Sprintf("unknown (%d)", int32(s))
}

// subscribeMsg is the handshake sent after every (re)dial. Since carries the
// last sequence marker seen so the feed can replay a missed range where it
// supports that.
type subscribeMsg struct {
	Op     string   `json:"op"`
	Topics []string `json:"topics"`
	Since  uint64   `json:"since,omitempty"`
}

// Client is a reconnecting websocket client for the node's event feed. The
// methods of Client are safe for use by multiple goroutines.
type Client struct {
	service.BaseService
	logger log.Logger

	address  string // host:port
	endpoint string // URL path, must begin with /

	maxReconnectAttempts int

	conn *websocket.Conn

	// deliver serializes fan-out so subscribers observe events in the
	// order the feed produced them.
	deliver chan types.FeedEvent

	reconnectAfter chan error
	readQuit       chan struct{}

	mtx     sync.RWMutex
	state   ConnState
	lastSeq uint64
	subs    map[string]chan<- types.FeedEvent
}

// Option configures a Client before Start.
type Option func(*Client)

// MaxReconnectAttempts bounds the number of redials before the client gives
// up and stops.
func MaxReconnectAttempts(n int) Option {
	return func(c *Client) { c.maxReconnectAttempts = n }
}

// NewClient returns a feed client for ws://address+endpoint.
func NewClient(logger log.Logger, address, endpoint string, opts ...Option) *Client {
	c := &Client{
		logger:               logger.With("module", "eventfeed"),
		address:              address,
		endpoint:             endpoint,
		maxReconnectAttempts: defaultMaxReconnectAttempts,
		deliver:              make(chan types.FeedEvent),
		reconnectAfter:       make(chan error, 1),
		subs:                 make(map[string]chan<- types.FeedEvent),
	}
	c.BaseService = *service.NewBaseService(c.logger, "EventFeed", c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current connection state.
func (c *Client) State() ConnState {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.state
}

// LastSeq returns the highest sequence marker seen so far.
func (c *Client) LastSeq() uint64 {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.lastSeq
}

// Subscribe registers a new subscriber and returns its event channel along
// with an unsubscribe function. Events are delivered in feed order; the
// channel is buffered with outCapacity.
func (c *Client) Subscribe(outCapacity int) (<-chan types.FeedEvent, func()) {
	ch := make(chan types.FeedEvent, outCapacity)
	id := uuid.NewString()

	c.mtx.Lock()
	c.subs[id] = ch
	c.mtx.Unlock()

	return ch, func() {
		c.mtx.Lock()
		delete(c.subs, id)
		c.mtx.Unlock()
	}
}

// OnStart implements service.Implementation by dialing the feed and
// launching the read, fan-out and reconnect routines.
func (c *Client) OnStart(ctx context.Context) error {
	if err := c.dial(); err != nil {
		return err
	}
	c.setState(Connected)

	c.readQuit = make(chan struct{})
	go c.fanOutRoutine(ctx)
	go c.readRoutine(ctx)
	go c.reconnectRoutine(ctx)
	return nil
}

// OnStop implements service.Implementation.
func (c *Client) OnStop() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.state = Disconnected
}

func (c *Client) setState(s ConnState) {
	c.mtx.Lock()
	c.state = s
	c.mtx.Unlock()
}

func (c *Client) dial() error {
	dialer := &websocket.Dialer{Proxy: http.ProxyFromEnvironment}
	conn, _, err := dialer.Dial("ws://"+c.address+c.endpoint, http.Header{})
	if err != nil {
		return err
	}

	msg := subscribeMsg{
		Op:     "subscribe",
		Topics: []string{string(types.EventKindBlock), string(types.EventKindTransaction)},
		Since:  c.LastSeq(),
	}
	_ = conn.SetWriteDeadline(time.Now().Add(defaultSubscribeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		_ = conn.Close()
		return fmt.Errorf("subscribing to feed: %w", err)
	}
	_ = conn.SetWriteDeadline(time.Time{})

	c.mtx.Lock()
	c.conn = conn
	c.mtx.Unlock()
	return nil
}

// readRoutine reads frames off the websocket until a transport error and
// hands them to the fan-out routine. It never blocks on subscribers
// directly.
func (c *Client) readRoutine(ctx context.Context) {
	defer close(c.readQuit)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !c.IsRunning() || ctx.Err() != nil {
				return
			}
			c.logger.Error("feed read failed", "err", err)
			select {
			case c.reconnectAfter <- err:
			default:
			}
			return
		}

		var ev types.FeedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			c.logger.Error("dropping undecodable feed frame", "err", err)
			continue
		}

		c.mtx.Lock()
		if ev.Seq > c.lastSeq {
			c.lastSeq = ev.Seq
		}
		c.mtx.Unlock()

		select {
		case c.deliver <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// fanOutRoutine pushes events to subscriber channels one event at a time,
// preserving feed order.
func (c *Client) fanOutRoutine(ctx context.Context) {
	for {
		select {
		case ev := <-c.deliver:
			c.publish(ctx, ev)
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) publish(ctx context.Context, ev types.FeedEvent) {
	c.mtx.RLock()
	chans := make([]chan<- types.FeedEvent, 0, len(c.subs))
	for _, ch := range c.subs {
		chans = append(chans, ch)
	}
	c.mtx.RUnlock()

	for _, ch := range chans {
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// reconnectRoutine redials with exponential backoff whenever the read
// routine reports a transport error, then notifies subscribers with a
// reconnect event.
func (c *Client) reconnectRoutine(ctx context.Context) {
	for {
		select {
		case originalErr := <-c.reconnectAfter:
			// wait for the read routine to finish before redialing.
			<-c.readQuit

			c.setState(Connecting)
			if err := c.reconnect(ctx); err != nil {
				c.logger.Error("giving up on feed reconnect",
					"err", err, "original_err", originalErr)
				_ = c.Stop()
				return
			}
			c.setState(Connected)

			c.readQuit = make(chan struct{})
			go c.readRoutine(ctx)

			c.publish(ctx, types.FeedEvent{Kind: types.EventKindReconnect, Seq: c.LastSeq()})

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) reconnect(ctx context.Context) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxReconnectAttempts; attempt++ {
		backoff := reconnectBackoff(attempt)
		c.logger.Info("reconnecting to feed", "attempt", attempt+1, "backoff", backoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}

		if lastErr = c.dial(); lastErr == nil {
			c.logger.Info("reconnected to feed", "last_seq", c.LastSeq())
			return nil
		}
		c.logger.Error("failed to redial feed", "err", lastErr)
	}
	return fmt.Errorf("reached maximum reconnect attempts: %w", lastErr)
}

// reconnectBackoff doubles per attempt, capped so a long outage never
// stretches the wait beyond maxReconnectBackoff.
func reconnectBackoff(attempt int) time.Duration {
	backoff := time.Duration(math.Exp2(float64(attempt))) * time.Second
	if backoff > maxReconnectBackoff || backoff <= 0 {
		return maxReconnectBackoff
	}
	return backoff
}
