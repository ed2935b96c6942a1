package feed

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel carrying feed-changed notifications between instances.
const changedChannel = "feed:changed"

// Notifier is the explicit subscriber contract behind the feed-changed
// broadcast. Events carry no payload; listeners always re-pull current
// state, so a slow subscriber may coalesce several notifications into one.
//
// With a reachable redis the broadcast crosses instances over pub/sub;
// otherwise an in-process hub serves local subscribers.
type Notifier struct {
	rdb    *redis.Client
	logger *zap.SugaredLogger

	mu     sync.Mutex
	subs   map[chan struct{}]struct{}
	closed bool

	cancelRun context.CancelFunc
	pubsub    *redis.PubSub
}

// NewNotifier creates a Notifier. rdb may be nil; an unreachable redis also
// degrades to in-process delivery.
func NewNotifier(rdb *redis.Client, logger *zap.SugaredLogger) *Notifier {
	n := &Notifier{
		rdb:    rdb,
		logger: logger,
		subs:   make(map[chan struct{}]struct{}),
	}

	if n.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := n.rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			if logger != nil {
				logger.Warnw("redis unreachable, feed notifications stay in-process", "error", err)
			}
			n.rdb = nil
		}
	}

	if n.rdb != nil {
		runCtx, cancel := context.WithCancel(context.Background())
		n.cancelRun = cancel
		n.pubsub = n.rdb.Subscribe(runCtx, changedChannel)
		go n.run(runCtx)
	}
	return n
}

// Publish emits one feed-changed notification.
func (n *Notifier) Publish(ctx context.Context) {
	if n.rdb != nil {
		if err := n.rdb.Publish(ctx, changedChannel, "1").Err(); err != nil {
			if n.logger != nil {
				n.logger.Warnw("publish feed-changed failed, delivering locally", "error", err)
			}
			n.fanout()
		}
		// local subscribers are reached through the redis subscription
		return
	}
	n.fanout()
}

// Subscribe registers a listener. The returned channel receives an empty
// struct per (possibly coalesced) notification; cancel must be called when
// the listener goes away. The subscription also ends with ctx.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if _, ok := n.subs[ch]; ok {
				delete(n.subs, ch)
				close(ch)
			}
			n.mu.Unlock()
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

// Close stops redis delivery and releases all subscribers.
func (n *Notifier) Close() error {
	if n.cancelRun != nil {
		n.cancelRun()
	}
	var err error
	if n.pubsub != nil {
		err = n.pubsub.Close()
	}

	n.mu.Lock()
	if !n.closed {
		n.closed = true
		for ch := range n.subs {
			delete(n.subs, ch)
			close(ch)
		}
	}
	n.mu.Unlock()
	return err
}

func (n *Notifier) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-n.pubsub.Channel():
			if !ok {
				return
			}
			_ = msg
			n.fanout()
		}
	}
}

func (n *Notifier) fanout() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
			// listener already has a pending notification
		}
	}
}
