package memcache

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Options configures an Engine.
type Options struct {
	// ID identifies the engine in logs. Defaults to "memcache-<random>".
	ID string
	// BufferSize is the capacity of the command mailbox. Defaults to 128.
	BufferSize int
	// Context is the parent context; when it is canceled the engine loop
	// exits. Defaults to context.Background.
	Context context.Context
	Logger  *slog.Logger
	Metrics EngineMetrics
}

// item is a single cache entry. Owned exclusively by the engine loop.
type item struct {
	data    *Handle
	expires time.Time
	ttl     time.Duration
}

// Engine is a type-heterogeneous key-value cache with per-entry TTL.
//
// All reads and mutations travel as commands through a bounded mailbox into
// a single owner goroutine, which serializes access to the table without
// locks. Expired entries are evicted lazily on access and by a full-table
// sweep gated on the earliest known expiration.
type Engine struct {
	id  string
	log *slog.Logger

	mailbox chan command
	metrics EngineMetrics

	ctx  context.Context
	stop chan struct{}
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// New creates an engine and starts its owner goroutine.
func New(opt Options) *Engine {
	if opt.ID == "" {
		opt.ID = fmt.Sprintf("memcache-%s", gonanoid.Must(6))
	}
	if opt.BufferSize <= 0 {
		opt.BufferSize = 128
	}
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopEngineMetrics()
	}

	e := &Engine{
		id:      opt.ID,
		log:     opt.Logger.With(slog.String("engine", opt.ID)),
		mailbox: make(chan command, opt.BufferSize),
		metrics: opt.Metrics,
		ctx:     opt.Context,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go e.run()
	return e
}

// ID returns the engine's identifier.
func (e *Engine) ID() string { return e.id }

// Done is closed when the engine loop exits.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Close stops the engine and waits for the loop to exit. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		<-e.done
		return
	}
	e.closed = true
	e.mu.Unlock()

	close(e.stop)
	<-e.done
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// send enqueues a command. Producers block on a full mailbox until the
// command is accepted, ctx is canceled, or the engine stops.
func (e *Engine) send(ctx context.Context, cmd command) error {
	if e.isClosed() {
		return ErrClosed
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("send failed: %w", ctx.Err())
	case <-e.stop:
		return ErrClosed
	case <-e.done:
		// Loop already exited (parent context canceled); nothing consumes
		// the mailbox anymore.
		return ErrClosed
	case e.mailbox <- cmd:
		return nil
	}
}

// Lookup fetches the handle stored under key. With refresh set, a
// successful lookup also slides the entry's expiration forward by the TTL
// captured at the last put.
func (e *Engine) Lookup(ctx context.Context, key string, refresh bool) (*Handle, error) {
	reply := make(chan lookup, 1)
	if err := e.send(ctx, getCmd{key: key, reply: reply, refresh: refresh}); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("lookup failed: %w", ctx.Err())
	case r := <-reply:
		return r.handle, r.err
	case <-e.done:
		// The loop may have replied just before exiting.
		select {
		case r := <-reply:
			return r.handle, r.err
		default:
			return nil, ErrClosed
		}
	}
}

// Put inserts or overwrites the entry under key with expiry now+ttl.
// Fire-and-forget: success means the command was enqueued.
func (e *Engine) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	return e.send(ctx, putCmd{key: key, handle: NewHandle(value), ttl: ttl})
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (e *Engine) Remove(ctx context.Context, key string) error {
	return e.send(ctx, removeCmd{key: key})
}

// run owns the cache table. No other goroutine ever touches it; the mailbox
// provides the total order of all reads and mutations.
func (e *Engine) run() {
	defer close(e.done)

	table := make(map[string]*item)

	// watermark is a lower bound on the earliest expiration across all
	// entries. A sweep only runs once the watermark has passed.
	watermark := time.Now()

	for {
		var cmd command
		select {
		case <-e.stop:
			e.log.Info("engine stopped", slog.Int("entries", len(table)))
			return
		case <-e.ctx.Done():
			e.log.Info("engine context canceled", slog.Int("entries", len(table)))
			return
		case cmd = <-e.mailbox:
		}

		e.metrics.MailboxDepth(len(e.mailbox))

		now := time.Now()
		e.handle(table, cmd, now)

		if now.After(watermark) {
			if next, ok := e.sweep(table, time.Now()); ok {
				watermark = next
			}
		}
	}
}

// handle applies a single command to the table, with crash containment:
// a panicking command must not take the engine down.
func (e *Engine) handle(table map[string]*item, cmd command, now time.Time) {
	defer e.metrics.CommandDuration(cmd.cmdName()).ObserveDuration()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("command panicked",
				slog.Any("recovered", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	switch c := cmd.(type) {
	case getCmd:
		it, ok := table[c.key]
		if !ok {
			e.metrics.LookupResult(LookupNoValue)
			c.reply <- lookup{err: ErrNoValue}
			break
		}
		if !it.expires.After(now) {
			e.metrics.LookupResult(LookupExpired)
			c.reply <- lookup{err: ErrExpired}
			delete(table, c.key)
			break
		}
		e.metrics.LookupResult(LookupHit)
		c.reply <- lookup{handle: it.data}
		if c.refresh {
			// Extend by the TTL captured at the last put, measured from now.
			// The reply above still reflects the state at read time.
			it.expires = now.Add(it.ttl)
		}
	case putCmd:
		table[c.key] = &item{data: c.handle, expires: now.Add(c.ttl), ttl: c.ttl}
	case removeCmd:
		delete(table, c.key)
	}

	e.metrics.CommandProcessed(cmd.cmdName())
	e.metrics.TableSize(len(table))
}

// sweep walks the whole table once, evicting every expired entry. It
// returns the earliest expiry among the survivors; ok is false when no live
// entries remain.
func (e *Engine) sweep(table map[string]*item, now time.Time) (next time.Time, ok bool) {
	defer e.metrics.SweepDuration().ObserveDuration()

	var expired []string
	for key, it := range table {
		if !it.expires.After(now) {
			expired = append(expired, key)
			continue
		}
		if next.IsZero() || it.expires.Before(next) {
			next = it.expires
		}
	}

	for _, key := range expired {
		delete(table, key)
	}

	e.metrics.SweepEvicted(len(expired))
	e.log.Debug("gc collected entries",
		slog.Int("count", len(expired)),
		slog.Int("remaining", len(table)),
	)

	return next, !next.IsZero()
}
