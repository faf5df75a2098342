// Package reactor holds the search view-model: actions come in, are
// turned into mutations, and are folded into a State that observers see.
//
// All state changes happen on one Scheduler. Searches run on their own
// goroutines and hand their results back to the scheduler before they are
// reduced. A new updateQuery cancels every search still in flight, and
// results of cancelled searches are dropped.
package reactor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lepinkainen/moviesearch/internal/naver"
)

// Searcher fetches one page of results. It must not fail: every error is
// reported as an empty page.
type Searcher interface {
	Search(ctx context.Context, query string, page int) naver.PageResult
}

// Option configures a Reactor.
type Option func(*Reactor)

// WithScheduler runs state updates on s instead of a private Loop. The
// caller owns s and closes it after the reactor.
func WithScheduler(s Scheduler) Option {
	return func(r *Reactor) {
		if s != nil {
			r.scheduler = s
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reactor) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMutationTrace calls fn on the scheduler after each mutation has been
// reduced, with the mutation and the resulting state.
func WithMutationTrace(fn func(Mutation, State)) Option {
	return func(r *Reactor) {
		r.trace = fn
	}
}

type observer struct {
	id uint64
	fn func(State)
}

// Reactor is the search view-model.
type Reactor struct {
	searcher  Searcher
	scheduler Scheduler
	ownLoop   *Loop
	logger    *slog.Logger
	trace     func(Mutation, State)

	ctx    context.Context
	cancel context.CancelFunc

	// Owned by the scheduler.
	state     State
	observers []observer
	pending   map[uint64]context.CancelFunc
	searchID  uint64
	nextID    uint64

	mu       sync.Mutex
	snapshot State
	busy     int
	idle     chan struct{}
	closed   bool
}

// New creates a reactor in the initial state.
func New(searcher Searcher, opts ...Option) *Reactor {
	r := &Reactor{
		searcher: searcher,
		logger:   slog.Default(),
		state:    InitialState(),
		pending:  make(map[uint64]context.CancelFunc),
		idle:     make(chan struct{}),
	}
	close(r.idle)
	r.snapshot = r.state.Clone()
	r.ctx, r.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(r)
	}
	if r.scheduler == nil {
		r.ownLoop = NewLoop()
		r.scheduler = r.ownLoop
	}
	return r
}

// Send hands an action to the reactor. It never blocks. Actions sent after
// Close are ignored.
func (r *Reactor) Send(action Action) {
	r.run(func() { r.handle(action) })
}

// State returns a snapshot of the current state.
func (r *Reactor) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot.Clone()
}

// Subscribe registers fn to receive a snapshot after every reduce step,
// starting with the current state. fn runs on the scheduler and must not
// block. The returned func removes the subscription.
func (r *Reactor) Subscribe(fn func(State)) func() {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.mu.Unlock()

	r.run(func() {
		r.observers = append(r.observers, observer{id: id, fn: fn})
		fn(r.state.Clone())
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			r.run(func() {
				for i, o := range r.observers {
					if o.id == id {
						r.observers = append(r.observers[:i:i], r.observers[i+1:]...)
						return
					}
				}
			})
		})
	}
}

// Settled waits until every sent action has been handled and every search
// it started has been delivered or dropped, then returns the state.
func (r *Reactor) Settled(ctx context.Context) (State, error) {
	for {
		r.mu.Lock()
		if r.busy == 0 {
			state := r.snapshot.Clone()
			r.mu.Unlock()
			return state, nil
		}
		idle := r.idle
		r.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return r.State(), ctx.Err()
		}
	}
}

// Close cancels every search in flight and stops the private loop, if
// any. The reactor ignores further actions.
func (r *Reactor) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	if r.ownLoop != nil {
		r.ownLoop.Close()
	}
}

// run schedules task and tracks it as outstanding work.
func (r *Reactor) run(task func()) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.begin()
	if !r.scheduler.Schedule(func() {
		defer r.end()
		task()
	}) {
		r.end()
	}
}

func (r *Reactor) begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy == 0 {
		r.idle = make(chan struct{})
	}
	r.busy++
}

func (r *Reactor) end() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy--
	if r.busy == 0 {
		close(r.idle)
	}
}

func (r *Reactor) handle(action Action) {
	switch action.Kind {
	case ActionUpdateQuery:
		r.updateQuery(action.Query)
	case ActionLoadNextPage:
		r.loadNextPage()
	default:
		r.logger.Debug("Ignoring unknown action", "action", action.String())
	}
}

func (r *Reactor) updateQuery(query *string) {
	for id, cancel := range r.pending {
		cancel()
		delete(r.pending, id)
	}

	r.apply(SetQuery(query))

	text := ""
	if query != nil {
		text = *query
	}
	r.searchID = r.start(text, 0, func(result naver.PageResult) {
		r.searchID = 0
		r.apply(SetMovies(result.Movies, result.NextPage))
	})
}

func (r *Reactor) loadNextPage() {
	switch {
	case r.state.IsLoadingNextPage:
		return
	case r.state.NextPage == nil:
		return
	case !r.state.HasQuery():
		return
	case r.searchID != 0:
		// first page of a new query still in flight
		return
	}

	r.apply(SetLoadingNextPage(true))
	r.start(r.state.QueryText(), *r.state.NextPage, func(result naver.PageResult) {
		r.apply(AppendMovies(result.Movies, result.NextPage))
		r.apply(SetLoadingNextPage(false))
	})
}

// start runs a search off the scheduler and delivers its result back on
// it, unless updateQuery cancelled the search in the meantime.
func (r *Reactor) start(query string, page int, deliver func(naver.PageResult)) uint64 {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(r.ctx)
	r.pending[id] = cancel

	r.begin()
	go func() {
		result := r.searcher.Search(ctx, query, page)
		if !r.scheduler.Schedule(func() {
			defer r.end()
			if _, ok := r.pending[id]; !ok || r.ctx.Err() != nil {
				r.logger.Debug("Dropping result of cancelled search", "query", query, "page", page)
				return
			}
			delete(r.pending, id)
			cancel()
			deliver(result)
		}) {
			cancel()
			r.end()
		}
	}()
	return id
}

func (r *Reactor) apply(m Mutation) {
	r.state = Reduce(r.state, m)

	snapshot := r.state.Clone()
	r.mu.Lock()
	r.snapshot = snapshot
	r.mu.Unlock()

	if r.trace != nil {
		r.trace(m, r.state.Clone())
	}
	for _, o := range r.observers {
		o.fn(r.state.Clone())
	}
}
