// Package lobby is the coordination core of the game lobby. A Lobby is a
// single actor: local commands, channel events, roster refresh results and
// request completions are all queued on one inbox and handled to completion
// one at a time, so no two handlers ever interleave.
package lobby

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"playmatch/lobby/internal/auth"
	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/clock"
	"playmatch/lobby/internal/models"
	"playmatch/lobby/internal/roster"
)

// DefaultGraceDelay is the pause between a terminal event and entering the game.
const DefaultGraceDelay = time.Second

// Channel is the persistent realtime channel as seen by the coordinators.
type Channel interface {
	Connect(ctx context.Context) error
	Disconnect()
	Emit(eventType string, payload any) error
	Status() channel.Status
}

// API is the REST collaborator.
type API interface {
	FetchRoster(ctx context.Context) ([]models.RosterEntry, error)
	FetchProfile(ctx context.Context, username string) (models.Profile, error)
	SendInvitation(ctx context.Context, username string, mode models.GameMode) error
	CancelInvitation(ctx context.Context, username string, mode models.GameMode) error
	AcceptInvitation(ctx context.Context, username string) (string, error)
	RejectInvitation(ctx context.Context, username string) error
}

// GameSession receives the lobby's single transition into a game.
type GameSession interface {
	Enter(h models.Handoff)
}

// Publisher is told about every new view of the lobby.
type Publisher interface {
	Publish(eventType string, payload any)
}

// EntryParams are the read-only parameters the lobby was entered with.
type EntryParams struct {
	Invite   string // username to invite once the roster is known
	GameType string // pre-selected mode; locks mode selection when valid
	Winner   string // result of the previous match
}

// Config wires a Lobby to its collaborators.
type Config struct {
	Channel   Channel
	API       API
	Game      GameSession
	Login     auth.LoginTrigger
	Publisher Publisher
	Clock     clock.Clock

	RosterInterval time.Duration
	GraceDelay     time.Duration
	Entry          EntryParams
}

// Lobby owns the state of one lobby session.
type Lobby struct {
	channel   Channel
	api       API
	game      GameSession
	login     auth.LoginTrigger
	publisher Publisher
	clock     clock.Clock
	poller    roster.Poller
	grace     time.Duration

	inbox   chan func()
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	wg      sync.WaitGroup

	startOnce  sync.Once
	closeOnce  sync.Once
	stopPoller context.CancelFunc

	// Everything below is owned by the actor goroutine.
	st state
}

type outbound struct {
	username string
	mode     models.GameMode
}

type state struct {
	users      []models.InvitableUser
	mode       models.GameMode
	modeLocked bool
	queue      models.QueueState
	queueMode  models.GameMode

	// outbound is the one outstanding invitation, if any. The matching user
	// entry carries INVITED while it is still visible.
	outbound *outbound
	inflight string
	// canceling is the invitation being withdrawn. A rejection that lands
	// while the cancel is in flight sets canceledBy so a failed cancel does
	// not restore an invitation the server already settled.
	canceling  *outbound
	canceledBy bool

	rosterLoaded bool
	polling      bool
	repoll       bool
	pollWaiters  []func(error)

	deepLink   deepLink
	notices    []Notice
	lastResult string
	handoff    *models.Handoff
}

// New returns a Lobby that does nothing until Start is called.
func New(cfg Config) *Lobby {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	grace := cfg.GraceDelay
	if grace <= 0 {
		grace = DefaultGraceDelay
	}
	login := cfg.Login
	if login == nil {
		login = auth.LoginFunc(func() { log.Println("[LOBBY] Login required") })
	}

	l := &Lobby{
		channel:   cfg.Channel,
		api:       cfg.API,
		game:      cfg.Game,
		login:     login,
		publisher: cfg.Publisher,
		clock:     clk,
		poller:    roster.Poller{Clock: clk, Interval: cfg.RosterInterval},
		grace:     grace,
		inbox:     make(chan func(), 64),
		stopped:   make(chan struct{}),
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())

	l.st.queue = models.QueueDisconnected
	l.st.lastResult = strings.TrimSpace(cfg.Entry.Winner)
	if mode, ok := models.ParseGameMode(cfg.Entry.GameType); ok {
		l.st.mode = mode
		l.st.modeLocked = true
	}
	l.st.deepLink.target = strings.TrimSpace(cfg.Entry.Invite)
	return l
}

// Start connects the channel, fetches the first roster snapshot and keeps
// polling for more.
// The lobby stops when ctx is done or Close is called.
func (l *Lobby) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		pollCtx, stopPoller := context.WithCancel(l.ctx)
		l.stopPoller = stopPoller

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.loop()
		}()

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.poller.Run(pollCtx, func() {
				l.post(func() { l.startPoll(nil) })
			})
		}()

		l.post(l.connect)
		l.post(func() { l.startPoll(nil) })

		go func() {
			select {
			case <-ctx.Done():
				l.Close()
			case <-l.stopped:
			}
		}()
	})
}

// Close leaves the lobby: the poller stops, the channel is released and no
// further request is issued. A grace delay already running still completes.
func (l *Lobby) Close() {
	l.closeOnce.Do(func() {
		l.cancel()
		if l.channel != nil {
			l.channel.Disconnect()
		}
		l.wg.Wait()
	})
}

// Deliver queues a channel event for the lobby. It is the channel.Handler
// of the session owned by this lobby.
func (l *Lobby) Deliver(evt channel.Event) {
	l.post(func() { l.handleEvent(evt) })
}

// View returns the current state of the lobby.
func (l *Lobby) View(ctx context.Context) (View, error) {
	var v View
	err := l.exec(ctx, func(done func(error)) {
		v = l.view()
		done(nil)
	})
	return v, err
}

// Refresh returns once a roster snapshot requested after the call has been merged.
func (l *Lobby) Refresh(ctx context.Context) error {
	return l.exec(ctx, func(done func(error)) {
		l.startPoll(done)
	})
}

func (l *Lobby) loop() {
	defer close(l.stopped)
	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.inbox:
			fn()
			if l.publisher != nil {
				l.publisher.Publish("view", l.view())
			}
		}
	}
}

// post queues fn on the actor. It reports false once the lobby is stopped.
func (l *Lobby) post(fn func()) bool {
	select {
	case <-l.stopped:
		return false
	case <-l.ctx.Done():
		return false
	case l.inbox <- fn:
		return true
	}
}

// exec runs fn on the actor and waits until fn, or a continuation it
// scheduled, calls done exactly once.
func (l *Lobby) exec(ctx context.Context, fn func(done func(error))) error {
	result := make(chan error, 1)
	if !l.post(func() { fn(func(err error) { result <- err }) }) {
		return ErrClosed
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrClosed
	}
}

// io runs call off the actor and queues then with its result. Requests
// are bound to the lobby's lifetime and fail fast once it is closed.
func (l *Lobby) io(call func(ctx context.Context) error, then func(error)) {
	go func() {
		err := call(l.ctx)
		l.post(func() { then(err) })
	}()
}
