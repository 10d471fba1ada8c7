package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"playmatch/lobby/internal/auth"
	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/clock"
	"playmatch/lobby/internal/models"
	"playmatch/lobby/internal/roster"
)

var errBoom = errors.New("boom")

type emitted struct {
	eventType string
	payload   any
}

type fakeChannel struct {
	mu          sync.Mutex
	state       channel.State
	emits       []emitted
	emitErr     error
	disconnects int
	connects    chan struct{}
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{state: channel.StateConnected, connects: make(chan struct{}, 16)}
}

func (c *fakeChannel) Connect(ctx context.Context) error {
	select {
	case c.connects <- struct{}{}:
	default:
	}
	return nil
}

func (c *fakeChannel) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnects++
	c.state = channel.StateDisconnected
}

func (c *fakeChannel) Emit(eventType string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.emitErr != nil {
		return c.emitErr
	}
	c.emits = append(c.emits, emitted{eventType, payload})
	return nil
}

func (c *fakeChannel) Status() channel.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return channel.Status{State: c.state, Connected: c.state == channel.StateConnected}
}

func (c *fakeChannel) setState(s channel.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *fakeChannel) setEmitErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emitErr = err
}

func (c *fakeChannel) sent() []emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]emitted(nil), c.emits...)
}

func (c *fakeChannel) disconnectCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnects
}

type fakeAPI struct {
	mu       sync.Mutex
	roster   []models.RosterEntry
	profiles map[string]models.Profile
	errs     map[string]error
	gameID   string

	// sendGate, when set, holds SendInvitation until it is closed.
	sendGate chan struct{}
	// cancelGate does the same for CancelInvitation.
	cancelGate chan struct{}
	calls      chan string
}

func newFakeAPI(users ...models.RosterEntry) *fakeAPI {
	return &fakeAPI{
		roster:   users,
		profiles: map[string]models.Profile{},
		errs:     map[string]error{},
		gameID:   "g-accept",
		calls:    make(chan string, 256),
	}
}

func (a *fakeAPI) record(call string) error {
	a.calls <- call
	a.mu.Lock()
	defer a.mu.Unlock()
	for prefix, err := range a.errs {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			return err
		}
	}
	return nil
}

func (a *fakeAPI) fail(prefix string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err == nil {
		delete(a.errs, prefix)
		return
	}
	a.errs[prefix] = err
}

func (a *fakeAPI) setRoster(users ...models.RosterEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.roster = users
}

func (a *fakeAPI) FetchRoster(ctx context.Context) ([]models.RosterEntry, error) {
	if err := a.record("roster"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.RosterEntry(nil), a.roster...), nil
}

func (a *fakeAPI) FetchProfile(ctx context.Context, username string) (models.Profile, error) {
	if err := a.record("profile " + username); err != nil {
		return models.Profile{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.profiles[username]; ok {
		return p, nil
	}
	return models.Profile{Username: username, ImageURL: "/img/" + username}, nil
}

func (a *fakeAPI) SendInvitation(ctx context.Context, username string, mode models.GameMode) error {
	err := a.record(fmt.Sprintf("send %s %s", username, mode))
	a.mu.Lock()
	gate := a.sendGate
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func (a *fakeAPI) CancelInvitation(ctx context.Context, username string, mode models.GameMode) error {
	err := a.record(fmt.Sprintf("cancel %s %s", username, mode))
	a.mu.Lock()
	gate := a.cancelGate
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func (a *fakeAPI) AcceptInvitation(ctx context.Context, username string) (string, error) {
	if err := a.record("accept " + username); err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gameID, nil
}

func (a *fakeAPI) RejectInvitation(ctx context.Context, username string) error {
	return a.record("reject " + username)
}

// waitCall blocks until the API sees a call named want.
func (a *fakeAPI) waitCall(t *testing.T, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-a.calls:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("API call %q never happened", want)
		}
	}
}

type fakeGame struct {
	mu      sync.Mutex
	entered []models.Handoff
}

func (g *fakeGame) Enter(h models.Handoff) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entered = append(g.entered, h)
}

func (g *fakeGame) handoffs() []models.Handoff {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Handoff(nil), g.entered...)
}

type countingPublisher struct {
	n atomic.Int64
}

func (p *countingPublisher) Publish(eventType string, payload any) {
	if eventType == "view" {
		p.n.Add(1)
	}
}

type harness struct {
	t         *testing.T
	lobby     *Lobby
	ch        *fakeChannel
	api       *fakeAPI
	game      *fakeGame
	publisher *countingPublisher
	clock     *clock.Fake
	logins    atomic.Int32
}

func online(id int64, username string) models.RosterEntry {
	return models.RosterEntry{ID: id, Username: username, ImageURL: "/img/" + username, Status: []models.PresenceTag{models.TagOnline}}
}

func offline(id int64, username string) models.RosterEntry {
	return models.RosterEntry{ID: id, Username: username}
}

// newHarness starts a lobby whose first roster snapshot holds users.
func newHarness(t *testing.T, entry EntryParams, users ...models.RosterEntry) *harness {
	t.Helper()
	h := &harness{
		t:         t,
		ch:        newFakeChannel(),
		api:       newFakeAPI(users...),
		game:      &fakeGame{},
		publisher: &countingPublisher{},
		clock:     clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
	}
	h.lobby = New(Config{
		Channel:   h.ch,
		API:       h.api,
		Game:      h.game,
		Login:     auth.LoginFunc(func() { h.logins.Add(1) }),
		Publisher: h.publisher,
		Clock:     h.clock,
		Entry:     entry,
	})
	h.lobby.Start(context.Background())
	t.Cleanup(h.lobby.Close)
	h.refresh()
	return h
}

func (h *harness) refresh() {
	h.t.Helper()
	if err := h.lobby.Refresh(context.Background()); err != nil {
		h.t.Fatalf("Refresh: %v", err)
	}
}

func (h *harness) view() View {
	h.t.Helper()
	v, err := h.lobby.View(context.Background())
	if err != nil {
		h.t.Fatalf("View: %v", err)
	}
	return v
}

func (h *harness) user(username string) models.InvitableUser {
	h.t.Helper()
	v := h.view()
	idx := roster.Find(v.Users, username)
	if idx < 0 {
		h.t.Fatalf("%s not in the lobby: %+v", username, v.Users)
	}
	return v.Users[idx]
}

func (h *harness) deliver(eventType, payload string) {
	h.lobby.Deliver(channel.Event{Type: eventType, Payload: json.RawMessage(payload)})
}

func (h *harness) selectMode(mode models.GameMode) {
	h.t.Helper()
	if err := h.lobby.SelectMode(context.Background(), mode); err != nil {
		h.t.Fatalf("SelectMode(%s): %v", mode, err)
	}
}

func (h *harness) invite(username string) {
	h.t.Helper()
	if err := h.lobby.SendInvitation(context.Background(), username, models.ModeUnset); err != nil {
		h.t.Fatalf("SendInvitation(%s): %v", username, err)
	}
}

func countInvited(users []models.InvitableUser) int {
	n := 0
	for _, u := range users {
		if u.InvitationState == models.InvitationInvited {
			n++
		}
	}
	return n
}
