package lobby

import (
	"context"
	"errors"
	"testing"

	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/models"
)

func TestInvitationRejectedByInvitee(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.selectMode(models.ModeClassic)

	if err := h.lobby.SendInvitation(context.Background(), "alice", models.ModeClassic); err != nil {
		t.Fatalf("SendInvitation: %v", err)
	}
	if got := h.user("alice").InvitationState; got != models.InvitationInvited {
		t.Fatalf("alice = %s, want INVITED", got)
	}
	if v := h.view(); !v.Invited || v.InvitedUser != "alice" {
		t.Fatalf("invited = %v %q, want alice", v.Invited, v.InvitedUser)
	}

	h.deliver(channel.EventInvitationRejected, `{"by":{"username":"alice"}}`)

	v := h.view()
	if v.Invited {
		t.Fatal("invited still set after rejection")
	}
	if got := h.user("alice").InvitationState; got != models.InvitationRejected {
		t.Fatalf("alice = %s, want REJECTED", got)
	}

	h.refresh()
	if got := h.user("alice").InvitationState; got != models.InvitationRejected {
		t.Fatalf("alice after refresh = %s, want REJECTED", got)
	}
}

func TestSendInvitationNeedsMode(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"))

	err := h.lobby.SendInvitation(context.Background(), "alice", models.ModeUnset)
	if !errors.Is(err, ErrModeUnset) {
		t.Fatalf("err = %v, want ErrModeUnset", err)
	}
	if err := h.lobby.SendInvitation(context.Background(), "nobody", models.ModeClassic); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("err = %v, want ErrUnknownUser", err)
	}
}

func TestSendInvitationFailureRollsBack(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"))
	h.selectMode(models.ModeClassic)
	h.api.fail("send alice", errBoom)

	err := h.lobby.SendInvitation(context.Background(), "alice", models.ModeUnset)
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want %v", err, errBoom)
	}

	v := h.view()
	if got := h.user("alice").InvitationState; got != models.InvitationNone {
		t.Fatalf("alice = %s, want NONE", got)
	}
	if v.Invited || v.RequestInFlight {
		t.Fatalf("invited = %v, in flight = %v after failure", v.Invited, v.RequestInFlight)
	}
	if len(v.Notices) != 1 || v.Notices[0].Kind != NoticeRequestFailed || v.Notices[0].Blocking {
		t.Fatalf("notices = %+v, want one inline request_failed", v.Notices)
	}

	if err := h.lobby.DismissNotice(context.Background(), v.Notices[0].ID); err != nil {
		t.Fatalf("DismissNotice: %v", err)
	}
	if err := h.lobby.DismissNotice(context.Background(), v.Notices[0].ID); !errors.Is(err, ErrNoticeNotFound) {
		t.Fatalf("second dismiss = %v, want ErrNoticeNotFound", err)
	}
	if n := len(h.view().Notices); n != 0 {
		t.Fatalf("%d notices left", n)
	}
}

func TestAtMostOneOutstandingInvitation(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.selectMode(models.ModeClassic)

	h.invite("alice")
	if err := h.lobby.SendInvitation(context.Background(), "bob", models.ModeUnset); !errors.Is(err, ErrInvitationPending) {
		t.Fatalf("second invitation = %v, want ErrInvitationPending", err)
	}
	if n := countInvited(h.view().Users); n != 1 {
		t.Fatalf("%d users INVITED", n)
	}

	h.deliver(channel.EventInvitationRejected, `{"by":{"username":"alice"}}`)
	h.invite("bob")

	if got := h.user("alice").InvitationState; got != models.InvitationNone {
		t.Fatalf("alice = %s, want stale REJECTED cleared", got)
	}
	if got := h.user("bob").InvitationState; got != models.InvitationInvited {
		t.Fatalf("bob = %s, want INVITED", got)
	}

	// A cancel sent by alice is about her own invitation to us, not ours to bob.
	h.deliver(channel.EventInvitationCanceled, `{"username":"alice"}`)
	if n := countInvited(h.view().Users); n != 1 {
		t.Fatalf("%d users INVITED", n)
	}

	if err := h.lobby.CancelInvitation(context.Background(), "bob"); err != nil {
		t.Fatalf("CancelInvitation: %v", err)
	}
	v := h.view()
	if n := countInvited(v.Users); n != 0 || v.Invited {
		t.Fatalf("%d users INVITED after cancel, invited = %v", n, v.Invited)
	}
}

func TestRejectionFromAnotherUserIsIgnored(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.selectMode(models.ModeClassic)
	h.invite("alice")

	h.deliver(channel.EventInvitationRejected, `{"by":{"username":"bob"}}`)

	if got := h.user("alice").InvitationState; got != models.InvitationInvited {
		t.Fatalf("alice = %s, want INVITED", got)
	}
	if got := h.user("bob").InvitationState; got != models.InvitationNone {
		t.Fatalf("bob = %s, want NONE", got)
	}
}

func TestCancelInvitationFailureRestoresInvited(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.selectMode(models.ModeBonus)
	h.invite("alice")

	if err := h.lobby.CancelInvitation(context.Background(), "bob"); !errors.Is(err, ErrNotInvited) {
		t.Fatalf("cancel bob = %v, want ErrNotInvited", err)
	}

	h.api.fail("cancel alice", errBoom)
	if err := h.lobby.CancelInvitation(context.Background(), "alice"); !errors.Is(err, errBoom) {
		t.Fatalf("cancel alice = %v, want %v", err, errBoom)
	}

	v := h.view()
	if got := h.user("alice").InvitationState; got != models.InvitationInvited {
		t.Fatalf("alice = %s, want INVITED restored", got)
	}
	if !v.Invited || len(v.Notices) != 1 {
		t.Fatalf("invited = %v, notices = %+v", v.Invited, v.Notices)
	}
}

func TestRejectionDuringFailedCancelKeepsLobbyUsable(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.selectMode(models.ModeClassic)
	h.invite("alice")

	gate := make(chan struct{})
	h.api.mu.Lock()
	h.api.cancelGate = gate
	h.api.mu.Unlock()
	h.api.fail("cancel alice", errBoom)

	result := make(chan error, 1)
	go func() {
		result <- h.lobby.CancelInvitation(context.Background(), "alice")
	}()
	h.api.waitCall(t, "cancel alice classic")

	h.deliver(channel.EventInvitationRejected, `{"by":{"username":"alice"}}`)
	if got := h.user("alice").InvitationState; got != models.InvitationRejected {
		t.Fatalf("alice = %s, want REJECTED once the rejection lands", got)
	}

	close(gate)
	if err := <-result; err != nil {
		t.Fatalf("CancelInvitation = %v, want nil after the rejection settled it", err)
	}

	v := h.view()
	if v.Invited || !v.CanInvite || !v.CanJoinQueue {
		t.Fatalf("invited = %v, can invite = %v, can join = %v", v.Invited, v.CanInvite, v.CanJoinQueue)
	}
	if got := h.user("alice").InvitationState; got != models.InvitationRejected {
		t.Fatalf("alice = %s, want REJECTED kept", got)
	}

	h.api.mu.Lock()
	h.api.cancelGate = nil
	h.api.mu.Unlock()
	h.invite("bob")
	if got := h.user("bob").InvitationState; got != models.InvitationInvited {
		t.Fatalf("bob = %s, want INVITED", got)
	}
}

func TestRequestInFlightBlocksOtherRequests(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.selectMode(models.ModeClassic)

	gate := make(chan struct{})
	h.api.mu.Lock()
	h.api.sendGate = gate
	h.api.mu.Unlock()

	result := make(chan error, 1)
	go func() {
		result <- h.lobby.SendInvitation(context.Background(), "alice", models.ModeUnset)
	}()
	h.api.waitCall(t, "send alice classic")

	v := h.view()
	if !v.RequestInFlight || v.CanInvite || v.CanJoinQueue {
		t.Fatalf("in flight = %v, can invite = %v, can join = %v", v.RequestInFlight, v.CanInvite, v.CanJoinQueue)
	}
	if got := h.user("alice").InvitationState; got != models.InvitationInvited {
		t.Fatalf("alice = %s, want INVITED while the request runs", got)
	}
	if err := h.lobby.CancelInvitation(context.Background(), "alice"); !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("cancel = %v, want ErrRequestInFlight", err)
	}

	close(gate)
	if err := <-result; err != nil {
		t.Fatalf("SendInvitation: %v", err)
	}
	if h.view().RequestInFlight {
		t.Fatal("request still in flight")
	}
}

func TestInvitationAcceptedEntersGame(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"))
	h.selectMode(models.ModeBonus)
	h.invite("alice")

	h.deliver(channel.EventInvitationAccepted, `{"gameId":"g7"}`)

	v := h.view()
	if v.Handoff == nil || v.Handoff.SessionID != "g7" {
		t.Fatalf("handoff = %+v, want g7", v.Handoff)
	}
	if v.Invited {
		t.Fatal("invited still set after the game started")
	}
	if h.ch.disconnectCount() != 1 {
		t.Fatalf("disconnects = %d, want 1", h.ch.disconnectCount())
	}

	h.clock.Advance(DefaultGraceDelay)
	got := h.game.handoffs()
	want := models.Handoff{SessionID: "g7", Source: models.SourceInvitation, Opponent: "alice", Mode: models.ModeBonus}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("entered = %+v, want [%+v]", got, want)
	}
}

func TestOfflineInviteeIsCanceled(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.selectMode(models.ModeClassic)
	h.invite("alice")

	h.api.setRoster(offline(1, "alice"), online(2, "bob"))
	h.refresh()

	v := h.view()
	if v.Invited {
		t.Fatal("invitation to an offline user still outstanding")
	}
	for _, u := range v.Users {
		if u.Username == "alice" {
			t.Fatal("offline alice still visible")
		}
	}
	h.api.waitCall(t, "cancel alice classic")
}

func TestIncomingInvitationFlag(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))

	h.deliver(channel.EventInvitationReceived, `{"by":{"username":"bob"},"gameType":"bonus"}`)
	bob := h.user("bob")
	if !bob.InvitedMe || bob.InvitedMeMode != models.ModeBonus {
		t.Fatalf("bob = %+v, want incoming bonus invitation", bob)
	}

	h.deliver(channel.EventInvitationCanceled, `{"username":"bob"}`)
	bob = h.user("bob")
	if bob.InvitedMe || bob.InvitationState != models.InvitationNone {
		t.Fatalf("bob = %+v, want incoming flag cleared and state untouched", bob)
	}

	if err := h.lobby.AcceptIncoming(context.Background(), "bob"); !errors.Is(err, ErrNoIncomingInvitation) {
		t.Fatalf("accept = %v, want ErrNoIncomingInvitation", err)
	}
	if err := h.lobby.AcceptIncoming(context.Background(), "carol"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("accept carol = %v, want ErrUnknownUser", err)
	}
}

func TestAcceptIncomingEntersGame(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(1, "alice"), online(2, "bob"))
	h.api.mu.Lock()
	h.api.gameID = "g9"
	h.api.mu.Unlock()

	h.deliver(channel.EventInvitationReceived, `{"by":{"username":"bob"},"gameType":"bonus"}`)
	if err := h.lobby.AcceptIncoming(context.Background(), "bob"); err != nil {
		t.Fatalf("AcceptIncoming: %v", err)
	}

	want := models.Handoff{SessionID: "g9", Source: models.SourceIncoming, Opponent: "bob", Mode: models.ModeBonus}
	if v := h.view(); v.Handoff == nil || *v.Handoff != want {
		t.Fatalf("handoff = %+v, want %+v", v.Handoff, want)
	}
	h.clock.Advance(DefaultGraceDelay)
	if got := h.game.handoffs(); len(got) != 1 || got[0] != want {
		t.Fatalf("entered = %+v", got)
	}
}

func TestRejectIncoming(t *testing.T) {
	h := newHarness(t, EntryParams{}, online(2, "bob"))
	h.deliver(channel.EventInvitationReceived, `{"by":{"username":"bob"},"gameType":"classic"}`)

	h.api.fail("reject bob", errBoom)
	if err := h.lobby.RejectIncoming(context.Background(), "bob"); !errors.Is(err, errBoom) {
		t.Fatalf("reject = %v, want %v", err, errBoom)
	}
	if !h.user("bob").InvitedMe {
		t.Fatal("incoming invitation dropped although the request failed")
	}

	h.api.fail("reject bob", nil)
	if err := h.lobby.RejectIncoming(context.Background(), "bob"); err != nil {
		t.Fatalf("RejectIncoming: %v", err)
	}
	if h.user("bob").InvitedMe {
		t.Fatal("incoming invitation still shown")
	}
}
