package lobby

import (
	"context"
	"fmt"
	"log"

	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/models"
	"playmatch/lobby/internal/roster"
)

// SendInvitation challenges username to a game. An unset mode falls back to
// the selected one. The user shows INVITED while the request is in flight and
// goes back to NONE if the request fails.
func (l *Lobby) SendInvitation(ctx context.Context, username string, mode models.GameMode) error {
	return l.exec(ctx, func(done func(error)) {
		idx := roster.Find(l.st.users, username)
		if idx < 0 {
			done(ErrUnknownUser)
			return
		}
		l.sendInvitation(l.st.users[idx], mode, done)
	})
}

// CancelInvitation withdraws the outstanding invitation to username.
func (l *Lobby) CancelInvitation(ctx context.Context, username string) error {
	return l.exec(ctx, func(done func(error)) {
		l.cancelInvitation(username, done)
	})
}

// AcceptIncoming accepts the invitation username sent to the local player.
func (l *Lobby) AcceptIncoming(ctx context.Context, username string) error {
	return l.exec(ctx, func(done func(error)) {
		l.acceptIncoming(username, done)
	})
}

// RejectIncoming declines the invitation username sent to the local player.
func (l *Lobby) RejectIncoming(ctx context.Context, username string) error {
	return l.exec(ctx, func(done func(error)) {
		l.rejectIncoming(username, done)
	})
}

func (l *Lobby) canInvite(mode models.GameMode) error {
	switch {
	case l.st.handoff != nil:
		return ErrHandoffStarted
	case !mode.Valid():
		return ErrModeUnset
	case l.st.queue != models.QueueDisconnected:
		return ErrInQueue
	case l.st.outbound != nil || l.invitedIndex() >= 0:
		return ErrInvitationPending
	case l.st.inflight != "":
		return ErrRequestInFlight
	}
	return nil
}

func (l *Lobby) sendInvitation(user models.InvitableUser, mode models.GameMode, done func(error)) {
	if mode == models.ModeUnset {
		mode = l.st.mode
	}
	if err := l.canInvite(mode); err != nil {
		done(err)
		return
	}

	l.clearRejected()
	idx := roster.Find(l.st.users, user.Username)
	if idx < 0 {
		l.st.users = append(l.st.users, user)
		idx = len(l.st.users) - 1
	}
	l.st.users[idx].InvitationState = models.InvitationInvited
	username := user.Username
	l.st.outbound = &outbound{username: username, mode: mode}
	l.st.inflight = username

	l.io(func(ctx context.Context) error {
		return l.api.SendInvitation(ctx, username, mode)
	}, func(err error) {
		l.st.inflight = ""
		if err != nil {
			if l.st.outbound != nil && l.st.outbound.username == username {
				l.st.outbound = nil
			}
			l.setInvitationState(username, models.InvitationInvited, models.InvitationNone)
			l.notify(NoticeRequestFailed, fmt.Sprintf("Could not invite %s.", username))
			log.Printf("[LOBBY] Invitation to %s failed: %v", username, err)
			done(err)
			return
		}
		log.Printf("[LOBBY] Invited %s to a %s game", username, mode)
		l.resolveVanished()
		done(nil)
	})
}

func (l *Lobby) cancelInvitation(username string, done func(error)) {
	switch {
	case l.st.handoff != nil:
		done(ErrHandoffStarted)
		return
	case l.st.inflight != "":
		done(ErrRequestInFlight)
		return
	case l.st.outbound == nil || l.st.outbound.username != username:
		done(ErrNotInvited)
		return
	}

	prev := *l.st.outbound
	l.st.outbound = nil
	l.setInvitationState(username, models.InvitationInvited, models.InvitationNone)
	l.st.inflight = username
	l.st.canceling = &prev
	l.st.canceledBy = false

	l.io(func(ctx context.Context) error {
		return l.api.CancelInvitation(ctx, prev.username, prev.mode)
	}, func(err error) {
		l.st.inflight = ""
		settled := l.st.canceledBy
		l.st.canceling = nil
		l.st.canceledBy = false
		if err != nil && settled {
			log.Printf("[LOBBY] Canceling invitation to %s failed after %s rejected it: %v", username, username, err)
			done(nil)
			return
		}
		if err != nil {
			if l.st.handoff == nil && l.st.outbound == nil && roster.Find(l.st.users, username) >= 0 {
				l.st.outbound = &prev
				l.setInvitationState(username, models.InvitationNone, models.InvitationInvited)
			}
			l.notify(NoticeRequestFailed, fmt.Sprintf("Could not cancel the invitation to %s.", username))
			log.Printf("[LOBBY] Canceling invitation to %s failed: %v", username, err)
			done(err)
			return
		}
		log.Printf("[LOBBY] Canceled invitation to %s", username)
		done(nil)
	})
}

// resolveVanished cancels the outstanding invitation once its target has
// left the online set. The cancel is best effort: the user is gone either way.
func (l *Lobby) resolveVanished() {
	if l.st.outbound == nil || l.st.inflight != "" || l.st.handoff != nil {
		return
	}
	if roster.Find(l.st.users, l.st.outbound.username) >= 0 {
		return
	}

	gone := *l.st.outbound
	l.st.outbound = nil
	l.st.inflight = gone.username
	log.Printf("[LOBBY] %s went offline, canceling the invitation", gone.username)

	l.io(func(ctx context.Context) error {
		return l.api.CancelInvitation(ctx, gone.username, gone.mode)
	}, func(err error) {
		l.st.inflight = ""
		if err != nil {
			l.notify(NoticeRequestFailed, fmt.Sprintf("Could not cancel the invitation to %s.", gone.username))
			log.Printf("[LOBBY] Canceling invitation to offline %s failed: %v", gone.username, err)
		}
	})
}

func (l *Lobby) acceptIncoming(username string, done func(error)) {
	idx := roster.Find(l.st.users, username)
	switch {
	case l.st.handoff != nil:
		done(ErrHandoffStarted)
		return
	case idx < 0:
		done(ErrUnknownUser)
		return
	case !l.st.users[idx].InvitedMe:
		done(ErrNoIncomingInvitation)
		return
	case l.st.queue != models.QueueDisconnected:
		done(ErrInQueue)
		return
	case l.st.outbound != nil:
		done(ErrInvitationPending)
		return
	case l.st.inflight != "":
		done(ErrRequestInFlight)
		return
	}

	mode := l.st.users[idx].InvitedMeMode
	l.st.inflight = username
	var sessionID string

	l.io(func(ctx context.Context) error {
		id, err := l.api.AcceptInvitation(ctx, username)
		sessionID = id
		return err
	}, func(err error) {
		l.st.inflight = ""
		if err != nil {
			l.notify(NoticeRequestFailed, fmt.Sprintf("Could not accept the invitation from %s.", username))
			log.Printf("[LOBBY] Accepting invitation from %s failed: %v", username, err)
			done(err)
			return
		}
		l.setInvitedMe(username, false, models.ModeUnset)
		if l.st.handoff != nil {
			done(ErrHandoffStarted)
			return
		}
		l.startHandoff(models.Handoff{
			SessionID: sessionID,
			Source:    models.SourceIncoming,
			Opponent:  username,
			Mode:      mode,
		})
		done(nil)
	})
}

func (l *Lobby) rejectIncoming(username string, done func(error)) {
	idx := roster.Find(l.st.users, username)
	switch {
	case l.st.handoff != nil:
		done(ErrHandoffStarted)
		return
	case idx < 0:
		done(ErrUnknownUser)
		return
	case !l.st.users[idx].InvitedMe:
		done(ErrNoIncomingInvitation)
		return
	case l.st.inflight != "":
		done(ErrRequestInFlight)
		return
	}

	l.st.inflight = username
	l.io(func(ctx context.Context) error {
		return l.api.RejectInvitation(ctx, username)
	}, func(err error) {
		l.st.inflight = ""
		if err != nil {
			l.notify(NoticeRequestFailed, fmt.Sprintf("Could not decline the invitation from %s.", username))
			log.Printf("[LOBBY] Rejecting invitation from %s failed: %v", username, err)
			done(err)
			return
		}
		l.setInvitedMe(username, false, models.ModeUnset)
		done(nil)
	})
}

type userRef struct {
	Username string `json:"username"`
}

type invitationEvent struct {
	By       userRef         `json:"by"`
	Username string          `json:"username"`
	GameType models.GameMode `json:"gameType"`
	GameID   string          `json:"gameId"`
	ID       string          `json:"id"`
}

// counterpart is the username an invitation event is about.
func (e invitationEvent) counterpart() string {
	if e.By.Username != "" {
		return e.By.Username
	}
	return e.Username
}

func (l *Lobby) onInvitationRejected(evt channel.Event) {
	var body invitationEvent
	if err := evt.Decode(&body); err != nil {
		log.Printf("[LOBBY] Undecodable INVITATION_REJECTED: %v", err)
		return
	}
	by := body.counterpart()
	if l.st.canceling != nil && l.st.canceling.username == by {
		l.st.canceledBy = true
		l.setInvitationState(by, models.InvitationNone, models.InvitationRejected)
		log.Printf("[LOBBY] %s rejected the invitation while it was being canceled", by)
		return
	}
	if l.st.outbound == nil || l.st.outbound.username != by {
		log.Printf("[LOBBY] Ignoring rejection by %s: no outstanding invitation to them", by)
		return
	}
	l.st.outbound = nil
	l.setInvitationState(by, models.InvitationInvited, models.InvitationRejected)
	log.Printf("[LOBBY] %s rejected the invitation", by)
}

func (l *Lobby) onInvitationCanceled(evt channel.Event) {
	var body invitationEvent
	if err := evt.Decode(&body); err != nil {
		log.Printf("[LOBBY] Undecodable INVITATION_CANCELED: %v", err)
		return
	}
	by := body.counterpart()
	if !l.setInvitedMe(by, false, models.ModeUnset) {
		log.Printf("[LOBBY] Ignoring cancellation by unknown user %s", by)
	}
}

func (l *Lobby) onInvitationReceived(evt channel.Event) {
	var body invitationEvent
	if err := evt.Decode(&body); err != nil {
		log.Printf("[LOBBY] Undecodable INVITATION_RECEIVED: %v", err)
		return
	}
	by := body.counterpart()
	mode, _ := models.ParseGameMode(string(body.GameType))
	if !l.setInvitedMe(by, true, mode) {
		log.Printf("[LOBBY] Ignoring invitation from unknown user %s", by)
	}
}

func (l *Lobby) onInvitationAccepted(evt channel.Event) {
	var body invitationEvent
	if err := evt.Decode(&body); err != nil {
		log.Printf("[LOBBY] Undecodable INVITATION_ACCEPTED: %v", err)
		return
	}
	sessionID := body.GameID
	if sessionID == "" {
		sessionID = body.ID
	}
	if sessionID == "" {
		log.Printf("[LOBBY] INVITATION_ACCEPTED without a game id: %s", evt.Payload)
		return
	}
	if l.st.handoff != nil {
		log.Printf("[LOBBY] Ignoring INVITATION_ACCEPTED %s: already entering %s", sessionID, l.st.handoff.SessionID)
		return
	}

	h := models.Handoff{SessionID: sessionID, Source: models.SourceInvitation}
	if l.st.outbound != nil {
		h.Opponent = l.st.outbound.username
		h.Mode = l.st.outbound.mode
		l.st.outbound = nil
		l.setInvitationState(h.Opponent, models.InvitationInvited, models.InvitationNone)
	}
	l.startHandoff(h)
}

func (l *Lobby) invitedIndex() int {
	for i, u := range l.st.users {
		if u.InvitationState == models.InvitationInvited {
			return i
		}
	}
	return -1
}

func (l *Lobby) clearRejected() {
	for i := range l.st.users {
		if l.st.users[i].InvitationState == models.InvitationRejected {
			l.st.users[i].InvitationState = models.InvitationNone
		}
	}
}

// setInvitationState moves username from one state to another and reports
// whether it did.
func (l *Lobby) setInvitationState(username string, from, to models.InvitationState) bool {
	idx := roster.Find(l.st.users, username)
	if idx < 0 || l.st.users[idx].InvitationState != from {
		return false
	}
	l.st.users[idx].InvitationState = to
	return true
}

func (l *Lobby) setInvitedMe(username string, invited bool, mode models.GameMode) bool {
	idx := roster.Find(l.st.users, username)
	if idx < 0 {
		return false
	}
	l.st.users[idx].InvitedMe = invited
	l.st.users[idx].InvitedMeMode = mode
	return true
}
