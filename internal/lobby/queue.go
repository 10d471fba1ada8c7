package lobby

import (
	"context"
	"errors"
	"log"

	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/models"
)

// SelectMode chooses the game mode used for the queue and for invitations.
func (l *Lobby) SelectMode(ctx context.Context, mode models.GameMode) error {
	return l.exec(ctx, func(done func(error)) {
		done(l.selectMode(mode))
	})
}

func (l *Lobby) selectMode(mode models.GameMode) error {
	switch {
	case l.st.handoff != nil:
		return ErrHandoffStarted
	case !mode.Valid():
		return ErrModeUnset
	case l.st.modeLocked:
		return ErrModeLocked
	case l.st.queue != models.QueueDisconnected:
		return ErrInQueue
	case l.st.outbound != nil:
		return ErrInvitationPending
	}
	l.st.mode = mode
	return nil
}

// ToggleQueue joins the matchmaking queue, or leaves it when already queued.
// Leaving is optimistic: the local state is back to DISCONNECTED before the
// server acknowledges anything.
func (l *Lobby) ToggleQueue(ctx context.Context) error {
	return l.exec(ctx, func(done func(error)) {
		if l.st.handoff != nil {
			done(ErrHandoffStarted)
			return
		}
		switch l.st.queue {
		case models.QueueDisconnected:
			done(l.joinQueue())
		case models.QueueConnecting:
			l.st.queue = models.QueueDisconnected
			l.st.queueMode = models.ModeUnset
			done(nil)
		default:
			done(l.leaveQueue())
		}
	})
}

func (l *Lobby) joinQueue() error {
	if !l.st.mode.Valid() {
		return ErrModeUnset
	}
	if l.st.outbound != nil || l.invitedIndex() >= 0 {
		return ErrInvitationPending
	}
	if l.st.inflight != "" {
		return ErrRequestInFlight
	}
	l.clearRejected()
	l.st.queueMode = l.st.mode

	switch l.channel.Status().State {
	case channel.StateConnected:
		return l.enterQueue()
	case channel.StateConnecting:
		l.st.queue = models.QueueConnecting
		return nil
	default:
		l.st.queueMode = models.ModeUnset
		l.notify(NoticeRequestFailed, "Could not join the queue: not connected to the server.")
		return channel.ErrNotConnected
	}
}

// enterQueue emits ENTER_QUEUE; the queue state only moves forward if the emit succeeded.
func (l *Lobby) enterQueue() error {
	if err := l.channel.Emit(channel.EventEnterQueue, l.st.queueMode); err != nil {
		l.st.queue = models.QueueDisconnected
		l.st.queueMode = models.ModeUnset
		l.notify(NoticeRequestFailed, "Could not join the queue.")
		log.Printf("[LOBBY] ENTER_QUEUE failed: %v", err)
		return err
	}
	l.st.queue = models.QueueWaitingForOpponent
	log.Printf("[LOBBY] Waiting for an opponent (%s)", l.st.queueMode)
	return nil
}

func (l *Lobby) leaveQueue() error {
	l.st.queue = models.QueueDisconnected
	err := l.channel.Emit(channel.EventLeaveQueue, nil)
	switch {
	case err == nil, errors.Is(err, channel.ErrNotConnected):
		// Without a channel the server has already dropped the queue entry.
		l.st.queueMode = models.ModeUnset
		return nil
	default:
		l.st.queue = models.QueueWaitingForOpponent
		l.notify(NoticeRequestFailed, "Could not leave the queue.")
		log.Printf("[LOBBY] LEAVE_QUEUE failed: %v", err)
		return err
	}
}

func (l *Lobby) abortQueueJoin(reason string) {
	if l.st.queue != models.QueueConnecting {
		return
	}
	l.st.queue = models.QueueDisconnected
	l.st.queueMode = models.ModeUnset
	log.Printf("[LOBBY] Queue join aborted: %s", reason)
}

func (l *Lobby) onGameFound(evt channel.Event) {
	var body struct {
		ID string `json:"id"`
	}
	if err := evt.Decode(&body); err != nil || body.ID == "" {
		log.Printf("[LOBBY] GAME_FOUND without a game id: %s", evt.Payload)
		return
	}
	if l.st.queue != models.QueueWaitingForOpponent || l.st.handoff != nil {
		log.Printf("[LOBBY] Ignoring GAME_FOUND %s while %s", body.ID, l.st.queue)
		return
	}
	l.startHandoff(models.Handoff{
		SessionID: body.ID,
		Source:    models.SourceQueue,
		Mode:      l.st.queueMode,
	})
}
