package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/models"
)

// Reconnect recreates the channel after the player re-authenticated or
// closed the other session. Blocking connection notices are cleared; if the
// problem persists the next connect_error raises them again.
func (l *Lobby) Reconnect(ctx context.Context) error {
	return l.exec(ctx, func(done func(error)) {
		if l.st.handoff != nil {
			done(ErrHandoffStarted)
			return
		}
		l.clearNotices(NoticeAuthInvalid, NoticeAlreadyConnected)
		l.connect()
		done(nil)
	})
}

func (l *Lobby) connect() {
	if l.st.handoff != nil {
		return
	}
	l.io(func(ctx context.Context) error {
		return l.channel.Connect(ctx)
	}, func(err error) {
		var cerr *channel.ConnectError
		if err != nil && !errors.As(err, &cerr) {
			// Classified errors arrive as connect_error events; the rest is only logged.
			log.Printf("[LOBBY] Channel connect failed: %v", err)
		}
	})
}

func (l *Lobby) handleEvent(evt channel.Event) {
	switch evt.Type {
	case channel.EventConnect:
		l.onConnected()
	case channel.EventDisconnect:
		var body struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(evt.Payload, &body)
		log.Printf("[LOBBY] Channel disconnected: %s", body.Reason)
	case channel.EventConnectError:
		l.onConnectError(evt.Err)
	case channel.EventGameFound:
		l.onGameFound(evt)
	case channel.EventInvitationAccepted:
		l.onInvitationAccepted(evt)
	case channel.EventInvitationRejected:
		l.onInvitationRejected(evt)
	case channel.EventInvitationCanceled:
		l.onInvitationCanceled(evt)
	case channel.EventInvitationReceived:
		l.onInvitationReceived(evt)
	default:
		log.Printf("[LOBBY] Ignoring channel event %q", evt.Type)
	}
}

func (l *Lobby) onConnected() {
	l.clearNotices(NoticeAlreadyConnected)
	if l.st.queue == models.QueueConnecting {
		// A failed ENTER_QUEUE is reported through its notice.
		_ = l.enterQueue()
	}
}

func (l *Lobby) onConnectError(cerr *channel.ConnectError) {
	if cerr == nil {
		log.Println("[LOBBY] connect_error without details")
		return
	}
	switch cerr.Kind {
	case channel.ErrorAuthInvalid:
		l.abortQueueJoin("authentication required")
		l.notify(NoticeAuthInvalid, "Your session has expired, please log in again.")
		l.login.TriggerLogin()
	case channel.ErrorAlreadyConnected:
		l.abortQueueJoin("already connected elsewhere")
		l.notify(NoticeAlreadyConnected, "Make sure that you are not already connected or in game on another page and try again.")
	default:
		log.Printf("[LOBBY] Unclassified channel error: %s", cerr.Message)
	}
}
