package lobby

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NoticeKind classifies user-facing feedback.
type NoticeKind string

const (
	NoticeAuthInvalid      NoticeKind = "auth_invalid"
	NoticeAlreadyConnected NoticeKind = "already_connected"
	NoticeRequestFailed    NoticeKind = "request_failed"
)

// Notice is feedback for the user. Blocking notices stay until the condition
// behind them is resolved; the others can be dismissed.
type Notice struct {
	ID        string     `json:"id"`
	Kind      NoticeKind `json:"kind"`
	Blocking  bool       `json:"blocking"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

// DismissNotice removes a non-blocking notice.
func (l *Lobby) DismissNotice(ctx context.Context, id string) error {
	return l.exec(ctx, func(done func(error)) {
		for i, n := range l.st.notices {
			if n.ID != id {
				continue
			}
			if n.Blocking {
				done(ErrNoticeBlocking)
				return
			}
			l.st.notices = append(l.st.notices[:i], l.st.notices[i+1:]...)
			done(nil)
			return
		}
		done(ErrNoticeNotFound)
	})
}

// maxNotices bounds the notices kept when nobody dismisses them. The oldest
// dismissible notice goes first.
const maxNotices = 8

func (l *Lobby) notify(kind NoticeKind, message string) {
	blocking := kind == NoticeAuthInvalid || kind == NoticeAlreadyConnected
	for i, n := range l.st.notices {
		switch {
		case blocking && n.Kind == kind:
			// One blocking notice per kind is enough.
			return
		case !blocking && n.Kind == kind && n.Message == message:
			l.st.notices[i].CreatedAt = l.clock.Now()
			return
		}
	}
	if len(l.st.notices) >= maxNotices {
		for i, n := range l.st.notices {
			if !n.Blocking {
				l.st.notices = append(l.st.notices[:i], l.st.notices[i+1:]...)
				break
			}
		}
	}
	l.st.notices = append(l.st.notices, Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Blocking:  blocking,
		Message:   message,
		CreatedAt: l.clock.Now(),
	})
}

func (l *Lobby) clearNotices(kinds ...NoticeKind) {
	kept := l.st.notices[:0]
	for _, n := range l.st.notices {
		drop := false
		for _, k := range kinds {
			if n.Kind == k {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, n)
		}
	}
	l.st.notices = kept
}
