package lobby

import (
	"context"
	"log"

	"playmatch/lobby/internal/models"
	"playmatch/lobby/internal/roster"
)

// startPoll fetches a roster snapshot. A call made while a fetch is running
// is served by another fetch right after it, so done never sees a snapshot
// taken before it was queued.
func (l *Lobby) startPoll(done func(error)) {
	if done != nil {
		l.st.pollWaiters = append(l.st.pollWaiters, done)
	}
	if l.st.handoff != nil {
		l.flushPollWaiters(ErrHandoffStarted)
		return
	}
	if l.st.polling {
		l.st.repoll = l.st.repoll || done != nil
		return
	}
	l.st.polling = true
	waiters := l.st.pollWaiters
	l.st.pollWaiters = nil

	var snapshot []models.RosterEntry
	l.io(func(ctx context.Context) error {
		s, err := l.api.FetchRoster(ctx)
		snapshot = s
		return err
	}, func(err error) {
		l.st.polling = false
		switch {
		case err != nil:
			log.Printf("[ROSTER] Refresh failed: %v", err)
		case l.st.handoff != nil:
			// Already on the way out.
		default:
			l.applyRoster(snapshot)
		}

		for _, w := range waiters {
			w(err)
		}
		if l.st.repoll {
			l.st.repoll = false
			l.startPoll(nil)
		}
	})
}

func (l *Lobby) flushPollWaiters(err error) {
	waiters := l.st.pollWaiters
	l.st.pollWaiters = nil
	for _, w := range waiters {
		w(err)
	}
}

func (l *Lobby) applyRoster(snapshot []models.RosterEntry) {
	l.st.users = roster.Reconcile(l.st.users, snapshot)
	if !l.st.rosterLoaded {
		log.Printf("[ROSTER] Loaded %d online users", len(l.st.users))
	}
	l.st.rosterLoaded = true
	l.resolveVanished()
	l.evaluateDeepLink()
}
