package lobby

import (
	"log"

	"playmatch/lobby/internal/models"
)

// startHandoff is the single exit into a game session. The channel is
// released at once; the game session is entered after the grace delay so
// the last notification can render. The delay cannot be canceled.
func (l *Lobby) startHandoff(h models.Handoff) {
	if l.st.handoff != nil {
		return
	}
	l.st.handoff = &h
	l.st.queue = models.QueueDisconnected
	l.st.deepLink.prompting = false

	if l.stopPoller != nil {
		l.stopPoller()
	}
	l.channel.Disconnect()

	log.Printf("[HANDOFF] Entering game %s (%s) in %s", h.SessionID, h.Source, l.grace)
	l.clock.AfterFunc(l.grace, func() {
		if l.game != nil {
			l.game.Enter(h)
		}
	})
}
