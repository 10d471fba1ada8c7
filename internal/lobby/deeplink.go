package lobby

import (
	"context"
	"fmt"
	"log"

	"playmatch/lobby/internal/models"
	"playmatch/lobby/internal/roster"
)

// deepLink is the invitation requested by the lobby entry parameters.
// Once consumed it never fires again for this lobby.
type deepLink struct {
	target    string
	prompting bool
	consumed  bool
}

// DeepLinkView describes the invitation link the lobby was entered with.
type DeepLinkView struct {
	Target    string `json:"target,omitempty"`
	Prompting bool   `json:"prompting"`
	Consumed  bool   `json:"consumed"`
}

// ConfirmDeepLink picks the mode for the invitation link and sends it.
// An invalid mode keeps the prompt open.
func (l *Lobby) ConfirmDeepLink(ctx context.Context, mode models.GameMode) error {
	return l.exec(ctx, func(done func(error)) {
		if !l.st.deepLink.prompting {
			done(ErrNoDeepLink)
			return
		}
		l.confirmDeepLink(mode, done)
	})
}

// DismissDeepLink closes the prompt without inviting anyone.
func (l *Lobby) DismissDeepLink(ctx context.Context) error {
	return l.exec(ctx, func(done func(error)) {
		if !l.st.deepLink.prompting {
			done(ErrNoDeepLink)
			return
		}
		l.st.deepLink.prompting = false
		l.st.deepLink.consumed = true
		log.Printf("[LOBBY] Invitation link for %s dismissed", l.st.deepLink.target)
		done(nil)
	})
}

// evaluateDeepLink runs after every merged roster snapshot.
func (l *Lobby) evaluateDeepLink() {
	dl := &l.st.deepLink
	if dl.target == "" || dl.consumed || dl.prompting || l.st.handoff != nil || len(l.st.users) == 0 {
		return
	}
	if l.st.modeLocked {
		// The link already names the mode.
		l.confirmDeepLink(l.st.mode, func(err error) {
			if err != nil {
				log.Printf("[LOBBY] Invitation link for %s failed: %v", dl.target, err)
			}
		})
		return
	}
	dl.prompting = true
	log.Printf("[LOBBY] Invitation link for %s waiting for a game mode", dl.target)
}

func (l *Lobby) confirmDeepLink(mode models.GameMode, done func(error)) {
	if mode == models.ModeUnset {
		mode = l.st.mode
	}
	if !mode.Valid() {
		done(ErrModeUnset)
		return
	}

	dl := &l.st.deepLink
	dl.prompting = false
	dl.consumed = true
	target := dl.target

	if err := l.canInvite(mode); err != nil {
		l.notify(NoticeRequestFailed, fmt.Sprintf("Could not invite %s.", target))
		done(err)
		return
	}
	if !l.st.modeLocked {
		l.st.mode = mode
	}

	l.st.inflight = target
	var profile models.Profile
	l.io(func(ctx context.Context) error {
		p, err := l.api.FetchProfile(ctx, target)
		profile = p
		return err
	}, func(err error) {
		l.st.inflight = ""
		if err != nil {
			l.notify(NoticeRequestFailed, fmt.Sprintf("Could not find %s.", target))
			log.Printf("[LOBBY] Profile lookup for %s failed: %v", target, err)
			done(err)
			return
		}
		if profile.Username == "" {
			profile.Username = target
		}

		user := models.UserFromProfile(profile)
		if idx := roster.Find(l.st.users, profile.Username); idx >= 0 {
			l.st.users[idx].ImageURL = profile.ImageURL
			l.st.users[idx].IsFriend = profile.IsFriend
			user = l.st.users[idx]
		}
		l.sendInvitation(user, mode, done)
	})
}
