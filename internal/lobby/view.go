package lobby

import (
	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/models"
)

// View is a consistent snapshot of the lobby, taken between two handlers.
type View struct {
	Connection channel.Status `json:"connection"`

	Mode           models.GameMode `json:"mode"`
	ModeLocked     bool            `json:"mode_locked"`
	ModeSelectable bool            `json:"mode_selectable"`

	Queue        models.QueueState `json:"queue"`
	CanJoinQueue bool              `json:"can_join_queue"`

	Users           []models.InvitableUser `json:"users"`
	RosterLoaded    bool                   `json:"roster_loaded"`
	Invited         bool                   `json:"invited"`
	InvitedUser     string                 `json:"invited_user,omitempty"`
	RequestInFlight bool                   `json:"request_in_flight"`
	CanInvite       bool                   `json:"can_invite"`

	DeepLink   DeepLinkView    `json:"deep_link"`
	Notices    []Notice        `json:"notices"`
	LastResult string          `json:"last_result,omitempty"`
	Handoff    *models.Handoff `json:"handoff,omitempty"`
}

func (l *Lobby) view() View {
	st := &l.st
	v := View{
		Mode:            st.mode,
		ModeLocked:      st.modeLocked,
		Queue:           st.queue,
		RosterLoaded:    st.rosterLoaded,
		RequestInFlight: st.inflight != "",
		LastResult:      st.lastResult,
		DeepLink: DeepLinkView{
			Target:    st.deepLink.target,
			Prompting: st.deepLink.prompting,
			Consumed:  st.deepLink.consumed,
		},
	}
	if l.channel != nil {
		v.Connection = l.channel.Status()
	}

	v.Users = make([]models.InvitableUser, len(st.users))
	for i, u := range st.users {
		u.PresenceTags = append([]models.PresenceTag(nil), u.PresenceTags...)
		v.Users[i] = u
	}
	v.Notices = append([]Notice{}, st.notices...)

	if st.outbound != nil {
		v.Invited = true
		v.InvitedUser = st.outbound.username
	} else if i := l.invitedIndex(); i >= 0 {
		v.Invited = true
		v.InvitedUser = st.users[i].Username
	}
	if st.handoff != nil {
		h := *st.handoff
		v.Handoff = &h
	}

	idle := st.handoff == nil && st.queue == models.QueueDisconnected && !v.Invited && !v.RequestInFlight
	v.ModeSelectable = idle && !st.modeLocked
	v.CanInvite = idle && st.mode.Valid()
	v.CanJoinQueue = v.CanInvite
	return v
}
