package models

// PresenceTag is a server-authoritative presence or relationship fact about a user.
type PresenceTag string

const (
	TagOnline PresenceTag = "online"
	TagFriend PresenceTag = "friend"
	TagInGame PresenceTag = "inGame"
)

// InvitationState is the local player's outbound invitation state towards one user.
type InvitationState string

const (
	InvitationNone     InvitationState = "NONE"
	InvitationInvited  InvitationState = "INVITED"
	InvitationRejected InvitationState = "REJECTED"
)

// RosterEntry is one user as listed by the roster snapshot endpoint.
type RosterEntry struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	ImageURL string        `json:"imageUrl"`
	IsFriend bool          `json:"isFriend"`
	Status   []PresenceTag `json:"status"`
}

// Profile is the public profile of a single user, as returned by the profile lookup.
type Profile struct {
	Username string `json:"username"`
	ImageURL string `json:"imageUrl"`
	IsFriend bool   `json:"isFriend"`
}

// InvitableUser is one counterpart known to the local player.
// ID and Username identify the user; PresenceTags, ImageURL and IsFriend are
// replaced on every roster refresh while InvitationState and InvitedMe are local.
type InvitableUser struct {
	ID              int64           `json:"id"`
	Username        string          `json:"username"`
	ImageURL        string          `json:"image_url"`
	IsFriend        bool            `json:"is_friend"`
	PresenceTags    []PresenceTag   `json:"presence_tags"`
	InvitationState InvitationState `json:"invitation_state"`

	// InvitedMe is set while this user has an open invitation towards the local player.
	InvitedMe     bool     `json:"invited_me"`
	InvitedMeMode GameMode `json:"invited_me_mode,omitempty"`
}

// HasTag reports whether the user carries the given presence tag.
func (u InvitableUser) HasTag(tag PresenceTag) bool {
	for _, t := range u.PresenceTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Online reports whether the user is currently tagged online.
func (u InvitableUser) Online() bool {
	return u.HasTag(TagOnline)
}

// SameUser reports whether two entries describe the same counterpart.
// Entries built from a profile lookup carry no ID, so the username decides then.
func (u InvitableUser) SameUser(other InvitableUser) bool {
	if u.ID != 0 && other.ID != 0 {
		return u.ID == other.ID
	}
	return u.Username == other.Username
}

// UserFromEntry converts a roster entry into a fresh InvitableUser with no invitation state.
func UserFromEntry(e RosterEntry) InvitableUser {
	tags := make([]PresenceTag, len(e.Status))
	copy(tags, e.Status)
	return InvitableUser{
		ID:              e.ID,
		Username:        e.Username,
		ImageURL:        e.ImageURL,
		IsFriend:        e.IsFriend,
		PresenceTags:    tags,
		InvitationState: InvitationNone,
	}
}

// UserFromProfile builds an online InvitableUser out of a looked-up profile.
func UserFromProfile(p Profile) InvitableUser {
	tags := []PresenceTag{TagOnline}
	if p.IsFriend {
		tags = append(tags, TagFriend)
	}
	return InvitableUser{
		Username:        p.Username,
		ImageURL:        p.ImageURL,
		IsFriend:        p.IsFriend,
		PresenceTags:    tags,
		InvitationState: InvitationNone,
	}
}
