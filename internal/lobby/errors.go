package lobby

import "errors"

var (
	ErrModeUnset            = errors.New("no game mode selected")
	ErrModeLocked           = errors.New("game mode cannot be changed now")
	ErrInvitationPending    = errors.New("an invitation is already outstanding")
	ErrInQueue              = errors.New("already in the matchmaking queue")
	ErrRequestInFlight      = errors.New("a request is already in flight")
	ErrNotInvited           = errors.New("user has no outstanding invitation from you")
	ErrUnknownUser          = errors.New("user is not in the lobby")
	ErrNoIncomingInvitation = errors.New("user has not invited you")
	ErrNoDeepLink           = errors.New("no invitation link is waiting for confirmation")
	ErrNoticeNotFound       = errors.New("notice not found")
	ErrNoticeBlocking       = errors.New("notice cannot be dismissed")
	ErrHandoffStarted       = errors.New("lobby is handing off to a game session")
	ErrClosed               = errors.New("lobby closed")
)
