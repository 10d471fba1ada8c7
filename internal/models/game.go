package models

import "strings"

// GameMode is the kind of game a player wants to play.
type GameMode string

const (
	ModeUnset   GameMode = ""
	ModeClassic GameMode = "classic"
	ModeBonus   GameMode = "bonus"
)

// ParseGameMode returns the mode named by s, or false when s names no playable mode.
func ParseGameMode(s string) (GameMode, bool) {
	switch GameMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeClassic:
		return ModeClassic, true
	case ModeBonus:
		return ModeBonus, true
	default:
		return ModeUnset, false
	}
}

// Valid reports whether m is a playable mode.
func (m GameMode) Valid() bool {
	return m == ModeClassic || m == ModeBonus
}
