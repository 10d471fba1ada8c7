package models

import "gorm.io/gorm"

// HandoffSource tells which path produced a game session.
type HandoffSource string

const (
	SourceQueue      HandoffSource = "queue"
	SourceInvitation HandoffSource = "invitation"
	SourceIncoming   HandoffSource = "incoming"
)

// Handoff is the value passed to the game session when the lobby is left for a game.
type Handoff struct {
	SessionID string        `json:"session_id"`
	Source    HandoffSource `json:"source"`
	Opponent  string        `json:"opponent,omitempty"`
	Mode      GameMode      `json:"mode,omitempty"`
}

// HandoffRecord is a journaled game-session transition.
type HandoffRecord struct {
	gorm.Model
	SessionID string        `gorm:"size:255;not null;index"`
	Source    HandoffSource `gorm:"size:50;not null"`
	Opponent  string        `gorm:"size:255"`
	Mode      GameMode      `gorm:"size:50"`
}
