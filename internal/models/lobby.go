package models

// QueueState is the local player's anonymous matchmaking queue membership.
type QueueState string

const (
	QueueDisconnected       QueueState = "DISCONNECTED"
	QueueConnecting         QueueState = "CONNECTING"
	QueueWaitingForOpponent QueueState = "WAITING_FOR_OPPONENT"
)
