// Package roster merges periodically fetched roster snapshots into the
// locally tracked list of invitable users.
package roster

import "playmatch/lobby/internal/models"

// Reconcile merges snapshot into current and returns the new visible list.
//
// Server-authoritative fields are taken from the snapshot while the local
// invitation flags are carried over by identity. Only users listed online
// in this snapshot remain visible; a user missing from the snapshot counts
// as offline. Reconcile never changes an InvitationState and is idempotent
// for a given snapshot. current is not modified.
func Reconcile(current []models.InvitableUser, snapshot []models.RosterEntry) []models.InvitableUser {
	merged := make([]models.InvitableUser, len(current))
	copy(merged, current)
	seen := make([]bool, len(merged))

	for _, entry := range snapshot {
		incoming := models.UserFromEntry(entry)
		idx := indexOf(merged, incoming)
		if idx < 0 {
			merged = append(merged, incoming)
			seen = append(seen, true)
			continue
		}
		prev := merged[idx]
		incoming.InvitationState = prev.InvitationState
		incoming.InvitedMe = prev.InvitedMe
		incoming.InvitedMeMode = prev.InvitedMeMode
		merged[idx] = incoming
		seen[idx] = true
	}

	visible := make([]models.InvitableUser, 0, len(merged))
	for i, u := range merged {
		if seen[i] && u.Online() {
			visible = append(visible, u)
		}
	}
	return visible
}

// Find returns the index of the user called username, or -1.
func Find(users []models.InvitableUser, username string) int {
	for i, u := range users {
		if u.Username == username {
			return i
		}
	}
	return -1
}

func indexOf(users []models.InvitableUser, target models.InvitableUser) int {
	for i, u := range users {
		if u.SameUser(target) {
			return i
		}
	}
	return -1
}
