package database

import (
	"os"
	"testing"

	"playmatch/lobby/internal/models"
)

// Needs a disposable Postgres database, e.g.
// TEST_DATABASE_URL="host=localhost user=postgres dbname=lobby_test sslmode=disable".
func TestJournalRecordsHandoffs(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := db.Exec("DELETE FROM handoff_records").Error; err != nil {
		t.Fatalf("reset: %v", err)
	}

	j := NewJournal(db)
	for _, h := range []models.Handoff{
		{SessionID: "g1", Source: models.SourceQueue, Mode: models.ModeClassic},
		{SessionID: "g2", Source: models.SourceInvitation, Opponent: "alice", Mode: models.ModeBonus},
	} {
		if err := j.Record(h); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	var recs []models.HandoffRecord
	if err := j.Query(models.SourceInvitation).Find(&recs).Error; err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(recs) != 1 || recs[0].SessionID != "g2" || recs[0].Opponent != "alice" {
		t.Fatalf("records = %+v", recs)
	}
}
