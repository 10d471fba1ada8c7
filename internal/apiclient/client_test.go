package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"playmatch/lobby/internal/auth"
	"playmatch/lobby/internal/models"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", auth.NewCredentials("tok"))
}

func TestFetchRoster(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"merged":[{"id":1,"username":"alice","imageUrl":"/a.png","isFriend":true,"status":["online","friend"]}]}`))
	})
	c := newTestClient(t, mux)

	entries, err := c.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("FetchRoster: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %+v", entries)
	}
	e := entries[0]
	if e.ID != 1 || e.Username != "alice" || e.ImageURL != "/a.png" || !e.IsFriend || len(e.Status) != 2 || e.Status[1] != models.TagFriend {
		t.Fatalf("entry = %+v", e)
	}
}

func TestFetchProfileDefaultsUsername(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/profile/{username}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"imageUrl": "/" + r.PathValue("username"), "isFriend": true})
	})
	c := newTestClient(t, mux)

	p, err := c.FetchProfile(context.Background(), "bob")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if p.Username != "bob" || p.ImageURL != "/bob" || !p.IsFriend {
		t.Fatalf("profile = %+v", p)
	}
}

func TestInvitationRequests(t *testing.T) {
	type call struct {
		path string
		body invitationRequest
	}
	calls := make(chan call, 4)
	record := func(w http.ResponseWriter, r *http.Request) {
		var body invitationRequest
		json.NewDecoder(r.Body).Decode(&body)
		calls <- call{r.URL.Path, body}
		if r.URL.Path == "/matchmaking/invitations/accept" {
			w.Write([]byte(`{"gameId":"g7"}`))
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /matchmaking/invitations/", record)
	c := newTestClient(t, mux)
	ctx := context.Background()

	if err := c.SendInvitation(ctx, "alice", models.ModeClassic); err != nil {
		t.Fatalf("SendInvitation: %v", err)
	}
	if got := <-calls; got.path != "/matchmaking/invitations/send" || got.body.Username != "alice" || got.body.GameType != models.ModeClassic {
		t.Fatalf("send call = %+v", got)
	}

	if err := c.CancelInvitation(ctx, "alice", models.ModeClassic); err != nil {
		t.Fatalf("CancelInvitation: %v", err)
	}
	if got := <-calls; got.path != "/matchmaking/invitations/cancel" {
		t.Fatalf("cancel call = %+v", got)
	}

	id, err := c.AcceptInvitation(ctx, "bob")
	if err != nil || id != "g7" {
		t.Fatalf("AcceptInvitation = %q, %v", id, err)
	}
	<-calls

	if err := c.RejectInvitation(ctx, "bob"); err != nil {
		t.Fatalf("RejectInvitation: %v", err)
	}
	if got := <-calls; got.path != "/matchmaking/invitations/reject" || got.body.Username != "bob" {
		t.Fatalf("reject call = %+v", got)
	}
}

func TestStatusErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /matchmaking/invitations/send", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["user is not online"]}`))
	})
	mux.HandleFunc("GET /users/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	})
	c := newTestClient(t, mux)

	err := c.SendInvitation(context.Background(), "alice", models.ModeBonus)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest || se.Message != "user is not online" {
		t.Fatalf("err = %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("400 reported as unauthorized")
	}

	_, err = c.FetchRoster(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
