package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playmatch/lobby/internal/apiclient"
	"playmatch/lobby/internal/auth"
	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/config"
	"playmatch/lobby/internal/database"
	"playmatch/lobby/internal/handler"
	"playmatch/lobby/internal/hub"
	"playmatch/lobby/internal/lobby"
	"playmatch/lobby/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	// Swagger imports
	_ "playmatch/lobby/docs" // Registers the generated API docs with swag
)

// gameSession hands the player over to the game client.
type gameSession struct {
	hub     *hub.Hub
	journal *database.Journal
}

func (g gameSession) Enter(h models.Handoff) {
	if g.journal != nil {
		if err := g.journal.Record(h); err != nil {
			log.Printf("[HANDOFF] %v", err)
		}
	}
	log.Printf("[HANDOFF] Entering game %s", h.SessionID)
	g.hub.Publish("enter_game", h)
}

// @title           Playmatch Lobby API
// @version         1.0
// @description     Local API of the Playmatch lobby: roster, invitations, matchmaking queue and game handoffs.
// @host            localhost:8081
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Invalid arguments: %v", err)
	}
	config.LoadConfig(flags)
	cfg := config.AppConfig

	events := hub.NewHub()
	creds := auth.NewCredentials(cfg.AuthToken)

	// The handoff journal is optional.
	var journal *database.Journal
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: handoff journal disabled: %v", err)
		} else {
			journal = database.NewJournal(db)
		}
	}

	var lb *lobby.Lobby
	session := channel.NewSession(cfg.ChannelURL, creds, func(evt channel.Event) {
		lb.Deliver(evt)
	})
	lb = lobby.New(lobby.Config{
		Channel: session,
		API:     apiclient.New(cfg.APIURL, creds),
		Game:    gameSession{hub: events, journal: journal},
		Login: auth.LoginFunc(func() {
			log.Println("[LOBBY] Login required")
			events.Publish("login_required", gin.H{"login_url": cfg.LoginURL})
		}),
		Publisher:      events,
		RosterInterval: cfg.RosterInterval,
		GraceDelay:     cfg.GraceDelay,
		Entry: lobby.EntryParams{
			Invite:   cfg.Invite,
			GameType: cfg.GameType,
			Winner:   cfg.Winner,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	lb.Start(ctx)

	router := gin.Default()
	handler.Register(router, &handler.Handler{
		Lobby:   lb,
		Hub:     events,
		Creds:   creds,
		Journal: journal,
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}
	go func() {
		fmt.Printf("Lobby is running on %s\n", cfg.ListenAddr)
		fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	lb.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
