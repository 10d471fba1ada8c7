// Package channel owns the persistent realtime connection to the
// coordination server. A Session is created per lobby and destroyed with it;
// coordinators only ever Emit through it.
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"playmatch/lobby/internal/auth"
)

const (
	sendQueueSize = 16
	writeWait     = 10 * time.Second
)

// State is the lifecycle phase of the channel.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Status is a point-in-time view of the channel.
type Status struct {
	State     State     `json:"state"`
	Connected bool      `json:"connected"`
	LastError ErrorKind `json:"last_error"`
}

// Handler receives channel events. It is called from the session's own
// goroutines and must not call back into Connect.
type Handler func(Event)

// Session is the persistent channel to the coordination server.
type Session struct {
	url      string
	creds    *auth.Credentials
	dialer   *websocket.Dialer
	handler  Handler
	clientID string
	now      func() time.Time

	mu         sync.Mutex
	state      State
	lastErr    ErrorKind
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
	gen        int
	attempt    int
	cancelDial context.CancelFunc
}

// NewSession returns a disconnected session for url.
func NewSession(url string, creds *auth.Credentials, handler Handler) *Session {
	if handler == nil {
		handler = func(Event) {}
	}
	return &Session{
		url:      url,
		creds:    creds,
		dialer:   websocket.DefaultDialer,
		handler:  handler,
		clientID: uuid.NewString(),
		now:      time.Now,
		state:    StateDisconnected,
		lastErr:  ErrorNone,
	}
}

// Status returns the current channel status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, Connected: s.state == StateConnected, LastError: s.lastErr}
}

// Connect establishes the channel. It is a no-op while connecting or connected.
// Classified failures are both returned and delivered as connect_error events;
// no retry is attempted.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateDisconnected {
		s.mu.Unlock()
		return nil
	}
	s.state = StateConnecting
	s.attempt++
	attempt := s.attempt
	dialCtx, cancel := context.WithCancel(ctx)
	s.cancelDial = cancel
	s.mu.Unlock()
	defer cancel()

	if err := s.creds.Check(s.now()); err != nil {
		return s.fail(attempt, &ConnectError{Kind: ErrorAuthInvalid, Message: fmt.Sprintf("%s: %v", MessageAuthInvalid, err)})
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.creds.Token())
	header.Set("X-Client-ID", s.clientID)

	conn, resp, err := s.dialer.DialContext(dialCtx, s.url, header)
	if err != nil {
		if resp != nil {
			return s.fail(attempt, handshakeError(resp))
		}
		s.mu.Lock()
		if s.attempt == attempt {
			s.state = StateDisconnected
			s.cancelDial = nil
		}
		s.mu.Unlock()
		log.Printf("[CHANNEL] Dial %s failed: %v", s.url, err)
		return fmt.Errorf("dial channel: %w", err)
	}

	s.mu.Lock()
	if s.state != StateConnecting || s.attempt != attempt {
		// Disconnect won the race against the dial.
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.gen++
	gen := s.gen
	s.state = StateConnected
	s.lastErr = ErrorNone
	s.conn = conn
	s.send = make(chan []byte, sendQueueSize)
	s.done = make(chan struct{})
	s.cancelDial = nil
	send, done := s.send, s.done
	s.mu.Unlock()

	log.Printf("[CHANNEL] Connected to %s", s.url)
	s.handler(Event{Type: EventConnect})

	go s.writeLoop(conn, send, done)
	go s.readLoop(conn, gen)
	return nil
}

// Disconnect tears the channel down. It is safe to call when already disconnected.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateConnecting:
		if s.cancelDial != nil {
			s.cancelDial()
			s.cancelDial = nil
		}
	case StateConnected:
		close(s.done)
		s.gen++
		s.conn = nil
		s.send = nil
	}
	s.state = StateDisconnected
}

// Emit queues an event for the server without blocking.
func (s *Session) Emit(eventType string, payload any) error {
	frame := envelope{Type: eventType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s: %w", eventType, err)
		}
		frame.Payload = raw
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnected {
		return ErrNotConnected
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// fail records a classified failure for attempt. A failure of an attempt that
// Disconnect already abandoned leaves the newer state alone.
func (s *Session) fail(attempt int, cerr *ConnectError) error {
	s.mu.Lock()
	if s.attempt != attempt {
		s.mu.Unlock()
		log.Printf("[CHANNEL] Dropping stale failure: %v", cerr)
		return cerr
	}
	s.state = StateDisconnected
	s.lastErr = cerr.Kind
	s.cancelDial = nil
	s.mu.Unlock()

	log.Printf("[CHANNEL] %v", cerr)
	s.handler(Event{Type: EventConnectError, Err: cerr})
	return cerr
}

func (s *Session) readLoop(conn *websocket.Conn, gen int) {
	reason := "closed"
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) && !errors.Is(err, net.ErrClosed) {
				reason = err.Error()
			}
			break
		}

		var frame envelope
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Printf("[CHANNEL] Dropping undecodable frame: %v", err)
			continue
		}
		frame.Type = canonicalType(frame.Type)

		if frame.Type == EventConnectError {
			var body struct {
				Message string `json:"message"`
			}
			_ = json.Unmarshal(frame.Payload, &body)
			cerr := newConnectError(body.Message)
			s.mu.Lock()
			if s.gen == gen {
				s.lastErr = cerr.Kind
			}
			s.mu.Unlock()
			log.Printf("[CHANNEL] %v", cerr)
			s.handler(Event{Type: EventConnectError, Payload: frame.Payload, Err: cerr})
			continue
		}

		s.handler(Event{Type: frame.Type, Payload: frame.Payload})
	}

	s.mu.Lock()
	if s.gen == gen {
		close(s.done)
		s.gen++
		s.state = StateDisconnected
		s.conn = nil
		s.send = nil
	}
	s.mu.Unlock()
	conn.Close()

	payload, _ := json.Marshal(map[string]string{"reason": reason})
	log.Printf("[CHANNEL] Disconnected: %s", reason)
	s.handler(Event{Type: EventDisconnect, Payload: payload})
}

func (s *Session) writeLoop(conn *websocket.Conn, send <-chan []byte, done <-chan struct{}) {
	for {
		select {
		case data := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[CHANNEL] Write failed: %v", err)
				conn.Close()
				return
			}
		case <-done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
			return
		}
	}
}

func handshakeError(resp *http.Response) *ConnectError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	message := strings.TrimSpace(string(body))

	var decoded struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &decoded) == nil {
		if decoded.Message != "" {
			message = decoded.Message
		} else if decoded.Error != "" {
			message = decoded.Error
		}
	}

	cerr := newConnectError(message)
	if cerr.Kind == ErrorUnclassified {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			cerr.Kind = ErrorAuthInvalid
		case http.StatusConflict:
			cerr.Kind = ErrorAlreadyConnected
		}
	}
	if cerr.Message == "" {
		cerr.Message = resp.Status
	}
	return cerr
}
