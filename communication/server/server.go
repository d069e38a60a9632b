package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"crosses/communication"
	"crosses/game"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

// Server hosts a single game for an interaction layer. Actions arrive over
// HTTP or a websocket; every accepted action is pushed to all websocket
// subscribers.
type Server struct {
	mu          sync.Mutex
	game        *game.Game
	subscribers map[*subscriber]struct{}
	upgrader    websocket.Upgrader
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}

func New(g *game.Game) *Server {
	return &Server{
		game:        g,
		subscribers: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("POST /action", s.handleAction)
	mux.HandleFunc("GET /ws", s.handleSubscribe)
	return mux
}

// Start serves the game on addr until the listener fails.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("serving game")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) State() communication.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return communication.Snapshot(s.game)
}

// Apply performs a on the hosted game and returns the resulting state.
// Subscribers are only notified when the action is accepted.
func (s *Server) Apply(a communication.Action) (communication.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := a.Apply(s.game)
	state := communication.Snapshot(s.game)
	if err != nil {
		log.Debug().Err(err).Str("action", string(a.Type)).Msg("action rejected")
		return state, err
	}
	s.broadcast(communication.Reply{State: state})
	return state, nil
}

// broadcast must be called with s.mu held.
func (s *Server) broadcast(reply communication.Reply) {
	for sub := range s.subscribers {
		if err := sub.send(reply); err != nil {
			log.Debug().Err(err).Msg("dropping subscriber")
			delete(s.subscribers, sub)
			sub.conn.Close()
		}
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var action communication.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.Reply{State: s.State(), Error: err.Error()})
		return
	}
	state, err := s.Apply(action)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, communication.Reply{State: state})
	case errors.Is(err, communication.ErrUnknownAction):
		writeJSON(w, http.StatusBadRequest, communication.Reply{State: state, Error: err.Error()})
	default:
		writeJSON(w, http.StatusConflict, communication.Reply{State: state, Error: err.Error()})
	}
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	sub := &subscriber{conn: conn}
	defer s.unsubscribe(sub)

	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	err = sub.send(communication.Reply{State: communication.Snapshot(s.game)})
	s.mu.Unlock()
	if err != nil {
		return
	}

	for {
		var action communication.Action
		if err := conn.ReadJSON(&action); err != nil {
			return
		}
		// Accepted actions reach this subscriber through the broadcast.
		if state, err := s.Apply(action); err != nil {
			if sub.send(communication.Reply{State: state, Error: err.Error()}) != nil {
				return
			}
		}
	}
}

func (s *Server) unsubscribe(sub *subscriber) {
	s.mu.Lock()
	delete(s.subscribers, sub)
	s.mu.Unlock()
	sub.conn.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}
