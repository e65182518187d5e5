// Package webhook accepts wallpaper change requests over HTTP and queues them
// on the event bus.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/eventbus"
)

// Publisher queues events for the transition worker.
type Publisher interface {
	Publish(event eventbus.Event) bool
}

// PaletteLookup reports whether a palette exists.
type PaletteLookup interface {
	Palette(name string) ([]color.Color, bool)
}

// Request is the JSON body accepted by POST /transition and POST /pinwheel.
type Request struct {
	Color    string `json:"color,omitempty"`
	Palette  string `json:"palette,omitempty"`
	Duration string `json:"duration,omitempty"` // Go duration, e.g. "90s"
}

// Server is an HTTP server that receives webhooks and publishes events to the bus.
type Server struct {
	addr       string
	bus        Publisher
	palettes   PaletteLookup
	httpServer *http.Server
}

// NewServer creates a new webhook server.
func NewServer(host string, port int, bus Publisher, palettes PaletteLookup) *Server {
	return &Server{
		addr:     fmt.Sprintf("%s:%d", host, port),
		bus:      bus,
		palettes: palettes,
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transition", s.handleTransition)
	mux.HandleFunc("POST /pinwheel", s.handlePinwheel)
	return mux
}

// Run starts the webhook server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	log.Info().Str("addr", s.addr).Msg("Starting webhook server")

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Webhook server shutdown error")
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	req, d, err := decodeRequest(r)
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := color.Parse(req.Color)
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}

	s.publish(w, eventbus.Event{
		Type:     eventbus.EventTypeTransition,
		Color:    c,
		Duration: d,
		Source:   "webhook",
	})
}

func (s *Server) handlePinwheel(w http.ResponseWriter, r *http.Request) {
	req, d, err := decodeRequest(r)
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := s.palettes.Palette(req.Palette); !ok {
		respond(w, http.StatusNotFound, fmt.Sprintf("palette %q not found", req.Palette))
		return
	}

	s.publish(w, eventbus.Event{
		Type:     eventbus.EventTypePinwheel,
		Palette:  req.Palette,
		Duration: d,
		Source:   "webhook",
	})
}

func (s *Server) publish(w http.ResponseWriter, e eventbus.Event) {
	log.Debug().
		Str("event_type", string(e.Type)).
		Str("color", e.Color.String()).
		Str("palette", e.Palette).
		Dur("duration", e.Duration).
		Msg("Received webhook request")

	if !s.bus.Publish(e) {
		respond(w, http.StatusServiceUnavailable, "queue full")
		return
	}
	respond(w, http.StatusAccepted, "queued")
}

func decodeRequest(r *http.Request) (Request, time.Duration, error) {
	defer r.Body.Close()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, 0, fmt.Errorf("invalid JSON body: %w", err)
	}

	if req.Duration == "" {
		return req, 0, nil
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		return req, 0, fmt.Errorf("invalid duration: %w", err)
	}
	if d < 0 {
		return req, 0, errors.New("duration must not be negative")
	}
	return req, d, nil
}

func respond(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
