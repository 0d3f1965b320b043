package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const pingInterval = 25 * time.Second

// handleStream pushes the visitor's avatar as server-sent events: one
// message of SVG markup on connect and after every change.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	a, ok := s.existingAvatar(r.Context(), r)
	if !ok {
		http.Error(w, "no avatar", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	changes, cancel := a.Subscribe()
	defer cancel()

	log.Debug().Str("session", s.sessionID(r)).Msg("stream opened")
	defer func(started time.Time) {
		log.Debug().Str("session", s.sessionID(r)).Str("duration", time.Since(started).String()).Msg("stream closed")
	}(time.Now())

	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate, max-age=0")
	w.WriteHeader(http.StatusOK)

	send := func() error {
		vm, err := avatarViewModel(a)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", vm.SVG); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}
	if err := send(); err != nil {
		return
	}

	tick := time.NewTicker(pingInterval)
	defer tick.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-tick.C:
			if _, err := w.Write([]byte("event: ping\ndata:\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case _, ok := <-changes:
			if !ok {
				return
			}
			tick.Reset(pingInterval)
			if err := send(); err != nil {
				return
			}
		}
	}
}
