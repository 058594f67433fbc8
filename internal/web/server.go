// Package web serves liveness probes and a server-sent-events stream
// of booking activity.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/rs/zerolog"

	"floorten/internal/events"
)

const streamName = "bookings"

// Server exposes /healthz, /readyz and /events. Booking events arrive
// over the bus and fan out to every connected SSE client.
type Server struct {
	port   int
	stream *sse.Server
	ready  func(context.Context) error
	logger *zerolog.Logger
}

// New wires the server to the bus. The ready hook decides /readyz; nil
// means always ready.
func New(port int, bus *events.Bus, ready func(context.Context) error, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	stream := sse.New()
	stream.AutoReplay = false
	stream.CreateStream(streamName)

	s := &Server{
		port:   port,
		stream: stream,
		ready:  ready,
		logger: logger,
	}

	if bus != nil {
		bus.Subscribe(events.TypeBooked, s.publish)
		bus.Subscribe(events.TypeCancelled, s.publish)
	}
	return s
}

func (s *Server) publish(ev events.BookingEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode booking event")
		return
	}
	s.stream.Publish(streamName, &sse.Event{
		Event: []byte(ev.Type),
		Data:  data,
	})
}

// Handler returns the route mux, split out so tests can hit it
// without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.ready != nil {
			ctxPing, cancel := context.WithTimeout(r.Context(), time.Second)
			defer cancel()
			if err := s.ready(ctxPing); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/events", s.stream.ServeHTTP)
	return mux
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	srv := &http.Server{Addr: fmt.Sprintf(":%d", s.port), Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		s.stream.Close()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	s.logger.Info().Int("port", s.port).Msg("status server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error().Err(err).Msg("status server error")
	}
}
