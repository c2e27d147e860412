// Package server is the live web view: it drives every circuit engine from
// one ticker, pushes rendered SVG frames to browsers over a websocket and
// applies the control messages (sliders, playback, measurement) they send
// back. The ticker goroutine is the engines' single writer; control messages
// are applied between frames on the same goroutine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/flowlab/flowlab/internal/engine"
	"github.com/flowlab/flowlab/internal/svg"
)

type Server struct {
	engines map[string]*engine.Engine
	order   []string
	hub     *hub
	log     *zap.Logger
	fps     int
}

// controlMsg is one browser action.
type controlMsg struct {
	Circuit string  `json:"circuit"`
	Action  string  `json:"action"` // set | play | pause | reset | measure
	Param   string  `json:"param,omitempty"`
	Value   float64 `json:"value,omitempty"`
	On      bool    `json:"on,omitempty"`
}

// frameMsg is one pushed panel update.
type frameMsg struct {
	Circuit string  `json:"circuit"`
	SVG     string  `json:"svg"`
	Rate    string  `json:"rate"`
	Playing bool    `json:"playing"`
	Value   float64 `json:"raw_rate"`
}

func New(log *zap.Logger, fps int, engines ...*engine.Engine) *Server {
	if fps <= 0 {
		fps = 30
	}
	s := &Server{
		engines: make(map[string]*engine.Engine, len(engines)),
		hub:     newHub(log),
		log:     log,
		fps:     fps,
	}
	for _, e := range engines {
		name := e.Circuit().Name()
		s.engines[name] = e
		s.order = append(s.order, name)
	}
	return s
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.hub.handle)

	srv := &http.Server{Addr: addr, Handler: mux}

	go s.loop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("serving live view", zap.String("addr", addr), zap.Int("fps", s.fps))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loop is the cooperative frame driver. Stopping the context stops the
// ticker, and with it every engine mutation.
func (s *Server) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.hub.control:
			s.apply(msg)
		case <-ticker.C:
			s.stepAndBroadcast()
		}
	}
}

func (s *Server) apply(msg controlMsg) {
	e, ok := s.engines[msg.Circuit]
	if !ok {
		s.log.Warn("control for unknown circuit", zap.String("circuit", msg.Circuit))
		return
	}
	switch msg.Action {
	case "set":
		if err := e.Circuit().SetParam(msg.Param, msg.Value); err != nil {
			s.log.Warn("rejected parameter", zap.String("param", msg.Param), zap.Float64("value", msg.Value), zap.Error(err))
		}
	case "play":
		e.SetPlaying(true)
	case "pause":
		e.SetPlaying(false)
	case "reset":
		e.Reset()
	case "measure":
		e.SetMeasuring(msg.On)
	default:
		s.log.Warn("unknown control action", zap.String("action", msg.Action))
	}
}

func (s *Server) stepAndBroadcast() {
	for _, name := range s.order {
		e := s.engines[name]
		e.Step()
		frame := e.Frame()
		msg := frameMsg{
			Circuit: name,
			SVG:     svg.Render(e.Circuit(), frame),
			Rate:    frame.RateLabel,
			Playing: frame.Playing,
			Value:   frame.Rate,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			s.log.Error("frame marshal failed", zap.Error(err))
			continue
		}
		s.hub.broadcast <- data
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
