package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// hub fans rendered frames out to every connected browser and feeds control
// messages back to the server. All client bookkeeping happens on the run
// goroutine, so the maps need no lock.
type hub struct {
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	register  chan *websocket.Conn
	remove    chan *websocket.Conn
	broadcast chan []byte
	control   chan controlMsg
	log       *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	h := &hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]bool),
		register:  make(chan *websocket.Conn),
		remove:    make(chan *websocket.Conn),
		broadcast: make(chan []byte, 16),
		control:   make(chan controlMsg, 16),
		log:       log,
	}
	go h.run()
	return h
}

func (h *hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.remove:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
		case msg := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.log.Warn("dropping websocket client", zap.Error(err))
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

func (h *hub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	h.log.Info("websocket client connected", zap.String("remote", conn.RemoteAddr().String()))
	h.register <- conn

	go func() {
		defer func() { h.remove <- conn }()
		for {
			var msg controlMsg
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Warn("websocket read failed", zap.Error(err))
				}
				return
			}
			h.control <- msg
		}
	}()
}
