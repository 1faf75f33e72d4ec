package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stagecue/cueboard/internal/metrics"
)

// wsWriteTimeout bounds every websocket write so a stalled peer cannot pin
// the handler goroutine.
const wsWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Viewers on LAN displays connect by IP, not by the controller's host
	// name, so origin checking is disabled.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleSocket upgrades the request and pushes the rendered fragment on
// every signal change until the client disconnects.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()

	logger := s.logger.With("client_addr", r.RemoteAddr)
	logger.Info("websocket connection established")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader goroutine: viewers never send data frames, but reading is what
	// surfaces close frames and dead connections.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure) {
					logger.Warn("websocket read error", "error", err)
				}
				return
			}
		}
	}()

	sig, rev := s.store.Get()
	for {
		frag, err := s.renderFragment(sig, rev)
		if err != nil {
			logger.Error("failed to render fragment", "error", err)
			return
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, frag); err != nil {
			logger.Info("closing websocket", "error", err)
			return
		}
		logger.Debug("pushed fragment", "revision", rev)

		// Block until the next change. The wait is chunked by waitTimeout;
		// each quiet window sends a ping so dead peers are detected instead
		// of holding a waiter forever.
		for {
			waitCtx, cancelWait := context.WithTimeout(ctx, s.waitTimeout)
			next, nextRev, err := s.store.Wait(waitCtx, rev)
			cancelWait()
			if err == nil {
				sig, rev = next, nextRev
				break
			}
			if ctx.Err() != nil {
				logger.Info("websocket closed")
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				logger.Info("closing websocket", "error", err)
				return
			}
		}
	}
}
