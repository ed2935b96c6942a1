package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/weatherfit/backend/feed"
)

const (
	streamWriteWait = 10 * time.Second
	streamPongWait  = 60 * time.Second
	streamPingEvery = (streamPongWait * 9) / 10
)

// StreamController pushes feed-changed notifications to websocket clients.
// Messages carry no payload beyond the event name; clients re-fetch the
// feed when one arrives.
type StreamController struct {
	notifier *feed.Notifier
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader
}

// NewStreamController creates a new StreamController instance.
func NewStreamController(notifier *feed.Notifier, logger *zap.SugaredLogger) *StreamController {
	return &StreamController{
		notifier: notifier,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// cross-origin is already policed by the CORS middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type streamEvent struct {
	Event string `json:"event"`
}

// Stream upgrades the request to a websocket and forwards feed-changed
// notifications until the client disconnects.
func (s *StreamController) Stream(ctx *gin.Context) {
	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Warnw("websocket upgrade failed", "error", err)
		}
		return
	}
	defer conn.Close()

	events, cancel := s.notifier.Subscribe(ctx.Request.Context())
	defer cancel()

	// reader goroutine: only pongs and close frames are expected
	conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case _, ok := <-events:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(streamEvent{Event: "posts_changed"}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
