package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sportology/internal/metrics"
	"github.com/yourusername/sportology/internal/service"
)

// streamMessage is one frame on the live analysis socket: either a
// verdict or an error, never both.
type streamMessage struct {
	Result *service.AnalyzeResponse `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// handleAnalyzeStream upgrades the connection and answers a stream of
// analyze requests until the client hangs up. Sessions share the demo
// allowance for their client IP.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	metrics.ActiveWebsocketSessions.Inc()
	defer metrics.ActiveWebsocketSessions.Dec()

	ip := clientIP(r)
	log := s.logger.WithFields(logrus.Fields{"client_ip": ip})
	log.Info("Live analysis session started")

	for {
		var req service.AnalyzeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("Live analysis session ended abnormally")
			}
			return
		}

		if err := s.demoLimiter.Allow(ip); err != nil {
			metrics.RateLimitRejectionsTotal.WithLabelValues("demo").Inc()
			if werr := conn.WriteJSON(streamMessage{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		if err := s.validate.Struct(&req); err != nil {
			if werr := conn.WriteJSON(streamMessage{Error: "invalid request"}); werr != nil {
				return
			}
			continue
		}
		if !s.allowedSports[req.Sport] {
			if werr := conn.WriteJSON(streamMessage{Error: "unsupported sport"}); werr != nil {
				return
			}
			continue
		}

		resp, err := s.analysis.AnalyzeLive(req)
		if err != nil {
			if werr := conn.WriteJSON(streamMessage{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(streamMessage{Result: resp}); err != nil {
			return
		}
	}
}
