package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/yourusername/sportology/internal/service"
)

func dialAnalyzeStream(t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(env.server.Routes())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/analyze"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestAnalyzeStreamRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	conn := dialAnalyzeStream(t, env)

	req := service.AnalyzeRequest{
		Player1Name:      "Alice Smith",
		Player1Birthdate: "1990-01-01",
		Player2Name:      "Bob Jones",
		Player2Birthdate: "1990-06-15",
		MatchDate:        "2024-07-04",
		Sport:            "tennis",
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var msg streamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Error != "" {
		t.Fatalf("unexpected stream error: %s", msg.Error)
	}
	if msg.Result == nil || msg.Result.WinnerPrediction != "Bob Jones" {
		t.Errorf("unexpected result: %+v", msg.Result)
	}
}

func TestAnalyzeStreamReportsBadRequests(t *testing.T) {
	env := newTestEnv(t)
	conn := dialAnalyzeStream(t, env)

	if err := conn.WriteJSON(service.AnalyzeRequest{Sport: "tennis"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var msg streamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Error == "" {
		t.Error("expected an error frame for an incomplete request")
	}
	if msg.Result != nil {
		t.Error("error frames must not carry a result")
	}
}
