package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go-explainer/internal/sections"
)

func dialTopicWS(t *testing.T, svc TopicExplainer, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/topic", WSTopicHandler(testConfig(), svc))

	s := httptest.NewServer(r)
	t.Cleanup(s.Close)

	wsURL := "ws" + s.URL[4:] + "/ws/topic"
	return websocket.DefaultDialer.Dial(wsURL, header)
}

func TestWSTopicHandler_ReturnsRecordPerTopic(t *testing.T) {
	svc, client := newTestExplainer(steamReply, nil)
	ws, _, err := dialTopicWS(t, svc, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	for _, topic := range []string{"steam", "trains"} {
		b, _ := json.Marshal(TopicRequest{Topic: topic})
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			t.Fatalf("WebSocket write failed: %v", err)
		}
		var rec sections.Record
		if err := ws.ReadJSON(&rec); err != nil {
			t.Fatalf("WebSocket read failed: %v", err)
		}
		if rec.History != "Steam engines began in the 1700s" || rec.Error != "" {
			t.Errorf("unexpected record %+v", rec)
		}
		if !contains(client.lastPrompt(), topic) {
			t.Errorf("topic %q not sent to model", topic)
		}
	}
}

func TestWSTopicHandler_InvalidJSON(t *testing.T) {
	svc, _ := newTestExplainer(steamReply, nil)
	ws, _, err := dialTopicWS(t, svc, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	if err := ws.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("WebSocket write failed: %v", err)
	}
	_, resp, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("WebSocket read failed: %v", err)
	}
	if !contains(string(resp), "invalid JSON") {
		t.Errorf("expected invalid JSON error, got: %s", string(resp))
	}
}

func TestWSTopicHandler_ModelFailure(t *testing.T) {
	ws, _, err := dialTopicWS(t, failingExplainer(), nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	if err := ws.WriteJSON(TopicRequest{Topic: "x"}); err != nil {
		t.Fatalf("WebSocket write failed: %v", err)
	}
	var rec sections.Record
	if err := ws.ReadJSON(&rec); err != nil {
		t.Fatalf("WebSocket read failed: %v", err)
	}
	if rec != sections.Failed(errString("simulated network error")) {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestWSTopicHandler_AmpersandNotEscaped(t *testing.T) {
	svc, _ := newTestExplainer(steamReply, nil)
	ws, _, err := dialTopicWS(t, svc, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	if err := ws.WriteJSON(TopicRequest{Topic: "steam"}); err != nil {
		t.Fatalf("WebSocket write failed: %v", err)
	}
	_, frame, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("WebSocket read failed: %v", err)
	}
	if !contains(string(frame), `"Why & How"`) || !contains(string(frame), `"Beginner Q&A"`) {
		t.Errorf("expected literal ampersands in frame: %s", frame)
	}
}

func TestWSTopicHandler_OversizeMessageClosesConnection(t *testing.T) {
	svc, client := newTestExplainer(steamReply, nil)
	ws, _, err := dialTopicWS(t, svc, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	big := `{"topic":"` + strings.Repeat("a", maxTopicMessage) + `"}`
	// the server may drop the connection before the frame is fully written
	_ = ws.WriteMessage(websocket.TextMessage, []byte(big))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Fatalf("expected connection to close after oversize message")
	}
	if p := client.lastPrompt(); p != "" {
		t.Errorf("oversize topic must not reach the model, got prompt of %d bytes", len(p))
	}
}

func TestWSTopicHandler_ForeignOriginRejected(t *testing.T) {
	svc, _ := newTestExplainer(steamReply, nil)
	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := dialTopicWS(t, svc, header)
	if err == nil {
		t.Fatalf("expected dial to fail for foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %+v", resp)
	}
}

func TestAllowedOrigin(t *testing.T) {
	origins := []string{"http://localhost:5173"}
	if !allowedOrigin(origins, "") {
		t.Errorf("missing origin should be allowed")
	}
	if !allowedOrigin(origins, "http://localhost:5173") {
		t.Errorf("configured origin should be allowed")
	}
	if allowedOrigin(origins, "http://other") {
		t.Errorf("other origin should be rejected")
	}
	if !allowedOrigin([]string{"*"}, "http://other") {
		t.Errorf("wildcard should allow any origin")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
