package chat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"medvault-backend/internal/chat"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, message string) (string, error) {
	_ = ctx
	_ = message
	s.calls++
	return s.reply, s.err
}

func newChatRouter(completer chat.Completer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	chat.NewHandler(completer).RegisterRoutes(api)
	return router
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeReply(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	return payload.Reply
}

func TestAskReturnsCompletion(t *testing.T) {
	stub := &stubCompleter{reply: "drink more water"}
	router := newChatRouter(stub)

	resp := postChat(router, `{"message":"any advice?"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decodeReply(t, resp); got != "drink more water" {
		t.Fatalf("unexpected reply %q", got)
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", stub.calls)
	}
}

func TestAskEmptyMessageSkipsUpstream(t *testing.T) {
	stub := &stubCompleter{reply: "should not be used"}
	router := newChatRouter(stub)

	for _, body := range []string{`{}`, `{"message":"   "}`, `not json`} {
		resp := postChat(router, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected status 400, got %d", body, resp.Code)
		}
		if got := decodeReply(t, resp); got != "No message provided." {
			t.Fatalf("body %q: unexpected reply %q", body, got)
		}
	}
	if stub.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", stub.calls)
	}
}

func TestAskUpstreamFailureFallsBack(t *testing.T) {
	stub := &stubCompleter{err: errors.New("provider down")}
	router := newChatRouter(stub)

	resp := postChat(router, `{"message":"hello"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decodeReply(t, resp); got != chat.FallbackReply {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestAskWithoutCompleterFallsBack(t *testing.T) {
	router := newChatRouter(nil)

	resp := postChat(router, `{"message":"hello"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decodeReply(t, resp); got != chat.FallbackReply {
		t.Fatalf("unexpected reply %q", got)
	}
}
