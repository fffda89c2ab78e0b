package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"portfolioCMS/internal/auth"
	"portfolioCMS/internal/content"
	"portfolioCMS/internal/tasks"
)

type fakeFeed struct {
	messages   chan *redis.Message
	subscribed chan string
	closed     chan struct{}
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		messages:   make(chan *redis.Message, 1),
		subscribed: make(chan string, 1),
		closed:     make(chan struct{}, 1),
	}
}

func (f *fakeFeed) Subscribe(_ context.Context, channel string) (<-chan *redis.Message, func() error) {
	f.subscribed <- channel
	return f.messages, func() error {
		f.closed <- struct{}{}
		return nil
	}
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("handshake status = %d", resp.StatusCode)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type documentFrame struct {
	Type     string           `json:"type"`
	Document content.Document `json:"document"`
}

func TestStreamDocument(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	conn := dial(t, wsURL(srv, "/v1/portfolio/ws"))

	var first documentFrame
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read first frame: %v", err)
	}
	if first.Type != "document" {
		t.Fatalf("type = %q", first.Type)
	}
	if len(first.Document.Skills) != len(s.provider.Document().Skills) {
		t.Fatalf("first frame has %d skills, want %d", len(first.Document.Skills), len(s.provider.Document().Skills))
	}

	s.provider.AddSkill(context.Background(), content.NewSkill{Name: "Go", Category: content.CategoryTechnology})

	var next documentFrame
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("read update: %v", err)
	}
	skills := next.Document.Skills
	if len(skills) != len(first.Document.Skills)+1 || skills[len(skills)-1].Name != "Go" {
		t.Fatalf("update did not carry the new skill: %+v", skills)
	}

	s.provider.Teardown()
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("read after teardown err = %v, want going-away close", err)
	}
}

func TestHandleNotificationsWithoutRedis(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/v1/admin/ws", nil, false)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func newNotificationServer(t *testing.T, feed notificationFeed) (*httptest.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authService, err := auth.NewAuthService([]byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	issued, err := authService.GenerateAccessToken("saklain")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	router := gin.New()
	router.GET("/ws", NewWsHandler(feed, authService, discardLogger(), nil).HandleNotifications)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, issued.AccessToken
}

func TestHandleNotificationsForwardsTaskEvents(t *testing.T) {
	feed := newFakeFeed()
	srv, token := newNotificationServer(t, feed)
	conn := dial(t, wsURL(srv, "/ws"))

	if err := conn.WriteJSON(wsAuthMessage{Type: "auth", Token: token}); err != nil {
		t.Fatalf("write auth: %v", err)
	}

	select {
	case channel := <-feed.subscribed:
		if channel != tasks.NotifyChannel {
			t.Fatalf("subscribed to %q, want %q", channel, tasks.NotifyChannel)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler never subscribed after authentication")
	}

	payload := `{"type":"pdf_ready","taskId":"task-1"}`
	feed.messages <- &redis.Message{Channel: tasks.NotifyChannel, Payload: payload}

	_, got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read notification: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("notification = %s, want %s", got, payload)
	}

	_ = conn.Close()
	select {
	case <-feed.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription not closed after client disconnect")
	}
}

func TestHandleNotificationsRejectsBadAuth(t *testing.T) {
	cases := []struct {
		name    string
		message string
	}{
		{"not json", "hello"},
		{"wrong type", `{"type":"subscribe","token":"x"}`},
		{"missing token", `{"type":"auth"}`},
		{"invalid token", `{"type":"auth","token":"garbage"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			feed := newFakeFeed()
			srv, _ := newNotificationServer(t, feed)
			conn := dial(t, wsURL(srv, "/ws"))

			if err := conn.WriteMessage(websocket.TextMessage, []byte(tc.message)); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, _, err := conn.ReadMessage()
			if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
				t.Fatalf("err = %v, want policy violation close", err)
			}
			select {
			case <-feed.subscribed:
				t.Fatal("unauthenticated client must not be subscribed")
			default:
			}
		})
	}
}
