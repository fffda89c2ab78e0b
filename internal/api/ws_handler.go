package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"portfolioCMS/internal/auth"
	"portfolioCMS/internal/content"
	"portfolioCMS/internal/site"
	"portfolioCMS/internal/tasks"
)

const (
	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 5 * time.Second
)

// notificationFeed 订阅一个频道，返回消息通道和关闭函数。
type notificationFeed interface {
	Subscribe(ctx context.Context, channel string) (<-chan *redis.Message, func() error)
}

// redisFeed 用 Redis Pub/Sub 实现 notificationFeed。
type redisFeed struct {
	client *redis.Client
}

func (f redisFeed) Subscribe(ctx context.Context, channel string) (<-chan *redis.Message, func() error) {
	pubsub := f.client.Subscribe(ctx, channel)
	return pubsub.Channel(), pubsub.Close
}

// WsHandler 负责 WebSocket 推送：公开的内容更新流，以及管理端的任务通知。
type WsHandler struct {
	feed           notificationFeed
	authService    *auth.AuthService
	logger         *slog.Logger
	upgrader       websocket.Upgrader
	allowedOrigins []string
}

// NewWsHandler 构造 WebSocket 处理器。feed 为 nil 时管理端通知不可用。
func NewWsHandler(feed notificationFeed, authService *auth.AuthService, logger *slog.Logger, allowedOrigins []string) *WsHandler {
	h := &WsHandler{
		feed:           feed,
		authService:    authService,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if len(h.allowedOrigins) == 0 {
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return h
}

type wsAuthMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// StreamDocument 先推送当前文档，之后每次内容变更推送一次完整文档。
func (h *WsHandler) StreamDocument(c *gin.Context) {
	p, err := site.FromContext(c.Request.Context())
	if err != nil {
		h.logger.Error("content provider missing", slog.Any("error", err))
		Internal(c, "content unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	log := h.logger.With(slog.String("client_ip", c.ClientIP()))
	updates, unsubscribe := p.Subscribe()
	defer unsubscribe()

	go drainReads(conn, cancel)

	if err := writeDocument(conn, p.Document()); err != nil {
		log.Info("websocket write failed", slog.Any("error", err))
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case doc, ok := <-updates:
			if !ok {
				writeClose(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
			if err := writeDocument(conn, doc); err != nil {
				log.Info("websocket write failed", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}

func writeDocument(conn *websocket.Conn, doc content.Document) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(gin.H{"type": "document", "document": doc})
}

// drainReads 丢弃客户端消息，仅用于检测断开。
func drainReads(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// HandleNotifications 首条消息完成鉴权后，转发 worker 发布的任务通知。
func (h *WsHandler) HandleNotifications(c *gin.Context) {
	if h.feed == nil {
		Unavailable(c, "notifications are not configured")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	baseLog := h.logger.With(slog.String("client_ip", c.ClientIP()))

	usernameCh := make(chan string, 1)
	errCh := make(chan error, 2)

	go h.readLoop(ctx, conn, usernameCh, errCh, cancel, baseLog)

	var username string
	select {
	case <-ctx.Done():
		return
	case err := <-errCh:
		if err != nil {
			baseLog.Warn("websocket authentication failed", slog.Any("error", err))
		}
		return
	case username = <-usernameCh:
	}

	adminLog := baseLog.With(slog.String("admin", username))
	go h.subscribeLoop(ctx, conn, errCh, cancel, adminLog)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			adminLog.Info("websocket connection closed", slog.Any("error", err))
		} else {
			adminLog.Info("websocket connection closed")
		}
	}
}

func (h *WsHandler) readLoop(
	ctx context.Context,
	conn *websocket.Conn,
	usernameCh chan<- string,
	errCh chan<- error,
	cancel context.CancelFunc,
	log *slog.Logger,
) {
	authenticated := false

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			errCh <- fmt.Errorf("read message: %w", err)
			cancel()
			return
		}

		if authenticated {
			continue
		}

		var authMsg wsAuthMessage
		if err := json.Unmarshal(message, &authMsg); err != nil {
			writeClose(conn, websocket.ClosePolicyViolation, "invalid auth payload")
			errCh <- fmt.Errorf("decode auth payload: %w", err)
			cancel()
			return
		}
		if authMsg.Type != "auth" || authMsg.Token == "" {
			writeClose(conn, websocket.ClosePolicyViolation, "auth required")
			errCh <- fmt.Errorf("invalid auth message")
			cancel()
			return
		}

		claims, err := h.authService.ValidateToken(authMsg.Token)
		if err != nil {
			writeClose(conn, websocket.ClosePolicyViolation, "unauthorized")
			errCh <- fmt.Errorf("validate token: %w", err)
			cancel()
			return
		}

		authenticated = true
		usernameCh <- claims.Username
		log.Info("websocket authenticated", slog.String("admin", claims.Username))
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	deadline := time.Now().Add(wsWriteTimeout)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
}

func (h *WsHandler) subscribeLoop(
	ctx context.Context,
	conn *websocket.Conn,
	errCh chan<- error,
	cancel context.CancelFunc,
	log *slog.Logger,
) {
	ch, closeFeed := h.feed.Subscribe(ctx, tasks.NotifyChannel)
	defer func() { _ = closeFeed() }()

	log.Info("subscribed to redis channel", slog.String("channel", tasks.NotifyChannel))

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				errCh <- fmt.Errorf("pubsub channel closed")
				cancel()
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				errCh <- fmt.Errorf("write message: %w", err)
				cancel()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(wsWriteTimeout)); err != nil {
				errCh <- fmt.Errorf("write ping: %w", err)
				cancel()
				return
			}
		}
	}
}
