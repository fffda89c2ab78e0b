package cms

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolioCMS/internal/content"
	"portfolioCMS/internal/metrics"
)

// Store 提供按集合划分的增删改操作。
// 每次修改都是一次完整的读-改-写：加载整个文档、修改一处、整体写回。
type Store struct {
	mu      sync.Mutex
	adapter *Adapter
	newID   func() string
	now     func() time.Time
	logger  *slog.Logger
}

// Option 用于定制 Store。
type Option func(*Store)

// WithIDGenerator 替换默认的 uuid 生成器。
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock 替换创建时间的时钟。
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger used for operation traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore 构造内容仓库。
func NewStore(adapter *Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Adapter 暴露底层持久化适配器。
func (s *Store) Adapter() *Adapter {
	return s.adapter
}

// Document 读取当前持久化的完整文档。
func (s *Store) Document(ctx context.Context) content.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter.Load(ctx)
}

// Reset 无条件用默认文档覆盖已保存的文档。
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter.Save(ctx, content.Default())
	s.observe("reset", metrics.OutcomeOK)
}

// mutate 执行一次读-改-写；fn 返回 false 表示未找到目标，此时不写回。
func (s *Store) mutate(ctx context.Context, op string, fn func(doc *content.Document) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.adapter.Load(ctx)
	if !fn(&doc) {
		s.observe(op, metrics.OutcomeNotFound)
		return
	}
	s.adapter.Save(ctx, doc)
	s.observe(op, metrics.OutcomeOK)
}

func (s *Store) observe(op, outcome string) {
	metrics.ObserveStoreOperation(op, outcome)
	s.logger.Debug("content store operation", slog.String("op", op), slog.String("outcome", outcome))
}

// uniqueID 生成一个在集合内未被使用过的 id。
func (s *Store) uniqueID(taken func(id string) bool) string {
	for {
		id := s.newID()
		if id != "" && !taken(id) {
			return id
		}
	}
}

func containsID[T any](items []T, id string, idOf func(T) string) bool {
	return indexOf(items, id, idOf) >= 0
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
}

func projectID(p content.Project) string { return p.ID }
func skillID(s content.Skill) string     { return s.ID }
func myWorkID(w content.MyWork) string   { return w.ID }
