package site

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"portfolioCMS/internal/cms"
	"portfolioCMS/internal/content"
)

// ErrClosed 表示 Provider 已经 Teardown。
var ErrClosed = errors.New("site provider closed")

// Provider 持有当前内容文档的快照，并在每次修改后重新加载、广播给订阅者。
type Provider struct {
	store  *cms.Store
	logger *slog.Logger

	initOnce sync.Once
	// reloadMu 串行化“读取存储 + 发布快照”，保证后完成的读取不会被先完成的覆盖。
	reloadMu sync.Mutex

	mu      sync.RWMutex
	doc     content.Document
	loading bool
	closed  bool
	subs    map[int]chan content.Document
	nextSub int
}

// NewProvider 创建 Provider。Init 之前 Document 返回默认文档，Loading 为 true。
func NewProvider(store *cms.Store, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		store:   store,
		logger:  logger,
		doc:     content.Default(),
		loading: true,
		subs:    map[int]chan content.Document{},
	}
}

// Init 执行一次性的首次加载；重复调用不会再次加载。
func (p *Provider) Init(ctx context.Context) error {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	p.initOnce.Do(func() {
		p.reload(ctx)
		p.logger.Info("portfolio content loaded")
	})
	return nil
}

// Document 返回当前快照的深拷贝。
func (p *Provider) Document() content.Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc.Clone()
}

// Loading 在首次加载完成前为 true。
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Refresh 从存储重新加载并广播。
func (p *Provider) Refresh(ctx context.Context) {
	p.reload(ctx)
}

func (p *Provider) reload(ctx context.Context) {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()
	p.publish(p.store.Document(ctx))
}

// Subscribe 返回一个接收后续快照的通道以及取消函数。
// 通道容量为 1，消费不及时的订阅者只会收到最新的快照。
func (p *Provider) Subscribe() (<-chan content.Document, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan content.Document, 1)
	if p.closed {
		close(ch)
		return ch, func() {}
	}
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if sub, ok := p.subs[id]; ok {
				delete(p.subs, id)
				close(sub)
			}
		})
	}
}

// Teardown 关闭全部订阅并拒绝后续 Init。
func (p *Provider) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for id, ch := range p.subs {
		close(ch)
		delete(p.subs, id)
	}
}

func (p *Provider) publish(doc content.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc = doc
	p.loading = false
	for _, ch := range p.subs {
		snapshot := doc.Clone()
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}
