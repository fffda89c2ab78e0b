package site

import (
	"context"
	"errors"
)

// ErrNoProvider 表示在没有绑定 Provider 的上下文中读取内容。
var ErrNoProvider = errors.New("site provider not bound to context")

type providerKey struct{}

// WithProvider 将 Provider 绑定到 ctx。
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext 取出绑定的 Provider，未绑定时返回 ErrNoProvider。
func FromContext(ctx context.Context) (*Provider, error) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	if !ok || p == nil {
		return nil, ErrNoProvider
	}
	return p, nil
}

// MustFromContext 与 FromContext 相同，但未绑定时 panic。
func MustFromContext(ctx context.Context) *Provider {
	p, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return p
}
