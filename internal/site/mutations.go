package site

import (
	"context"

	"portfolioCMS/internal/content"
)

// 以下包装方法均为：执行仓库操作，重新加载整个文档，广播新快照。

func (p *Provider) AddProject(ctx context.Context, in content.NewProject) content.Project {
	created := p.store.AddProject(ctx, in)
	p.Refresh(ctx)
	return created
}

func (p *Provider) UpdateProject(ctx context.Context, id string, patch content.ProjectPatch) (content.Project, bool) {
	updated, ok := p.store.UpdateProject(ctx, id, patch)
	p.Refresh(ctx)
	return updated, ok
}

func (p *Provider) DeleteProject(ctx context.Context, id string) bool {
	ok := p.store.DeleteProject(ctx, id)
	p.Refresh(ctx)
	return ok
}

func (p *Provider) AddSkill(ctx context.Context, in content.NewSkill) content.Skill {
	created := p.store.AddSkill(ctx, in)
	p.Refresh(ctx)
	return created
}

func (p *Provider) UpdateSkill(ctx context.Context, id string, patch content.SkillPatch) (content.Skill, bool) {
	updated, ok := p.store.UpdateSkill(ctx, id, patch)
	p.Refresh(ctx)
	return updated, ok
}

func (p *Provider) DeleteSkill(ctx context.Context, id string) bool {
	ok := p.store.DeleteSkill(ctx, id)
	p.Refresh(ctx)
	return ok
}

func (p *Provider) AddMyWork(ctx context.Context, in content.NewMyWork) content.MyWork {
	created := p.store.AddMyWork(ctx, in)
	p.Refresh(ctx)
	return created
}

func (p *Provider) UpdateMyWork(ctx context.Context, id string, patch content.MyWorkPatch) (content.MyWork, bool) {
	updated, ok := p.store.UpdateMyWork(ctx, id, patch)
	p.Refresh(ctx)
	return updated, ok
}

func (p *Provider) DeleteMyWork(ctx context.Context, id string) bool {
	ok := p.store.DeleteMyWork(ctx, id)
	p.Refresh(ctx)
	return ok
}

func (p *Provider) UpdateHero(ctx context.Context, patch content.HeroPatch) {
	p.store.UpdateHero(ctx, patch)
	p.Refresh(ctx)
}

func (p *Provider) UpdateContact(ctx context.Context, patch content.ContactPatch) {
	p.store.UpdateContact(ctx, patch)
	p.Refresh(ctx)
}

func (p *Provider) UpdateAbout(ctx context.Context, patch content.AboutPatch) {
	p.store.UpdateAbout(ctx, patch)
	p.Refresh(ctx)
}

// Reset 恢复默认内容。
func (p *Provider) Reset(ctx context.Context) {
	p.store.Reset(ctx)
	p.Refresh(ctx)
}
