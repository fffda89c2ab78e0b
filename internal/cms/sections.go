package cms

import (
	"context"

	"portfolioCMS/internal/content"
)

// 单例区块总是存在（Load 之后已补齐），更新时只合并补丁中给出的字段。

func (s *Store) UpdateAbout(ctx context.Context, patch content.AboutPatch) {
	s.mutate(ctx, "update_about", func(doc *content.Document) bool {
		merged := patch.Apply(*doc.About)
		doc.About = &merged
		return true
	})
}

func (s *Store) UpdateHero(ctx context.Context, patch content.HeroPatch) {
	s.mutate(ctx, "update_hero", func(doc *content.Document) bool {
		merged := patch.Apply(*doc.Hero)
		doc.Hero = &merged
		return true
	})
}

func (s *Store) UpdateContact(ctx context.Context, patch content.ContactPatch) {
	s.mutate(ctx, "update_contact", func(doc *content.Document) bool {
		merged := patch.Apply(*doc.Contact)
		doc.Contact = &merged
		return true
	})
}
