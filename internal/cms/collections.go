package cms

import (
	"context"
	"slices"

	"portfolioCMS/internal/content"
)

// AddProject 追加一个项目并返回带 id 与创建时间的新实体。
func (s *Store) AddProject(ctx context.Context, in content.NewProject) content.Project {
	var created content.Project
	s.mutate(ctx, "add_project", func(doc *content.Document) bool {
		created = content.Project{
			ID: s.uniqueID(func(id string) bool {
				return containsID(doc.Projects, id, projectID)
			}),
			Name:        in.Name,
			Category:    in.Category,
			Description: in.Description,
			Color:       in.Color,
			BgGradient:  in.BgGradient,
			ImageURL:    in.ImageURL,
			PdfURL:      in.PdfURL,
			CreatedAt:   s.now(),
		}
		doc.Projects = append(doc.Projects, created)
		return true
	})
	return created
}

// UpdateProject 将补丁浅合并到指定项目；找不到时返回 false 且不写入。
func (s *Store) UpdateProject(ctx context.Context, id string, patch content.ProjectPatch) (content.Project, bool) {
	var updated content.Project
	found := false
	s.mutate(ctx, "update_project", func(doc *content.Document) bool {
		idx := indexOf(doc.Projects, id, projectID)
		if idx < 0 {
			return false
		}
		doc.Projects[idx] = patch.Apply(doc.Projects[idx])
		updated, found = doc.Projects[idx], true
		return true
	})
	return updated, found
}

// DeleteProject 删除指定项目，其余项目保持原有顺序。
func (s *Store) DeleteProject(ctx context.Context, id string) bool {
	found := false
	s.mutate(ctx, "delete_project", func(doc *content.Document) bool {
		idx := indexOf(doc.Projects, id, projectID)
		if idx < 0 {
			return false
		}
		doc.Projects = slices.Delete(doc.Projects, idx, idx+1)
		found = true
		return true
	})
	return found
}

func (s *Store) AddSkill(ctx context.Context, in content.NewSkill) content.Skill {
	var created content.Skill
	s.mutate(ctx, "add_skill", func(doc *content.Document) bool {
		created = content.Skill{
			ID: s.uniqueID(func(id string) bool {
				return containsID(doc.Skills, id, skillID)
			}),
			Name:        in.Name,
			Category:    in.Category,
			Description: in.Description,
			CreatedAt:   s.now(),
		}
		doc.Skills = append(doc.Skills, created)
		return true
	})
	return created
}

func (s *Store) UpdateSkill(ctx context.Context, id string, patch content.SkillPatch) (content.Skill, bool) {
	var updated content.Skill
	found := false
	s.mutate(ctx, "update_skill", func(doc *content.Document) bool {
		idx := indexOf(doc.Skills, id, skillID)
		if idx < 0 {
			return false
		}
		doc.Skills[idx] = patch.Apply(doc.Skills[idx])
		updated, found = doc.Skills[idx], true
		return true
	})
	return updated, found
}

func (s *Store) DeleteSkill(ctx context.Context, id string) bool {
	found := false
	s.mutate(ctx, "delete_skill", func(doc *content.Document) bool {
		idx := indexOf(doc.Skills, id, skillID)
		if idx < 0 {
			return false
		}
		doc.Skills = slices.Delete(doc.Skills, idx, idx+1)
		found = true
		return true
	})
	return found
}

func (s *Store) AddMyWork(ctx context.Context, in content.NewMyWork) content.MyWork {
	var created content.MyWork
	s.mutate(ctx, "add_my_work", func(doc *content.Document) bool {
		created = content.MyWork{
			ID: s.uniqueID(func(id string) bool {
				return containsID(doc.MyWorks, id, myWorkID)
			}),
			Title:       in.Title,
			Type:        in.Type,
			ImageURL:    in.ImageURL,
			Description: in.Description,
			CreatedAt:   s.now(),
		}
		doc.MyWorks = append(doc.MyWorks, created)
		return true
	})
	return created
}

func (s *Store) UpdateMyWork(ctx context.Context, id string, patch content.MyWorkPatch) (content.MyWork, bool) {
	var updated content.MyWork
	found := false
	s.mutate(ctx, "update_my_work", func(doc *content.Document) bool {
		idx := indexOf(doc.MyWorks, id, myWorkID)
		if idx < 0 {
			return false
		}
		doc.MyWorks[idx] = patch.Apply(doc.MyWorks[idx])
		updated, found = doc.MyWorks[idx], true
		return true
	})
	return updated, found
}

func (s *Store) DeleteMyWork(ctx context.Context, id string) bool {
	found := false
	s.mutate(ctx, "delete_my_work", func(doc *content.Document) bool {
		idx := indexOf(doc.MyWorks, id, myWorkID)
		if idx < 0 {
			return false
		}
		doc.MyWorks = slices.Delete(doc.MyWorks, idx, idx+1)
		found = true
		return true
	})
	return found
}
