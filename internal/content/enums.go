package content

import "fmt"

// SkillCategory 是技能分类的固定枚举。
type SkillCategory string

const (
	CategoryCreative   SkillCategory = "Creative"
	CategoryMarketing  SkillCategory = "Marketing"
	CategoryFinance    SkillCategory = "Finance"
	CategoryProduction SkillCategory = "Production"
	CategoryTechnology SkillCategory = "Technology"
)

// SkillCategories 按后台下拉框顺序列出全部分类。
var SkillCategories = []SkillCategory{
	CategoryCreative,
	CategoryMarketing,
	CategoryFinance,
	CategoryProduction,
	CategoryTechnology,
}

func (c SkillCategory) Valid() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// WorkType 区分静帧（framing）与动态（moving）作品。
type WorkType string

const (
	WorkFraming WorkType = "framing"
	WorkMoving  WorkType = "moving"
)

func (w WorkType) Valid() bool {
	return w == WorkFraming || w == WorkMoving
}

// ParseSkillCategory 校验并转换外部输入的分类。
func ParseSkillCategory(raw string) (SkillCategory, error) {
	c := SkillCategory(raw)
	if !c.Valid() {
		return "", fmt.Errorf("unknown skill category %q", raw)
	}
	return c, nil
}

// ParseWorkType 校验并转换外部输入的作品类型。
func ParseWorkType(raw string) (WorkType, error) {
	w := WorkType(raw)
	if !w.Valid() {
		return "", fmt.Errorf("unknown work type %q", raw)
	}
	return w, nil
}
