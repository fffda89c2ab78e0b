package content

import "time"

// CurrentSchemaVersion 为当前文档结构版本。
// 版本 1 只有 projects/skills/about；版本 2 增加了 myWorks/hero/contact。
const CurrentSchemaVersion = 2

// Document 是整站内容的聚合根，持久化时整体序列化为一个 JSON 文档。
type Document struct {
	SchemaVersion int       `json:"schemaVersion,omitempty"`
	Projects      []Project `json:"projects"`
	Skills        []Skill   `json:"skills"`
	MyWorks       []MyWork  `json:"myWorks"`
	Hero          *Hero     `json:"hero,omitempty"`
	Contact       *Contact  `json:"contact,omitempty"`
	About         *About    `json:"about,omitempty"`
}

// Project 表示作品集中的一个项目，插入顺序即展示顺序。
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	BgGradient  string    `json:"bgGradient"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PdfURL      string    `json:"pdfUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Skill 表示一项技能。
type Skill struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    SkillCategory `json:"category"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// MyWork 表示图库中的一项作品（静帧或动态）。
type MyWork struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        WorkType  `json:"type"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Hero 是首屏文案。
type Hero struct {
	Subtitle    string `json:"subtitle"`
	Tagline     string `json:"tagline"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Contact 是联系方式。
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

// About 是个人简介与统计数字。
type About struct {
	Bio               string `json:"bio"`
	Location          string `json:"location"`
	YearsExperience   string `json:"yearsExperience"`
	ProjectsCompleted string `json:"projectsCompleted"`
	Web3Brands        string `json:"web3Brands"`
}

// NewProject 是创建项目时的输入，不含 id 与 createdAt。
type NewProject struct {
	Name        string
	Category    string
	Description string
	Color       string
	BgGradient  string
	ImageURL    string
	PdfURL      string
}

// NewSkill 是创建技能时的输入。
type NewSkill struct {
	Name        string
	Category    SkillCategory
	Description string
}

// NewMyWork 是创建作品时的输入。
type NewMyWork struct {
	Title       string
	Type        WorkType
	ImageURL    string
	Description string
}

// Clone 返回文档的深拷贝，调用方可以随意修改而不影响原文档。
func (d Document) Clone() Document {
	out := Document{SchemaVersion: d.SchemaVersion}
	if d.Projects != nil {
		out.Projects = append(make([]Project, 0, len(d.Projects)), d.Projects...)
	}
	if d.Skills != nil {
		out.Skills = append(make([]Skill, 0, len(d.Skills)), d.Skills...)
	}
	if d.MyWorks != nil {
		out.MyWorks = append(make([]MyWork, 0, len(d.MyWorks)), d.MyWorks...)
	}
	if d.Hero != nil {
		hero := *d.Hero
		out.Hero = &hero
	}
	if d.Contact != nil {
		contact := *d.Contact
		out.Contact = &contact
	}
	if d.About != nil {
		about := *d.About
		out.About = &about
	}
	return out
}

// Normalize 补齐旧版本文档缺失的区块，并标记为当前版本。
// 已存在的区块保持原样，只有缺失的区块会用默认值填充。
func (d *Document) Normalize() {
	if d.SchemaVersion >= CurrentSchemaVersion && d.complete() {
		return
	}
	seed := Default()
	if d.Projects == nil {
		d.Projects = seed.Projects
	}
	if d.Skills == nil {
		d.Skills = seed.Skills
	}
	if d.MyWorks == nil {
		d.MyWorks = seed.MyWorks
	}
	if d.Hero == nil {
		d.Hero = seed.Hero
	}
	if d.Contact == nil {
		d.Contact = seed.Contact
	}
	if d.About == nil {
		d.About = seed.About
	}
	d.SchemaVersion = CurrentSchemaVersion
}

func (d Document) complete() bool {
	return d.Projects != nil && d.Skills != nil && d.MyWorks != nil &&
		d.Hero != nil && d.Contact != nil && d.About != nil
}
