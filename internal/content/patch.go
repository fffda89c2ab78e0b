package content

// 补丁类型：nil 字段表示保持原值，非 nil 字段整体替换（空字符串可清空可选字段）。
// id 与 createdAt 不可修改，因此不出现在补丁里。

type ProjectPatch struct {
	Name        *string
	Category    *string
	Description *string
	Color       *string
	BgGradient  *string
	ImageURL    *string
	PdfURL      *string
}

func (p ProjectPatch) Apply(v Project) Project {
	setString(&v.Name, p.Name)
	setString(&v.Category, p.Category)
	setString(&v.Description, p.Description)
	setString(&v.Color, p.Color)
	setString(&v.BgGradient, p.BgGradient)
	setString(&v.ImageURL, p.ImageURL)
	setString(&v.PdfURL, p.PdfURL)
	return v
}

type SkillPatch struct {
	Name        *string
	Category    *SkillCategory
	Description *string
}

func (p SkillPatch) Apply(v Skill) Skill {
	setString(&v.Name, p.Name)
	if p.Category != nil {
		v.Category = *p.Category
	}
	setString(&v.Description, p.Description)
	return v
}

type MyWorkPatch struct {
	Title       *string
	Type        *WorkType
	ImageURL    *string
	Description *string
}

func (p MyWorkPatch) Apply(v MyWork) MyWork {
	setString(&v.Title, p.Title)
	if p.Type != nil {
		v.Type = *p.Type
	}
	setString(&v.ImageURL, p.ImageURL)
	setString(&v.Description, p.Description)
	return v
}

type HeroPatch struct {
	Subtitle    *string
	Tagline     *string
	Title       *string
	Description *string
}

func (p HeroPatch) Apply(v Hero) Hero {
	setString(&v.Subtitle, p.Subtitle)
	setString(&v.Tagline, p.Tagline)
	setString(&v.Title, p.Title)
	setString(&v.Description, p.Description)
	return v
}

type ContactPatch struct {
	Phone    *string
	Email    *string
	Location *string
	LinkedIn *string
}

func (p ContactPatch) Apply(v Contact) Contact {
	setString(&v.Phone, p.Phone)
	setString(&v.Email, p.Email)
	setString(&v.Location, p.Location)
	setString(&v.LinkedIn, p.LinkedIn)
	return v
}

type AboutPatch struct {
	Bio               *string
	Location          *string
	YearsExperience   *string
	ProjectsCompleted *string
	Web3Brands        *string
}

func (p AboutPatch) Apply(v About) About {
	setString(&v.Bio, p.Bio)
	setString(&v.Location, p.Location)
	setString(&v.YearsExperience, p.YearsExperience)
	setString(&v.ProjectsCompleted, p.ProjectsCompleted)
	setString(&v.Web3Brands, p.Web3Brands)
	return v
}

// String 返回指向 s 的指针，便于构造补丁。
func String(s string) *string { return &s }

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
