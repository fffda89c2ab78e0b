package api

import (
	"errors"

	"portfolioCMS/internal/content"
)

var errInvalidURL = errors.New("invalid url")

type createProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Category    string `json:"category" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Color       string `json:"color" binding:"required,max=64"`
	BgGradient  string `json:"bgGradient" binding:"required,max=500"`
	ImageURL    string `json:"imageUrl"`
	PdfURL      string `json:"pdfUrl"`
}

func (r createProjectRequest) toDraft() (content.NewProject, error) {
	if !validURL(r.ImageURL) || !validURL(r.PdfURL) {
		return content.NewProject{}, errInvalidURL
	}
	return content.NewProject{
		Name:        sanitizeText(r.Name),
		Category:    sanitizeText(r.Category),
		Description: sanitizeText(r.Description),
		Color:       sanitizeText(r.Color),
		BgGradient:  sanitizeText(r.BgGradient),
		ImageURL:    r.ImageURL,
		PdfURL:      r.PdfURL,
	}, nil
}

type updateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Category    *string `json:"category" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Color       *string `json:"color" binding:"omitempty,max=64"`
	BgGradient  *string `json:"bgGradient" binding:"omitempty,max=500"`
	ImageURL    *string `json:"imageUrl"`
	PdfURL      *string `json:"pdfUrl"`
}

func (r updateProjectRequest) toPatch() (content.ProjectPatch, error) {
	if !validURLPtr(r.ImageURL) || !validURLPtr(r.PdfURL) {
		return content.ProjectPatch{}, errInvalidURL
	}
	return content.ProjectPatch{
		Name:        sanitizePtr(r.Name),
		Category:    sanitizePtr(r.Category),
		Description: sanitizePtr(r.Description),
		Color:       sanitizePtr(r.Color),
		BgGradient:  sanitizePtr(r.BgGradient),
		ImageURL:    r.ImageURL,
		PdfURL:      r.PdfURL,
	}, nil
}

type createSkillRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"max=2000"`
}

func (r createSkillRequest) toDraft() (content.NewSkill, error) {
	category, err := content.ParseSkillCategory(r.Category)
	if err != nil {
		return content.NewSkill{}, err
	}
	return content.NewSkill{
		Name:        sanitizeText(r.Name),
		Category:    category,
		Description: sanitizeText(r.Description),
	}, nil
}

type updateSkillRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Category    *string `json:"category"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

func (r updateSkillRequest) toPatch() (content.SkillPatch, error) {
	patch := content.SkillPatch{
		Name:        sanitizePtr(r.Name),
		Description: sanitizePtr(r.Description),
	}
	if r.Category != nil {
		category, err := content.ParseSkillCategory(*r.Category)
		if err != nil {
			return content.SkillPatch{}, err
		}
		patch.Category = &category
	}
	return patch, nil
}

type createMyWorkRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Type        string `json:"type" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Description string `json:"description" binding:"max=2000"`
}

func (r createMyWorkRequest) toDraft() (content.NewMyWork, error) {
	workType, err := content.ParseWorkType(r.Type)
	if err != nil {
		return content.NewMyWork{}, err
	}
	if !validURL(r.ImageURL) {
		return content.NewMyWork{}, errInvalidURL
	}
	return content.NewMyWork{
		Title:       sanitizeText(r.Title),
		Type:        workType,
		ImageURL:    r.ImageURL,
		Description: sanitizeText(r.Description),
	}, nil
}

type updateMyWorkRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Type        *string `json:"type"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

func (r updateMyWorkRequest) toPatch() (content.MyWorkPatch, error) {
	if !validURLPtr(r.ImageURL) {
		return content.MyWorkPatch{}, errInvalidURL
	}
	patch := content.MyWorkPatch{
		Title:       sanitizePtr(r.Title),
		ImageURL:    r.ImageURL,
		Description: sanitizePtr(r.Description),
	}
	if r.Type != nil {
		workType, err := content.ParseWorkType(*r.Type)
		if err != nil {
			return content.MyWorkPatch{}, err
		}
		patch.Type = &workType
	}
	return patch, nil
}

type heroRequest struct {
	Subtitle    *string `json:"subtitle"`
	Tagline     *string `json:"tagline"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r heroRequest) toPatch() content.HeroPatch {
	return content.HeroPatch{
		Subtitle:    sanitizePtr(r.Subtitle),
		Tagline:     sanitizePtr(r.Tagline),
		Title:       sanitizePtr(r.Title),
		Description: sanitizePtr(r.Description),
	}
}

type contactRequest struct {
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Location *string `json:"location"`
	LinkedIn *string `json:"linkedin"`
}

func (r contactRequest) toPatch() content.ContactPatch {
	return content.ContactPatch{
		Phone:    sanitizePtr(r.Phone),
		Email:    sanitizePtr(r.Email),
		Location: sanitizePtr(r.Location),
		LinkedIn: sanitizePtr(r.LinkedIn),
	}
}

type aboutRequest struct {
	Bio               *string `json:"bio"`
	Location          *string `json:"location"`
	YearsExperience   *string `json:"yearsExperience"`
	ProjectsCompleted *string `json:"projectsCompleted"`
	Web3Brands        *string `json:"web3Brands"`
}

func (r aboutRequest) toPatch() content.AboutPatch {
	return content.AboutPatch{
		Bio:               sanitizePtr(r.Bio),
		Location:          sanitizePtr(r.Location),
		YearsExperience:   sanitizePtr(r.YearsExperience),
		ProjectsCompleted: sanitizePtr(r.ProjectsCompleted),
		Web3Brands:        sanitizePtr(r.Web3Brands),
	}
}
