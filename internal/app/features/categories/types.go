package categories

import (
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

type createRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

func (c createRequest) category() models.Category {
	return models.Category{
		Name:        htmlsanitize.Text(c.Name),
		Description: htmlsanitize.Text(c.Description),
		ImageURL:    c.ImageURL,
	}
}

func sanitizePatch(p models.CategoryPatch) models.CategoryPatch {
	p.Name = htmlsanitize.TextPtr(p.Name)
	p.Description = htmlsanitize.TextPtr(p.Description)
	return p
}

type idResponse struct {
	ID string `json:"id"`
}
