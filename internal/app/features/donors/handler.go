// internal/app/features/donors/handler.go
// Package donors serves the blood donor registry.
package donors

import (
	"net/url"

	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	donorstore "github.com/medisow/medisowadmin/internal/app/store/donors"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *donorstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *donorstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

type createRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	Email             string `json:"email" validate:"omitempty,email"`
	ContactNumber     string `json:"contactNumber" validate:"required,max=40"`
	BloodGroup        string `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Area              string `json:"area" validate:"max=200"`
	City              string `json:"city" validate:"required,max=200"`
	ContactPreference string `json:"contactPreference" validate:"required,oneof=phone email both none"`
}

func (c createRequest) donor() models.Donor {
	return models.Donor{
		Name:              htmlsanitize.Text(c.Name),
		Email:             c.Email,
		ContactNumber:     htmlsanitize.Text(c.ContactNumber),
		BloodGroup:        c.BloodGroup,
		Area:              htmlsanitize.Text(c.Area),
		City:              htmlsanitize.Text(c.City),
		ContactPreference: c.ContactPreference,
	}
}

func sanitizePatch(p models.DonorPatch) models.DonorPatch {
	p.Name = htmlsanitize.TextPtr(p.Name)
	p.ContactNumber = htmlsanitize.TextPtr(p.ContactNumber)
	p.Area = htmlsanitize.TextPtr(p.Area)
	p.City = htmlsanitize.TextPtr(p.City)
	return p
}

var sortKeys = map[string]bool{
	"":                        true,
	donorstore.SortName:       true,
	donorstore.SortBloodGroup: true,
	donorstore.SortCity:       true,
	donorstore.SortDate:       true,
}

// parseQuery reads ?q=&bloodGroup=&city=&contactPreference=&sortBy=.
func parseQuery(v url.Values) (donorstore.Query, error) {
	q := donorstore.Query{
		Search:            v.Get("q"),
		BloodGroup:        v.Get("bloodGroup"),
		City:              v.Get("city"),
		ContactPreference: v.Get("contactPreference"),
		SortBy:            v.Get("sortBy"),
	}
	if !sortKeys[q.SortBy] {
		return q, jsonio.BadRequest("unknown sortBy %q", q.SortBy)
	}
	return q, nil
}
