package vouchers

import (
	"net/http"
	"strings"
	"time"

	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/app/system/imageform"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/spf13/cast"
)

type createRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	ImageURL    string     `json:"imageUrl" validate:"omitempty,url"`
	CreditCost  int        `json:"creditCost" validate:"gte=0"`
	Code        string     `json:"code" validate:"omitempty,max=64"`
	IsActive    *bool      `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func (c createRequest) voucher() models.Voucher {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}
	return models.Voucher{
		Title:       htmlsanitize.Text(c.Title),
		Description: htmlsanitize.Text(c.Description),
		ImageURL:    c.ImageURL,
		CreditCost:  c.CreditCost,
		Code:        strings.TrimSpace(c.Code),
		IsActive:    active,
		ExpiresAt:   c.ExpiresAt,
	}
}

func toUpload(f *imageform.File) *voucherstore.Upload {
	if f == nil {
		return nil
	}
	return &voucherstore.Upload{Filename: f.Filename, ContentType: f.ContentType, Body: f.Reader()}
}

// formValue returns the value of key and whether the form carried it.
func formValue(r *http.Request, key string) (string, bool) {
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// readCreate decodes a create request from JSON or multipart.
func readCreate(w http.ResponseWriter, r *http.Request) (createRequest, *voucherstore.Upload, error) {
	var req createRequest
	if !imageform.IsMultipart(r) {
		return req, nil, jsonio.Decode(w, r, &req)
	}
	if err := imageform.Parse(w, r); err != nil {
		return req, nil, err
	}
	var p models.VoucherPatch
	if err := readPatchFields(r, &p); err != nil {
		return req, nil, err
	}
	if p.Title != nil {
		req.Title = *p.Title
	}
	if p.Description != nil {
		req.Description = *p.Description
	}
	if p.CreditCost != nil {
		req.CreditCost = *p.CreditCost
	}
	if p.Code != nil {
		req.Code = *p.Code
	}
	req.IsActive = p.IsActive
	req.ExpiresAt = p.ExpiresAt
	if err := jsonio.Validate(&req); err != nil {
		return req, nil, err
	}
	img, err := imageform.Read(r, "image")
	if err != nil {
		return req, nil, err
	}
	return req, toUpload(img), nil
}

// readPatch decodes a merge-patch from JSON or multipart.
func readPatch(w http.ResponseWriter, r *http.Request) (models.VoucherPatch, *voucherstore.Upload, error) {
	var p models.VoucherPatch
	if !imageform.IsMultipart(r) {
		if err := jsonio.Decode(w, r, &p); err != nil {
			return p, nil, err
		}
		return sanitizePatch(p), nil, nil
	}
	if err := imageform.Parse(w, r); err != nil {
		return p, nil, err
	}
	if err := readPatchFields(r, &p); err != nil {
		return p, nil, err
	}
	if err := jsonio.Validate(&p); err != nil {
		return p, nil, err
	}
	img, err := imageform.Read(r, "image")
	if err != nil {
		return p, nil, err
	}
	return sanitizePatch(p), toUpload(img), nil
}

// readPatchFields copies the text fields present in the multipart form.
func readPatchFields(r *http.Request, p *models.VoucherPatch) error {
	if v, ok := formValue(r, "title"); ok {
		p.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		p.Description = &v
	}
	if v, ok := formValue(r, "code"); ok {
		p.Code = &v
	}
	if v, ok := formValue(r, "creditCost"); ok {
		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return jsonio.BadRequest("creditCost must be a whole number")
		}
		p.CreditCost = &n
	}
	if v, ok := formValue(r, "isActive"); ok {
		b, err := cast.ToBoolE(strings.TrimSpace(v))
		if err != nil {
			return jsonio.BadRequest("isActive must be true or false")
		}
		p.IsActive = &b
	}
	if v, ok := formValue(r, "expiresAt"); ok && strings.TrimSpace(v) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
		if err != nil {
			return jsonio.BadRequest("expiresAt must be an RFC 3339 timestamp")
		}
		p.ExpiresAt = &t
	}
	return nil
}

func sanitizePatch(p models.VoucherPatch) models.VoucherPatch {
	p.Title = htmlsanitize.TextPtr(p.Title)
	p.Description = htmlsanitize.TextPtr(p.Description)
	if p.Code != nil {
		c := strings.TrimSpace(*p.Code)
		p.Code = &c
	}
	return p
}
