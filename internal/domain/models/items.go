package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Medicine belongs to a medicine category and one of its sub-categories.
// The name fields are denormalized copies of the referenced records.
type Medicine struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Name            string     `bson:"name" json:"name" validate:"required,max=200"`
	Company         string     `bson:"company,omitempty" json:"company,omitempty" validate:"max=200"`
	Composition     string     `bson:"composition,omitempty" json:"composition,omitempty" validate:"max=5000"`
	CategoryID      string     `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	CategoryName    string     `bson:"categoryName,omitempty" json:"categoryName,omitempty"`
	SubCategoryID   string     `bson:"subCategoryId,omitempty" json:"subCategoryId,omitempty"`
	SubCategoryName string     `bson:"subCategoryName,omitempty" json:"subCategoryName,omitempty"`
	ImagesURL       []string   `bson:"images_url" json:"images_url" validate:"dive,url"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type MedicinePatch struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Company         *string   `json:"company,omitempty" validate:"omitempty,max=200"`
	Composition     *string   `json:"composition,omitempty" validate:"omitempty,max=5000"`
	CategoryID      *string   `json:"categoryId,omitempty"`
	CategoryName    *string   `json:"categoryName,omitempty"`
	SubCategoryID   *string   `json:"subCategoryId,omitempty"`
	SubCategoryName *string   `json:"subCategoryName,omitempty"`
	ImagesURL       *[]string `json:"images_url,omitempty" validate:"omitempty,dive,url"`
}

func (p MedicinePatch) Fields() bson.M {
	set := bson.M{}
	putString(set, "name", p.Name)
	putString(set, "company", p.Company)
	putString(set, "composition", p.Composition)
	putString(set, "categoryId", p.CategoryID)
	putString(set, "categoryName", p.CategoryName)
	putString(set, "subCategoryId", p.SubCategoryID)
	putString(set, "subCategoryName", p.SubCategoryName)
	putStrings(set, "images_url", p.ImagesURL)
	return set
}

// Template is the shape shared by prescription and lab report templates:
// a titled record filed under one category.
type Template struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Title        string     `bson:"title" json:"title" validate:"required,max=200"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty" validate:"max=5000"`
	CategoryID   string     `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	CategoryName string     `bson:"categoryName,omitempty" json:"categoryName,omitempty"`
	ImagesURL    []string   `bson:"images_url" json:"images_url" validate:"dive,url"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type TemplatePatch struct {
	Title        *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	CategoryID   *string   `json:"categoryId,omitempty"`
	CategoryName *string   `json:"categoryName,omitempty"`
	ImagesURL    *[]string `json:"images_url,omitempty" validate:"omitempty,dive,url"`
}

func (p TemplatePatch) Fields() bson.M {
	set := bson.M{}
	putString(set, "title", p.Title)
	putString(set, "description", p.Description)
	putString(set, "categoryId", p.CategoryID)
	putString(set, "categoryName", p.CategoryName)
	putStrings(set, "images_url", p.ImagesURL)
	return set
}

// Prescription is a prescription template filed under a category.
type Prescription Template

type PrescriptionPatch = TemplatePatch

// LabReport is a lab report template filed under a category.
type LabReport Template

type LabReportPatch = TemplatePatch

func putStrings(set bson.M, key string, v *[]string) {
	if v != nil {
		list := *v
		if list == nil {
			list = []string{}
		}
		set[key] = list
	}
}
