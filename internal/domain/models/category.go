package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Category groups items of one domain.
type Category struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Name        string     `bson:"name" json:"name" validate:"required,max=200"`
	Description string     `bson:"description,omitempty" json:"description,omitempty" validate:"max=5000"`
	ImageURL    string     `bson:"image_url,omitempty" json:"image_url,omitempty" validate:"omitempty,url"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CategoryPatch is a merge-patch; nil fields are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func (p CategoryPatch) Fields() bson.M {
	set := bson.M{}
	putString(set, "name", p.Name)
	putString(set, "description", p.Description)
	putString(set, "image_url", p.ImageURL)
	return set
}

// SubCategory is nested under exactly one category. ParentCategoryName is
// copied from the parent when the sub-category is created.
type SubCategory struct {
	ID                 string     `bson:"_id,omitempty" json:"id"`
	Name               string     `bson:"name" json:"name" validate:"required,max=200"`
	Description        string     `bson:"description,omitempty" json:"description,omitempty" validate:"max=5000"`
	ImageURL           string     `bson:"image_url,omitempty" json:"image_url,omitempty" validate:"omitempty,url"`
	ParentCategoryID   string     `bson:"parentCategoryId" json:"parentCategoryId"`
	ParentCategoryName string     `bson:"parentCategoryName,omitempty" json:"parentCategoryName,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type SubCategoryPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func (p SubCategoryPatch) Fields() bson.M {
	set := bson.M{}
	putString(set, "name", p.Name)
	putString(set, "description", p.Description)
	putString(set, "image_url", p.ImageURL)
	return set
}

func putString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
