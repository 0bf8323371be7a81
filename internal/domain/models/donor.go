// internal/domain/models/donor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Blood groups accepted for donors.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Contact preferences accepted for donors.
var ContactPreferences = []string{"phone", "email", "both", "none"}

type Donor struct {
	ID                string     `bson:"_id,omitempty" json:"id" csv:"id"`
	Name              string     `bson:"name" json:"name" csv:"name" validate:"required,max=200"`
	Email             string     `bson:"email,omitempty" json:"email,omitempty" csv:"email" validate:"omitempty,email"`
	ContactNumber     string     `bson:"contactNumber" json:"contactNumber" csv:"contact_number" validate:"required,max=40"`
	BloodGroup        string     `bson:"bloodGroup" json:"bloodGroup" csv:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Area              string     `bson:"area,omitempty" json:"area,omitempty" csv:"area" validate:"max=200"`
	City              string     `bson:"city" json:"city" csv:"city" validate:"required,max=200"`
	ContactPreference string     `bson:"contactPreference" json:"contactPreference" csv:"contact_preference" validate:"required,oneof=phone email both none"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt" csv:"created_at"`
	UpdatedAt         *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty" csv:"-"`
}

type DonorPatch struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	ContactNumber     *string `json:"contactNumber,omitempty" validate:"omitempty,max=40"`
	BloodGroup        *string `json:"bloodGroup,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Area              *string `json:"area,omitempty" validate:"omitempty,max=200"`
	City              *string `json:"city,omitempty" validate:"omitempty,max=200"`
	ContactPreference *string `json:"contactPreference,omitempty" validate:"omitempty,oneof=phone email both none"`
}

func (p DonorPatch) Fields() bson.M {
	set := bson.M{}
	putString(set, "name", p.Name)
	putString(set, "email", p.Email)
	putString(set, "contactNumber", p.ContactNumber)
	putString(set, "bloodGroup", p.BloodGroup)
	putString(set, "area", p.Area)
	putString(set, "city", p.City)
	putString(set, "contactPreference", p.ContactPreference)
	return set
}
