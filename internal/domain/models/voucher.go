// internal/domain/models/voucher.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Voucher is a promotional offer redeemable for credits. Code is unique
// across all vouchers when non-empty.
type Voucher struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title" validate:"required,max=200"`
	Description string     `bson:"description" json:"description" validate:"max=5000"`
	ImageURL    string     `bson:"imageUrl" json:"imageUrl"`
	CreditCost  int        `bson:"creditCost" json:"creditCost" validate:"gte=0"`
	Code        string     `bson:"code" json:"code" validate:"omitempty,max=64"`
	IsActive    bool       `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	ExpiresAt   *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

type VoucherPatch struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	CreditCost  *int       `json:"creditCost,omitempty" validate:"omitempty,gte=0"`
	Code        *string    `json:"code,omitempty" validate:"omitempty,max=64"`
	IsActive    *bool      `json:"isActive,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func (p VoucherPatch) Fields() bson.M {
	set := bson.M{}
	putString(set, "title", p.Title)
	putString(set, "description", p.Description)
	putString(set, "imageUrl", p.ImageURL)
	putString(set, "code", p.Code)
	if p.CreditCost != nil {
		set["creditCost"] = *p.CreditCost
	}
	if p.IsActive != nil {
		set["isActive"] = *p.IsActive
	}
	if p.ExpiresAt != nil {
		set["expiresAt"] = p.ExpiresAt.UTC()
	}
	return set
}

// UserVoucher is a voucher issued to a user by the consumer app.
type UserVoucher struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	VoucherID   string     `bson:"voucherId" json:"voucherId"`
	UserID      string     `bson:"userId" json:"userId"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	ImageURL    string     `bson:"imageUrl" json:"imageUrl"`
	Code        string     `bson:"code" json:"code"`
	PurchasedAt time.Time  `bson:"purchasedAt" json:"purchasedAt"`
	UsedAt      *time.Time `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	IsUsed      bool       `bson:"isUsed" json:"isUsed"`
}
