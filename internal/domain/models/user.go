// internal/domain/models/user.go
package models

import "time"

// User is an app account registered by the mobile client. The admin
// surface reads and deletes these records but never writes them, so
// decoding is lenient about field types.
type User struct {
	ID                     string     `mapstructure:"_id" json:"id"`
	Name                   string     `mapstructure:"name" json:"name"`
	Email                  string     `mapstructure:"email" json:"email"`
	Number                 string     `mapstructure:"number" json:"number,omitempty"`
	Gender                 string     `mapstructure:"gender" json:"gender,omitempty"`
	UserType               string     `mapstructure:"userType" json:"userType,omitempty"`
	Institution            string     `mapstructure:"institution" json:"institution,omitempty"`
	Credits                int        `mapstructure:"credits" json:"credits"`
	NeedsProfileCompletion bool       `mapstructure:"needsProfileCompletion" json:"needsProfileCompletion"`
	DisplayImage           string     `mapstructure:"displayImage" json:"displayImage,omitempty"`
	Bookmarks              []string   `mapstructure:"bookmarks" json:"bookmarks,omitempty"`
	CreatedAt              *time.Time `mapstructure:"createdAt" json:"createdAt,omitempty"`
}
