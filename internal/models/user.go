package models

import "time"

// User is a staff member signed in through OpenID Connect.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	OIDCID    string `gorm:"column:oidc_id;uniqueIndex;not null"` // OpenID Connect identifier
	Name      string
	Email     string
	CreatedAt time.Time
	LastLogin time.Time
}
