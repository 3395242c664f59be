package models

import "time"

// User is the owner of pensions. There is no self-service registration; the
// initial user is seeded from configuration.
type User struct {
	Base
	Username            string     `gorm:"uniqueIndex;not null" json:"username"`
	Password            string     `gorm:"not null" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
	Pensions            []Pension  `gorm:"foreignKey:UserID" json:"pensions,omitempty"`
}
