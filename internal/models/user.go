package models

import (
	"time"

	"github.com/google/uuid"
)

// PremiumFeatures are independent entitlements; each only takes effect
// while the user is premium.
type PremiumFeatures struct {
	UnlimitedSwipes bool `json:"unlimitedSwipes" gorm:"default:false"`
	VerifiedLabel   bool `json:"verifiedLabel" gorm:"default:false"`
}

type User struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username        string          `json:"username" gorm:"uniqueIndex;not null"`
	Email           string          `json:"email" gorm:"uniqueIndex;not null"`
	Password        string          `json:"-" gorm:"not null"`
	IsPremium       bool            `json:"isPremium" gorm:"default:false"`
	PremiumFeatures PremiumFeatures `json:"premiumFeatures" gorm:"embedded;embeddedPrefix:premium_"`
	SwipedProfiles  []SwipeRecord   `json:"swipedProfiles" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	LastSwipeDate   *time.Time      `json:"lastSwipeDate"`
	PhotoKey        string          `json:"-"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
	LastLogin       *time.Time      `json:"lastLogin"`
}

// HasUnlimitedSwipes reports whether the daily swipe cap is lifted.
func (u *User) HasUnlimitedSwipes() bool {
	return u.IsPremium && u.PremiumFeatures.UnlimitedSwipes
}

// IsVerified reports whether the verified label is shown to other users.
func (u *User) IsVerified() bool {
	return u.IsPremium && u.PremiumFeatures.VerifiedLabel
}
