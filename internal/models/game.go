package models

import "gorm.io/gorm"

// Game maps an internal record to the provider catalog entry used for
// launching. GameAPIID is the provider's catalog reference, not the launch
// UUID; the launch UUID is resolved at play time.
type Game struct {
	gorm.Model
	GameAPIID string `gorm:"uniqueIndex;not null"`
	Name      string
	Image     string
	Provider  string
	IsHotGame bool `gorm:"default:false;index"`
}
