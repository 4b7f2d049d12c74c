package models

import "time"

// PersonalDetail is the display information for one account.
type PersonalDetail struct {
	AccountID   int64  `gorm:"primaryKey;autoIncrement:false"`
	DisplayName string `gorm:"size:128"`
	Login       string `gorm:"size:128"`
	UpdatedAt   time.Time
}
