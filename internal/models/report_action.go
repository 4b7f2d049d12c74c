package models

import "time"

// ReportAction is one stored conversation event. Message, OriginalMessage,
// Errors and AttachmentInfo hold the raw JSON payloads; they are normalized
// when a snapshot is loaded, never on write. ActionKey is the collection key;
// it equals ActionID except for legacy entries keyed by sequence number.
type ReportAction struct {
	ReportID                string `gorm:"primaryKey;size:32"`
	ActionKey               string `gorm:"primaryKey;size:32"`
	ActionID                string `gorm:"size:32;not null;index"`
	ActionName              string `gorm:"size:64;not null;index"`
	Created                 string `gorm:"size:32;not null;index"`
	LastModified            string `gorm:"size:32"`
	PreviousActionID        string `gorm:"size:32"`
	ActorAccountID          int64  `gorm:"index"`
	DelegateAccountID       int64
	AdminAccountID          *int64
	SequenceNumber          *int64
	Message                 string `gorm:"type:text"`
	OriginalMessage         string `gorm:"type:text"`
	ChildReportID           string `gorm:"size:32;index"`
	ChildType               string `gorm:"size:16"`
	ChildVisibleActionCount int    `gorm:"default:0"`
	ChildMoneyRequestCount  int    `gorm:"default:0"`
	PendingAction           string `gorm:"size:8"`
	IsOptimistic            bool   `gorm:"default:false"`
	Errors                  string `gorm:"type:text"`
	Resolution              string `gorm:"size:32"`
	IsAttachment            *bool
	AttachmentInfo          string `gorm:"type:text"`
	CreatedAt               time.Time
	UpdatedAt               time.Time `gorm:"index"`
}
