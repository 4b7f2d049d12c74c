package models

import "time"

// Report is a conversation: a chat, an expense or IOU report, or a thread
// hanging off another report's action.
type Report struct {
	ReportID                      string `gorm:"primaryKey;size:32"`
	Type                          string `gorm:"size:16;index"`
	ChatType                      string `gorm:"size:32"`
	LastReadTime                  string `gorm:"size:32"`
	ParentReportID                string `gorm:"size:32;index"`
	ParentReportActionID          string `gorm:"size:32"`
	LastVisibleActionCreated      string `gorm:"size:32"`
	LastVisibleActionLastModified string `gorm:"size:32"`
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}
