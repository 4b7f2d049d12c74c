package store

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/zulandar/threadline/internal/models"
	"github.com/zulandar/threadline/internal/reportactions"
)

// recordFromRow rebuilds the wire record a stored row was written from.
func recordFromRow(row models.ReportAction) (reportactions.Record, error) {
	r := reportactions.Record{
		Key:              row.ActionKey,
		ID:               reportactions.FlexString(row.ActionID),
		ReportID:         reportactions.FlexString(row.ReportID),
		ActionName:       row.ActionName,
		Created:          row.Created,
		LastModified:     row.LastModified,
		PreviousActionID: reportactions.FlexString(row.PreviousActionID),
		ActorAccountID:   row.ActorAccountID,
		DelegateID:       row.DelegateAccountID,
		AdminAccountID:   row.AdminAccountID,
		SequenceNumber:   row.SequenceNumber,
		Message:          rawJSON(row.Message),
		OriginalMessage:  rawJSON(row.OriginalMessage),
		ChildReportID:    reportactions.FlexString(row.ChildReportID),
		ChildType:        row.ChildType,
		ChildVisible:     row.ChildVisibleActionCount,
		ChildMoneyReqs:   row.ChildMoneyRequestCount,
		PendingAction:    row.PendingAction,
		IsOptimistic:     row.IsOptimistic,
		Resolution:       row.Resolution,
		IsAttachment:     row.IsAttachment,
		AttachmentInfo:   rawJSON(row.AttachmentInfo),
	}
	if row.Errors != "" {
		if err := json.Unmarshal([]byte(row.Errors), &r.Errors); err != nil {
			return r, fmt.Errorf("store: action %s/%s errors: %w", row.ReportID, row.ActionKey, err)
		}
	}
	return r, nil
}

// rowFromRecord flattens a wire record into a storable row of reportID.
func rowFromRecord(reportID string, r reportactions.Record) (models.ReportAction, error) {
	key := r.Key
	if key == "" {
		key = string(r.ID)
	}
	row := models.ReportAction{
		ReportID:                reportID,
		ActionKey:               key,
		ActionID:                string(r.ID),
		ActionName:              r.ActionName,
		Created:                 r.Created,
		LastModified:            r.LastModified,
		PreviousActionID:        string(r.PreviousActionID),
		ActorAccountID:          r.ActorAccountID,
		DelegateAccountID:       r.DelegateID,
		AdminAccountID:          r.AdminAccountID,
		SequenceNumber:          r.SequenceNumber,
		Message:                 string(r.Message),
		OriginalMessage:         string(r.OriginalMessage),
		ChildReportID:           string(r.ChildReportID),
		ChildType:               r.ChildType,
		ChildVisibleActionCount: r.ChildVisible,
		ChildMoneyRequestCount:  r.ChildMoneyReqs,
		PendingAction:           r.PendingAction,
		IsOptimistic:            r.IsOptimistic,
		Resolution:              r.Resolution,
		IsAttachment:            r.IsAttachment,
		AttachmentInfo:          string(r.AttachmentInfo),
	}
	if len(r.Errors) > 0 {
		b, err := json.Marshal(r.Errors)
		if err != nil {
			return row, fmt.Errorf("store: action %s errors: %w", r.ID, err)
		}
		row.Errors = string(b)
	}
	return row, nil
}

func reportFromRow(row models.Report) *reportactions.Report {
	return &reportactions.Report{
		ReportID:                      row.ReportID,
		Type:                          row.Type,
		ChatType:                      row.ChatType,
		LastReadTime:                  row.LastReadTime,
		ParentReportID:                row.ParentReportID,
		ParentReportActionID:          row.ParentReportActionID,
		LastVisibleActionCreated:      row.LastVisibleActionCreated,
		LastVisibleActionLastModified: row.LastVisibleActionLastModified,
	}
}

func rawJSON(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}
