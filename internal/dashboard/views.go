package dashboard

import (
	"github.com/zulandar/threadline/internal/reportactions"
)

// ActionRow holds action data for display.
type ActionRow struct {
	ID               string `json:"id"`
	ReportID         string `json:"report_id"`
	ActionName       string `json:"action_name"`
	Created          string `json:"created"`
	ActorAccountID   int64  `json:"actor_account_id"`
	PreviousActionID string `json:"previous_action_id,omitempty"`
	ChildReportID    string `json:"child_report_id,omitempty"`
	Text             string `json:"text"`
	PendingAction    string `json:"pending_action,omitempty"`
	IsOptimistic     bool   `json:"is_optimistic,omitempty"`
	Unread           bool   `json:"unread,omitempty"`
	Grouped          bool   `json:"grouped,omitempty"`
}

// actionRows projects a newest-first slice of a report's actions into rows.
func actionRows(snap *reportactions.Snapshot, report *reportactions.Report, actions []*reportactions.Action) []ActionRow {
	rows := make([]ActionRow, len(actions))
	unread := snap.UnreadMarkers(report)
	for i, a := range actions {
		rows[i] = actionRow(snap, a)
		rows[i].Unread = unread[a.ID]
		rows[i].Grouped = reportactions.IsConsecutiveActionMadeByPreviousActor(actions, i, snap.Viewer.Offline)
	}
	return rows
}

func actionRow(snap *reportactions.Snapshot, a *reportactions.Action) ActionRow {
	return ActionRow{
		ID:               a.ID,
		ReportID:         a.ReportID,
		ActionName:       string(a.Name),
		Created:          a.Created,
		ActorAccountID:   a.ActorAccountID,
		PreviousActionID: a.PreviousActionID,
		ChildReportID:    a.ChildReportID,
		Text:             displayText(snap, a),
		PendingAction:    string(a.PendingAction),
		IsOptimistic:     reportactions.IsOptimistic(a),
	}
}

// displayText renders the text a conversation view shows for a. Member
// changes are spelled out from the directory rather than the stored html.
func displayText(snap *reportactions.Snapshot, a *reportactions.Action) string {
	switch {
	case reportactions.IsMemberChange(a):
		return snap.Formatter.MemberChangePlainText(a)
	case reportactions.IsActionableMentionWhisper(a):
		return snap.Formatter.ActionableMentionWhisperMessage(a)
	default:
		return reportactions.MessageText(a)
	}
}
