package reportactions

// IsUnread reports whether a was created after lastReadTime. With no read
// time every action except the created one is unread.
func IsUnread(a *Action, lastReadTime string) bool {
	if lastReadTime == "" {
		return !IsCreated(a)
	}
	return a != nil && a.Created != "" && lastReadTime < a.Created
}

// UnreadMarkers returns the IDs of the report's actions that start an unread
// run: unread actions whose older neighbour is read. The report is sorted
// once, so views can mark every row from one call.
func (s *Snapshot) UnreadMarkers(report *Report) map[string]bool {
	markers := make(map[string]bool)
	if report == nil {
		return markers
	}
	prevUnread := false
	for i, a := range s.SortedActions(report.ReportID, false) {
		unread := IsUnread(a, report.LastReadTime)
		if unread && (i == 0 || !prevUnread) {
			markers[a.ID] = true
		}
		prevUnread = unread
	}
	return markers
}

// IsCurrentActionUnread reports whether a is the oldest unread action of
// the report, where the new-messages marker belongs.
func (s *Snapshot) IsCurrentActionUnread(report *Report, a *Action) bool {
	if report == nil || a == nil {
		return false
	}
	return s.UnreadMarkers(report)[a.ID]
}
