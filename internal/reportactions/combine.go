package reportactions

// CombinedActions merges a one-transaction report's own actions with those of
// its transaction thread into a single newest-first stream. The thread's
// created action is dropped, as are the money requests whose only purpose
// was to spawn the thread. With no thread id and no thread actions the parent
// stream is returned unchanged.
func CombinedActions(parent []*Action, threadReportID string, thread []*Action, parentReport *Report) []*Action {
	if len(thread) == 0 && threadReportID == "" {
		return append([]*Action(nil), parent...)
	}

	selfDM := parentReport != nil && parentReport.ChatType == ChatTypeSelfDM

	merged := make([]*Action, 0, len(parent)+len(thread))
	merged = append(merged, parent...)
	for _, a := range thread {
		if a != nil && a.Name != NameCreated {
			merged = append(merged, a)
		}
	}

	kept := make([]*Action, 0, len(merged))
	for _, a := range merged {
		if a == nil {
			continue
		}
		if !IsMoneyRequest(a) {
			kept = append(kept, a)
			continue
		}
		t := iouType(a)
		if t == IOUCreate || IsSentMoney(a) {
			continue
		}
		if !selfDM && t == IOUTrack {
			continue
		}
		kept = append(kept, a)
	}
	return Sort(kept, true)
}

// OneTransactionThreadReportID returns the transaction thread of an IOU,
// expense or invoice report that holds exactly one money request, or "" when
// the report should be displayed in the standard multi-request view.
func OneTransactionThreadReportID(report *Report, actions []*Action, offline bool) string {
	if report == nil {
		return ""
	}
	switch report.Type {
	case ReportTypeIOU, ReportTypeExpense, ReportTypeInvoice:
	default:
		return ""
	}

	var requests []*Action
	for _, a := range actions {
		if !IsMoneyRequest(a) || a.ChildReportID == "" {
			continue
		}
		d := OriginalMessage(a)
		if d == nil || !oneTransactionIOUTypes[d.Type] {
			continue
		}
		// Deleted requests still count while they have a transaction, visible
		// replies, or an offline pending deletion.
		if d.IOUTransactionID != "" ||
			(IsMessageDeleted(a) && a.ChildVisibleActionCount > 0) ||
			(a.PendingAction == PendingDelete && offline) {
			requests = append(requests, a)
		}
	}
	if len(requests) != 1 {
		return ""
	}

	only := requests[0]
	if d := OriginalMessage(only); d != nil && d.Deleted != "" {
		return ""
	}
	if IsDeleted(only) && only.ChildVisibleActionCount == 0 {
		return ""
	}
	return only.ChildReportID
}
