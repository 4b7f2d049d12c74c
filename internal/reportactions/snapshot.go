package reportactions

// DBTimeZero is the oldest timestamp a snapshot can report.
const DBTimeZero = "1970-01-01 00:00:00.000"

// Snapshot is a read-only view of every known report and action. The store
// builds one per refresh; the engine only reads it.
type Snapshot struct {
	// Version identifies the data the snapshot was built from. Derived views
	// may be cached on (report id, Version).
	Version string

	Reports map[string]*Report
	Actions map[string]Collection

	Viewer    Viewer
	Formatter Formatter

	// LastMessageMaxLength caps last-message summaries. Zero uses
	// LastMessageTextMaxLength.
	LastMessageMaxLength int
}

// Report returns the report with the given ID, or nil.
func (s *Snapshot) Report(reportID string) *Report {
	if s == nil || reportID == "" {
		return nil
	}
	return s.Reports[reportID]
}

// ReportActions returns the action collection of a report. Unknown reports
// yield an empty collection.
func (s *Snapshot) ReportActions(reportID string) Collection {
	if s == nil || reportID == "" {
		return Collection{}
	}
	if c, ok := s.Actions[reportID]; ok && c != nil {
		return c
	}
	return Collection{}
}

// Action returns one action of a report, or nil.
func (s *Snapshot) Action(reportID, actionID string) *Action {
	return s.ReportActions(reportID)[actionID]
}

// SortedActions returns every action of a report ordered by Compare.
func (s *Snapshot) SortedActions(reportID string, descending bool) []*Action {
	return SortCollection(s.ReportActions(reportID), descending)
}

// SortedForDisplay is Viewer.SortedForDisplay on the report's collection.
func (s *Snapshot) SortedForDisplay(reportID string, includeInvisible bool) []*Action {
	return s.Viewer.SortedForDisplay(s.ReportActions(reportID), includeInvisible)
}

// ContinuousChain returns the gap-free display slice around anchorID. An
// empty anchor starts from the newest action. Gaps are detected over every
// action of the report, so hidden actions still link their neighbours; only
// visible ones are returned.
func (s *Snapshot) ContinuousChain(reportID, anchorID string) []*Action {
	chain := ContinuousChain(s.SortedForDisplay(reportID, true), anchorID)
	return s.visibleOnly(reportID, chain)
}

// visibleOnly keeps the actions of sorted that are visible under their
// collection key in the report.
func (s *Snapshot) visibleOnly(reportID string, sorted []*Action) []*Action {
	visible := make(map[string]bool)
	for k, a := range s.ReportActions(reportID) {
		if s.Viewer.ShouldBeVisible(a, k) {
			visible[a.ID] = true
		}
	}
	out := make([]*Action, 0, len(sorted))
	for _, a := range sorted {
		if visible[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

func (s *Snapshot) merged(reportID string, overrides Collection) Collection {
	c := s.ReportActions(reportID)
	if len(overrides) == 0 {
		return c
	}
	return c.Merge(overrides)
}

// LastVisibleAction returns the newest action of the report, with overrides
// merged on top, that may be shown as the conversation's last action.
func (s *Snapshot) LastVisibleAction(reportID string, overrides Collection) *Action {
	var visible []*Action
	for _, a := range s.merged(reportID, overrides).Values() {
		if s.Viewer.ShouldBeVisibleAsLastAction(a) {
			visible = append(visible, a)
		}
	}
	sorted := Sort(visible, true)
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// LastVisibleMessage summarizes a, or the report's last visible action when
// a is nil.
func (s *Snapshot) LastVisibleMessage(reportID string, overrides Collection, a *Action) LastVisibleMessage {
	if a == nil {
		a = s.LastVisibleAction(reportID, overrides)
	}
	return summarize(a, s.LastMessageMaxLength)
}

// HasVisibleActions reports whether the report has any content beyond its
// created action and task system messages.
func (s *Snapshot) HasVisibleActions(reportID string, overrides Collection) bool {
	for _, a := range s.merged(reportID, overrides).Values() {
		if !s.Viewer.ShouldBeVisibleAsLastAction(a) {
			continue
		}
		if !IsTask(a) && !IsCreated(a) {
			return true
		}
	}
	return false
}

// LastClosedAction returns the newest closed action of the report.
func (s *Snapshot) LastClosedAction(reportID string) *Action {
	return LastClosedAction(s.ReportActions(reportID))
}

// ParentReportAction returns the action a thread report hangs off, or nil.
func (s *Snapshot) ParentReportAction(report *Report) *Action {
	if report == nil || report.ParentReportID == "" || report.ParentReportActionID == "" {
		return nil
	}
	return s.Action(report.ParentReportID, report.ParentReportActionID)
}

// OneTransactionThreadReportID looks up the report and applies
// OneTransactionThreadReportID to its actions.
func (s *Snapshot) OneTransactionThreadReportID(reportID string) string {
	return OneTransactionThreadReportID(s.Report(reportID), s.ReportActions(reportID).Values(), s.Viewer.Offline)
}

// CombinedActions returns the report's display stream, merged with its
// transaction thread when the report holds a single money request.
func (s *Snapshot) CombinedActions(reportID string, includeInvisible bool) []*Action {
	parent := s.SortedForDisplay(reportID, includeInvisible)
	threadID := s.OneTransactionThreadReportID(reportID)
	var thread []*Action
	if threadID != "" {
		thread = s.SortedForDisplay(threadID, includeInvisible)
	}
	return CombinedActions(parent, threadID, thread, s.Report(reportID))
}

// IsActionableJoinRequestPending reports whether the report holds a join
// request nobody has answered yet.
func (s *Snapshot) IsActionableJoinRequestPending(reportID string) bool {
	for _, a := range s.SortedActions(reportID, false) {
		if !IsActionableJoinRequest(a) {
			continue
		}
		if d := OriginalMessage(a); d != nil && d.Choice != nil && *d.Choice == "" {
			return true
		}
	}
	return false
}

// HasRequestFromAccount reports whether accountID created a money request in
// the report.
func (s *Snapshot) HasRequestFromAccount(reportID string, accountID int64) bool {
	for _, a := range s.ReportActions(reportID) {
		if IsMoneyRequest(a) && a.ActorAccountID == accountID {
			return true
		}
	}
	return false
}

// LinkedTransactionID returns the transaction a money-request action refers
// to, or "".
func (s *Snapshot) LinkedTransactionID(reportID, actionID string) string {
	return LinkedTransactionID(s.Action(reportID, actionID))
}

// LinkedTransactionID returns the transaction ID of a money request, or "".
func LinkedTransactionID(a *Action) string {
	if !IsMoneyRequest(a) {
		return ""
	}
	if d := OriginalMessage(a); d != nil {
		return d.IOUTransactionID
	}
	return ""
}

// IOUActionForReportID finds the money request for transactionID in a
// report. The first match in key order wins.
func (s *Snapshot) IOUActionForReportID(reportID, transactionID string) *Action {
	if s.Report(reportID) == nil || transactionID == "" {
		return nil
	}
	for _, a := range s.ReportActions(reportID).Values() {
		if LinkedTransactionID(a) == transactionID {
			return a
		}
	}
	return nil
}

// ReportPreviewAction finds the preview in chatReportID that links to
// iouReportID.
func (s *Snapshot) ReportPreviewAction(chatReportID, iouReportID string) *Action {
	for _, a := range s.ReportActions(chatReportID).Values() {
		if IOUReportIDFromPreview(a) == iouReportID && iouReportID != "" {
			return a
		}
	}
	return nil
}

// IOUReportIDFromPreview returns the report a preview links to, or "" when a
// is not a report preview.
func IOUReportIDFromPreview(a *Action) string {
	if !IsReportPreview(a) {
		return ""
	}
	if d := OriginalMessage(a); d != nil {
		return d.LinkedReportID
	}
	return ""
}

// NumberOfMoneyRequests returns how many expenses a report preview covers.
func NumberOfMoneyRequests(preview *Action) int {
	if preview == nil {
		return 0
	}
	return preview.ChildMoneyRequestCount
}

// MostRecentLastModified returns the newest modification time across every
// settled action and report, used as the sync watermark. Pending actions are
// skipped since the server may know of newer messages than they imply.
func (s *Snapshot) MostRecentLastModified() string {
	latest := DBTimeZero
	if s == nil {
		return latest
	}
	for _, c := range s.Actions {
		for _, a := range c {
			if a == nil || a.PendingAction != PendingNone {
				continue
			}
			ts := a.LastModified
			if ts == "" {
				ts = a.Created
			}
			if ts >= latest {
				latest = ts
			}
		}
	}
	for _, r := range s.Reports {
		if r == nil {
			continue
		}
		ts := r.LastVisibleActionLastModified
		if ts == "" {
			ts = r.LastVisibleActionCreated
		}
		if ts != "" && ts >= latest {
			latest = ts
		}
	}
	return latest
}

// WasActionTakenByViewer reports whether the viewer is the action's actor.
func (s *Snapshot) WasActionTakenByViewer(a *Action) bool {
	return a != nil && a.ActorAccountID == s.Viewer.AccountID
}
