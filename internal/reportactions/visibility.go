package reportactions

import (
	"log"
	"strconv"
	"strings"
)

// Viewer is who is looking at the conversation and under what conditions.
type Viewer struct {
	AccountID      int64
	Offline        bool
	EnvironmentURL string

	// Logger receives notes about filtered deprecated actions. Nil disables
	// them.
	Logger *log.Logger
}

func (v Viewer) logf(format string, args ...any) {
	if v.Logger != nil {
		v.Logger.Printf(format, args...)
	}
}

// deprecationReason explains why a is deprecated, or returns "" when it is
// not. A nil action is deprecated.
func deprecationReason(a *Action, key string) string {
	if a == nil {
		return "missing"
	}
	// Actions still keyed by their legacy sequence number predate stable IDs.
	if a.SequenceNumber != nil && strconv.FormatInt(*a.SequenceNumber, 10) == key {
		return "keyed by sequence number"
	}
	if deprecatedNames.has(a.Name) {
		return "retired kind " + string(a.Name)
	}
	return ""
}

// IsDeprecated reports whether a is keyed by its legacy sequence number or
// belongs to a retired kind.
func IsDeprecated(a *Action, key string) bool {
	return deprecationReason(a, key) != ""
}

func (v Viewer) isDeprecated(a *Action, key string) bool {
	reason := deprecationReason(a, key)
	if reason == "" {
		return false
	}
	if a != nil {
		v.logf("reportactions: filtered deprecated action %s in report %s: %s", a.ID, a.ReportID, reason)
	}
	return true
}

// ShouldBeVisible reports whether the action stored under key may be shown
// in the conversation.
func (v Viewer) ShouldBeVisible(a *Action, key string) bool {
	if a == nil {
		return false
	}
	if v.isDeprecated(a, key) {
		return false
	}
	if !IsSupported(a.Name) {
		return false
	}
	// Closed and marked-reimbursed are surfaced elsewhere in the UI.
	if a.Name == NameClosed || a.Name == NameMarkedReimbursed {
		return false
	}
	if IsWhisperTargetedToOthers(a, v.AccountID) {
		return false
	}
	if IsPendingRemove(a) && a.ChildVisibleActionCount == 0 {
		return false
	}
	if IsTripPreview(a) {
		return true
	}
	return !IsDeleted(a) || a.PendingAction != PendingNone || IsDeletedParent(a) || IsReversedTransaction(a)
}

// ShouldBeVisibleAsLastAction reports whether a may be used as the
// conversation's last action in lists and previews.
func (v Viewer) ShouldBeVisibleAsLastAction(a *Action) bool {
	if a == nil {
		return false
	}
	if len(a.Errors) > 0 {
		return false
	}
	return v.ShouldBeVisible(a, a.ID) &&
		!(IsWhisper(a) && !IsReportPreview(a) && !IsMoneyRequest(a)) &&
		!(IsDeleted(a) && !IsDeletedParent(a)) &&
		!IsResolvedActionableTrackExpense(a)
}

// ShouldHideNewMarker reports whether the unread marker must not be drawn
// above a. Pending deletions are hidden while online.
func (v Viewer) ShouldHideNewMarker(a *Action) bool {
	if a == nil {
		return true
	}
	return !v.Offline && a.PendingAction == PendingDelete
}

// FilterOutDeprecated returns the non-deprecated actions of c in key order.
func FilterOutDeprecated(c Collection) []*Action {
	out := make([]*Action, 0, len(c))
	for _, k := range sortedKeys(c) {
		if !IsDeprecated(c[k], k) {
			out = append(out, c[k])
		}
	}
	return out
}

// SortedForDisplay returns the actions ready for the conversation view,
// newest first. Unless includeInvisible is set, only visible actions are kept.
func (v Viewer) SortedForDisplay(c Collection, includeInvisible bool) []*Action {
	out := make([]*Action, 0, len(c))
	for _, k := range sortedKeys(c) {
		a := c[k]
		if a == nil {
			continue
		}
		if !includeInvisible && !v.ShouldBeVisible(a, k) {
			continue
		}
		out = append(out, v.withBaseURL(a))
	}
	return Sort(out, true)
}

// withBaseURL returns a copy of a policy-change-log action with the server's
// %baseURL placeholder replaced. Other actions are returned as is.
func (v Viewer) withBaseURL(a *Action) *Action {
	if !IsPolicyChangeLog(a) || a.Message.Form != FormList || len(a.Message.Fragments) == 0 {
		return a
	}
	cp := *a
	cp.Message.Fragments = append([]Fragment(nil), a.Message.Fragments...)
	cp.Message.Fragments[0].HTML = strings.Replace(cp.Message.Fragments[0].HTML, "%baseURL", v.EnvironmentURL, 1)
	return &cp
}

// LastClosedAction returns the newest closed action, or nil when the
// collection has none.
func LastClosedAction(c Collection) *Action {
	sorted := Sort(FilterOutDeprecated(c), false)
	for i := len(sorted) - 1; i >= 0; i-- {
		if IsClosed(sorted[i]) {
			return sorted[i]
		}
	}
	return nil
}

// FirstVisibleActionID returns the ID of the oldest content action in a
// newest-first slice. The oldest entry is always the created action, so this
// is the second-to-last entry once deleted actions without visible children
// are skipped (offline, every action stays on screen).
func FirstVisibleActionID(sorted []*Action, offline bool) string {
	kept := make([]*Action, 0, len(sorted))
	for _, a := range sorted {
		if a == nil {
			continue
		}
		if offline || !IsDeleted(a) || a.ChildVisibleActionCount > 0 {
			kept = append(kept, a)
		}
	}
	if len(kept) < 2 {
		return ""
	}
	return kept[len(kept)-2].ID
}
