package reportactions

import (
	"time"
)

// GroupingWindow is the longest gap between two comments by the same actor
// that still renders them as one group.
const GroupingWindow = 5 * time.Minute

// createdLayouts are the timestamp shapes accepted for Action.Created.
var createdLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// ParseCreated parses an action timestamp. The zero time is returned for
// unparseable input.
func ParseCreated(s string) time.Time {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FindPreviousAction returns the action displayed just before index in a
// newest-first slice. Pending deletions are skipped unless offline, where
// they are still on screen.
func FindPreviousAction(actions []*Action, index int, offline bool) *Action {
	for i := index + 1; i < len(actions); i++ {
		a := actions[i]
		if a == nil {
			continue
		}
		if offline || a.PendingAction != PendingDelete {
			return a
		}
	}
	return nil
}

// IsConsecutiveActionMadeByPreviousActor reports whether the action at index
// should be grouped under the previous action's author header.
func IsConsecutiveActionMadeByPreviousActor(actions []*Action, index int, offline bool) bool {
	if index < 0 || index >= len(actions) {
		return false
	}
	current := actions[index]
	previous := FindPreviousAction(actions, index, offline)
	if current == nil || previous == nil {
		return false
	}

	if ParseCreated(current.Created).Sub(ParseCreated(previous.Created)) > GroupingWindow {
		return false
	}
	if IsCreated(previous) {
		return false
	}
	if IsRenamed(previous) || IsRenamed(current) {
		return false
	}
	if previous.DelegateAccountID != current.DelegateAccountID {
		return false
	}
	if IsReportPreview(previous) != IsReportPreview(current) {
		return false
	}

	if IsSubmitted(current) {
		return (current.AdminAccountID != nil && *current.AdminAccountID == previous.ActorAccountID) ||
			sameAccount(current.AdminAccountID, previous.AdminAccountID)
	}
	if IsSubmitted(previous) {
		if previous.AdminAccountID != nil {
			return current.ActorAccountID == *previous.AdminAccountID
		}
		return current.ActorAccountID == previous.ActorAccountID
	}
	return current.ActorAccountID == previous.ActorAccountID
}

// sameAccount compares optional account IDs. Two absent IDs are equal.
func sameAccount(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
