package reportactions

import (
	"maps"
	"slices"
)

// Compare orders a before b by creation time, then created-first,
// report-preview-last, then ID. The result is negated when descending.
func Compare(a, b *Action, descending bool) int {
	dir := 1
	if descending {
		dir = -1
	}
	if a.Created != b.Created {
		if a.Created < b.Created {
			return -dir
		}
		return dir
	}
	if a.Name != b.Name {
		if a.Name == NameCreated || b.Name == NameCreated {
			if a.Name == NameCreated {
				return -dir
			}
			return dir
		}
		if a.Name == NameReportPreview || b.Name == NameReportPreview {
			if a.Name == NameReportPreview {
				return dir
			}
			return -dir
		}
	}
	switch {
	case a.ID < b.ID:
		return -dir
	case a.ID > b.ID:
		return dir
	}
	return 0
}

// Sort returns a new slice holding the non-nil actions ordered by Compare.
// The input is left untouched.
func Sort(actions []*Action, descending bool) []*Action {
	out := make([]*Action, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b *Action) int {
		return Compare(a, b, descending)
	})
	return out
}

// SortCollection sorts the values of a collection.
func SortCollection(c Collection, descending bool) []*Action {
	return Sort(c.Values(), descending)
}

// Latest returns the newest action of a batch, or nil for an empty batch.
func Latest(actions []*Action) *Action {
	sorted := Sort(actions, false)
	if len(sorted) == 0 {
		return nil
	}
	return sorted[len(sorted)-1]
}

// MostRecentIOURequestActionID returns the ID of the newest create, split
// or track money request, or "" when there is none.
func MostRecentIOURequestActionID(actions []*Action) string {
	var requests []*Action
	for _, a := range actions {
		if !IsMoneyRequest(a) {
			continue
		}
		if requestIOUTypes[iouType(a)] {
			requests = append(requests, a)
		}
	}
	if latest := Latest(requests); latest != nil {
		return latest.ID
	}
	return ""
}

func sortedKeys(c Collection) []string {
	return slices.Sorted(maps.Keys(c))
}
