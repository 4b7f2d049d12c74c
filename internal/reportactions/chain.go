package reportactions

// shouldIgnoreGap reports whether a broken back-reference between two
// adjacent actions is expected rather than a sign of missing history.
// current is the action being extended from and next its neighbour.
func shouldIgnoreGap(current, next *Action) bool {
	if current == nil || next == nil {
		return false
	}
	return IsOptimistic(current) ||
		IsOptimistic(next) ||
		len(WhisperedTo(current)) > 0 ||
		len(WhisperedTo(next)) > 0 ||
		current.Name == NameRoomInviteToRoom ||
		next.Name == NameCreated ||
		next.Name == NameClosed
}

// ContinuousChain returns the largest gap-free run of sorted (newest first)
// that contains the anchor. With an empty anchorID the first non-optimistic
// action anchors the run; when every action is optimistic the whole input is
// returned. An anchorID that is not present yields an empty slice.
func ContinuousChain(sorted []*Action, anchorID string) []*Action {
	index := -1
	for i, a := range sorted {
		if anchorID != "" {
			if a.ID == anchorID {
				index = i
				break
			}
			continue
		}
		if !IsOptimistic(a) {
			index = i
			break
		}
	}

	if index == -1 {
		if anchorID != "" {
			return []*Action{}
		}
		return append([]*Action(nil), sorted...)
	}

	start, end := index, index

	// Toward older actions.
	for end < len(sorted)-1 {
		cur, older := sorted[end], sorted[end+1]
		if cur.PreviousActionID != older.ID && !shouldIgnoreGap(cur, older) {
			break
		}
		end++
	}

	// Toward newer actions.
	for start > 0 {
		cur, newer := sorted[start], sorted[start-1]
		if cur.ID != newer.PreviousActionID && !shouldIgnoreGap(cur, newer) {
			break
		}
		start--
	}

	return append([]*Action(nil), sorted[start:end+1]...)
}
