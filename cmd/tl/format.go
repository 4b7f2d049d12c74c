package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	ra "github.com/zulandar/threadline/internal/reportactions"
	"golang.org/x/term"
)

const (
	defaultWidth = 120
	// fixedColumns approximates the width taken by every column but MESSAGE.
	fixedColumns = 72
	minMessage   = 20
)

// terminalWidth returns the column count of w when it is a terminal, or
// defaultWidth.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// actionText is the one-line text shown for a. snap may be nil.
func actionText(snap *ra.Snapshot, a *ra.Action) string {
	var text string
	switch {
	case snap != nil && ra.IsMemberChange(a):
		text = snap.Formatter.MemberChangePlainText(a)
	case snap != nil && ra.IsActionableMentionWhisper(a):
		text = snap.Formatter.ActionableMentionWhisperMessage(a)
	default:
		text = ra.MessageText(a)
	}
	return strings.Join(strings.Fields(text), " ")
}

// printActions writes a newest-first slice as a table, oldest first when
// ascending is set. With a snapshot and report the MARK column flags the
// unread marker (new) and grouped rows (^).
func printActions(out io.Writer, snap *ra.Snapshot, report *ra.Report, actions []*ra.Action, ascending bool) {
	if len(actions) == 0 {
		fmt.Fprintln(out, "No actions found.")
		return
	}
	width := terminalWidth(out) - fixedColumns
	if width < minMessage {
		width = minMessage
	}

	offline := snap != nil && snap.Viewer.Offline
	var unread map[string]bool
	if snap != nil {
		unread = snap.UnreadMarkers(report)
	}
	lines := make([]string, len(actions))
	for i, a := range actions {
		var marks []string
		if unread[a.ID] {
			marks = append(marks, "new")
		}
		if ra.IsConsecutiveActionMadeByPreviousActor(actions, i, offline) {
			marks = append(marks, "^")
		}
		if ra.IsOptimistic(a) {
			marks = append(marks, "pending")
		}
		lines[i] = fmt.Sprintf("%s\t%s\t%d\t%s\t%s\t%s",
			a.ID, a.Created, a.ActorAccountID, a.Name, strings.Join(marks, ","), clip(actionText(snap, a), width))
	}
	if ascending {
		slices.Reverse(lines)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tACTOR\tACTION\tMARK\tMESSAGE")
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	w.Flush()
}
