package reportactions

import (
	"slices"
	"testing"
)

const (
	t0 = "2024-03-01 09:00:00.000"
	t1 = "2024-03-01 09:01:00.000"
	t2 = "2024-03-01 09:04:00.000"
	t3 = "2024-03-01 09:14:00.000"
)

func comment(id, created string, actor int64) *Action {
	return &Action{
		ID:             id,
		ReportID:       "100",
		Name:           NameAddComment,
		Created:        created,
		ActorAccountID: actor,
		Message:        ListMessage(Fragment{Type: "COMMENT", HTML: "hello " + id, Text: "hello " + id}),
	}
}

func created(id, at string) *Action {
	return &Action{
		ID:       id,
		ReportID: "100",
		Name:     NameCreated,
		Created:  at,
		Message:  ListMessage(Fragment{Type: "TEXT", Text: "created"}),
	}
}

func moneyRequest(id, at string, t IOUType, childReportID, transactionID string) *Action {
	return &Action{
		ID:            id,
		ReportID:      "100",
		Name:          NameIOU,
		Created:       at,
		ChildReportID: childReportID,
		Message:       ListMessage(Fragment{Type: "COMMENT", HTML: "$12.00 expense", Text: "$12.00 expense"}),
		Original:      &Details{Type: t, IOUTransactionID: transactionID},
	}
}

// chained links each action's PreviousActionID to the next one in the
// newest-first slice.
func chained(desc ...*Action) []*Action {
	for i := 0; i < len(desc)-1; i++ {
		desc[i].PreviousActionID = desc[i+1].ID
	}
	return desc
}

func ids(actions []*Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []*Action, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if g := ids(got); !slices.Equal(g, want) {
		t.Errorf("ids = %v, want %v", g, want)
	}
}

func collectionOf(actions ...*Action) Collection {
	c := make(Collection, len(actions))
	for _, a := range actions {
		c[a.ID] = a
	}
	return c
}

func ptr[T any](v T) *T { return &v }
