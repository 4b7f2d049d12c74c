package reportactions

import "testing"

func TestOneTransactionThreadReportID(t *testing.T) {
	iouReport := &Report{ReportID: "100", Type: ReportTypeIOU}

	tests := []struct {
		name    string
		report  *Report
		actions func() []*Action
		offline bool
		want    string
	}{
		{"single create request", iouReport, func() []*Action {
			return []*Action{created("1", t0), moneyRequest("2", t1, IOUCreate, "child", "tx1")}
		}, false, "child"},
		{"deleted without replies", iouReport, func() []*Action {
			a := moneyRequest("2", t1, IOUCreate, "child", "tx1")
			a.Message = ListMessage()
			return []*Action{created("1", t0), a}
		}, false, ""},
		{"deleted parent with replies and no transaction", iouReport, func() []*Action {
			a := moneyRequest("2", t1, IOUCreate, "child", "")
			a.Message.Fragments[0].Deleted = true
			a.Message.Fragments[0].IsDeletedParentAction = true
			a.ChildVisibleActionCount = 2
			return []*Action{a}
		}, false, "child"},
		{"details marked deleted", iouReport, func() []*Action {
			a := moneyRequest("2", t1, IOUCreate, "child", "tx1")
			a.Original.Deleted = "2024-03-01 09:03:00.000"
			return []*Action{a}
		}, false, ""},
		{"two requests", iouReport, func() []*Action {
			return []*Action{
				moneyRequest("2", t1, IOUCreate, "child", "tx1"),
				moneyRequest("3", t2, IOUTrack, "child2", "tx2"),
			}
		}, false, ""},
		{"request without thread", iouReport, func() []*Action {
			return []*Action{moneyRequest("2", t1, IOUCreate, "", "tx1")}
		}, false, ""},
		{"pending delete counts offline", &Report{ReportID: "100", Type: ReportTypeExpense}, func() []*Action {
			a := moneyRequest("2", t1, IOUCreate, "child", "")
			a.PendingAction = PendingDelete
			return []*Action{a}
		}, true, "child"},
		{"pending delete ignored online", &Report{ReportID: "100", Type: ReportTypeExpense}, func() []*Action {
			a := moneyRequest("2", t1, IOUCreate, "child", "")
			a.PendingAction = PendingDelete
			return []*Action{a}
		}, false, ""},
		{"chat report", &Report{ReportID: "100", Type: ReportTypeChat}, func() []*Action {
			return []*Action{moneyRequest("2", t1, IOUCreate, "child", "tx1")}
		}, false, ""},
		{"unknown report", nil, func() []*Action {
			return []*Action{moneyRequest("2", t1, IOUCreate, "child", "tx1")}
		}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OneTransactionThreadReportID(tt.report, tt.actions(), tt.offline); got != tt.want {
				t.Errorf("OneTransactionThreadReportID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCombinedActions(t *testing.T) {
	parent := []*Action{
		comment("p3", t3, 1),
		moneyRequest("p2", t1, IOUCreate, "thread", "tx1"),
		created("p1", t0),
	}
	thread := []*Action{
		comment("t2", t2, 2),
		created("t1", t1),
	}

	got := CombinedActions(parent, "thread", thread, &Report{ReportID: "100", Type: ReportTypeIOU})
	assertIDs(t, got, "p3", "t2", "p1")

	// Filtering the combined stream must not bring back the thread's created
	// action.
	v := Viewer{AccountID: 1}
	createdCount := 0
	for _, a := range got {
		if v.ShouldBeVisible(a, a.ID) && IsCreated(a) {
			createdCount++
		}
	}
	if createdCount != 1 {
		t.Errorf("visible created actions = %d, want 1", createdCount)
	}
}

func TestCombinedActions_TrackKeptInSelfDM(t *testing.T) {
	parent := []*Action{
		moneyRequest("p3", t2, IOUTrack, "thread", "tx1"),
		comment("p2", t1, 1),
		created("p1", t0),
	}
	sent := moneyRequest("t3", t3, IOUPay, "", "tx2")
	sent.Original.HasIOUDetails = true
	thread := []*Action{sent, created("t1", t0)}

	assertIDs(t, CombinedActions(parent, "thread", thread, &Report{ChatType: ChatTypeSelfDM}), "p3", "p2", "p1")
	assertIDs(t, CombinedActions(parent, "thread", thread, &Report{}), "p2", "p1")
}

func TestCombinedActions_NoThread(t *testing.T) {
	parent := []*Action{moneyRequest("p2", t1, IOUCreate, "", "tx1"), created("p1", t0)}

	got := CombinedActions(parent, "", nil, nil)
	assertIDs(t, got, "p2", "p1")

	got[0] = nil
	if parent[0] == nil {
		t.Error("CombinedActions result aliases its input")
	}
}
