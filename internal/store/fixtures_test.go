package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/threadline/internal/models"
	"github.com/zulandar/threadline/internal/reportactions"
)

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture([]byte(`
people:
  - accountID: 1
    displayName: Alice
reports:
  - reportID: 100
    type: chat
    actions:
      - reportActionID: 7
        actionName: ADDCOMMENT
        created: "2024-03-01 09:00:00.000"
        message: [{html: hi, text: hi}]
`))
	if err != nil {
		t.Fatalf("ParseFixture: %v", err)
	}
	if len(f.People) != 1 || f.People[0].DisplayName != "Alice" {
		t.Errorf("People = %+v", f.People)
	}
	if len(f.Reports) != 1 || f.Reports[0].ReportID != "100" {
		t.Fatalf("Reports = %+v", f.Reports)
	}
	records, err := reportactions.DecodeRecords(f.Reports[0].Actions)
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(records) != 1 || records[0].ID != "7" {
		t.Errorf("records = %+v", records)
	}
}

func TestParseFixture_Empty(t *testing.T) {
	f, err := ParseFixture(nil)
	if err != nil {
		t.Fatalf("ParseFixture(nil): %v", err)
	}
	if len(f.Reports) != 0 || len(f.People) != 0 {
		t.Errorf("empty fixture = %+v", f)
	}
}

func TestParseFixture_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad yaml", "reports: [", "store: parse fixture"},
		{"missing report id", "reports:\n  - type: chat\n", "has no reportID"},
		{"wrong shape", "reports: 5\n", "store: decode fixture"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestImportFixtures_Counts(t *testing.T) {
	gdb := openTestDB(t)
	stats := seedFixture(t, gdb)

	if stats.Reports != 2 || stats.Actions != 5 || stats.People != 2 {
		t.Errorf("stats = %+v, want 2 reports, 5 actions, 2 people", stats)
	}
	var n int64
	gdb.Model(&models.ReportAction{}).Count(&n)
	if n != 5 {
		t.Errorf("stored %d actions, want 5", n)
	}
}

func TestImportFixtures_Upsert(t *testing.T) {
	gdb := openTestDB(t)
	seedFixture(t, gdb)

	_, err := Import(gdb, &Fixture{
		People: []FixturePerson{{AccountID: 5, DisplayName: "Alice Smith"}},
		Reports: []FixtureReport{{
			ReportID: "exp",
			Type:     "expense",
			Actions:  []byte(`[{"reportActionID": "e3", "actionName": "ADDCOMMENT", "created": "2024-03-01 09:04:00.000", "message": [{"html": "edited", "text": "edited"}]}]`),
		}},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	var count int64
	gdb.Model(&models.ReportAction{}).Count(&count)
	if count != 5 {
		t.Errorf("stored %d actions after upsert, want 5", count)
	}
	var row models.ReportAction
	if err := gdb.Where("report_id = ? AND action_key = ?", "exp", "e3").First(&row).Error; err != nil {
		t.Fatalf("find e3: %v", err)
	}
	if !strings.Contains(row.Message, "edited") {
		t.Errorf("e3 message = %q, want the edited payload", row.Message)
	}
	var person models.PersonalDetail
	if err := gdb.First(&person, 5).Error; err != nil {
		t.Fatalf("find person 5: %v", err)
	}
	if person.DisplayName != "Alice Smith" {
		t.Errorf("DisplayName = %q, want Alice Smith", person.DisplayName)
	}
}

func TestImportFixtures_BadActionWritesNothing(t *testing.T) {
	gdb := openTestDB(t)

	_, err := ImportFixtures(gdb, filepath.Join("testdata", "bad_action.yaml"))
	if err == nil {
		t.Fatal("expected error for scalar message payload")
	}
	var n int64
	gdb.Model(&models.Report{}).Count(&n)
	if n != 0 {
		t.Errorf("stored %d reports after a failed import, want 0", n)
	}
}

func TestImportFixtures_NotSequence(t *testing.T) {
	gdb := openTestDB(t)

	_, err := ImportFixtures(gdb, filepath.Join("testdata", "not_sequence.yaml"))
	if !errors.Is(err, reportactions.ErrNotSequence) {
		t.Errorf("error = %v, want ErrNotSequence", err)
	}
}

func TestImportFixtures_MissingFile(t *testing.T) {
	gdb := openTestDB(t)

	_, err := ImportFixtures(gdb, filepath.Join("testdata", "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "store: read fixture") {
		t.Errorf("error = %v, want read failure", err)
	}
}
