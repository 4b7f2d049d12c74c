package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/zulandar/threadline/internal/config"
	"github.com/zulandar/threadline/internal/db"
	"github.com/zulandar/threadline/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A second pooled connection would see a different in-memory database.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedFixture(t *testing.T, gdb *gorm.DB) ImportStats {
	t.Helper()
	stats, err := ImportFixtures(gdb, filepath.Join("testdata", "fixture.yaml"))
	if err != nil {
		t.Fatalf("ImportFixtures: %v", err)
	}
	return stats
}

func testConfig() *config.Config {
	return &config.Config{
		EnvironmentURL: "https://new.expensify.com",
		Viewer:         config.ViewerConfig{AccountID: 5},
		Display:        config.DisplayConfig{LastMessageMaxLength: 40},
	}
}

func TestLoad_Empty(t *testing.T) {
	gdb := openTestDB(t)

	snap, err := Load(gdb, testConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Reports) != 0 || len(snap.Actions) != 0 {
		t.Errorf("empty store loaded %d reports, %d collections", len(snap.Reports), len(snap.Actions))
	}
	if snap.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestLoad_Fixture(t *testing.T) {
	gdb := openTestDB(t)
	seedFixture(t, gdb)

	snap, err := Load(gdb, testConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(snap.Reports) != 2 {
		t.Fatalf("loaded %d reports, want 2", len(snap.Reports))
	}
	if got := snap.Report("thread"); got == nil || got.ParentReportActionID != "e2" {
		t.Errorf("thread report = %+v", got)
	}
	if got := len(snap.ReportActions("exp")); got != 3 {
		t.Errorf("exp has %d actions, want 3", got)
	}

	e2 := snap.Action("exp", "e2")
	if e2 == nil {
		t.Fatal("action e2 not loaded")
	}
	if e2.Original == nil || e2.Original.IOUTransactionID != "tx1" {
		t.Errorf("e2 original = %+v, want transaction tx1", e2.Original)
	}
	if e2.ReportID != "exp" || e2.PreviousActionID != "e1" {
		t.Errorf("e2 links = report %q previous %q", e2.ReportID, e2.PreviousActionID)
	}

	e3 := snap.Action("exp", "e3")
	if e3 == nil || e3.Errors["1709283840000"] != "Unexpected error" {
		t.Errorf("e3 errors = %v", e3)
	}

	if got := snap.OneTransactionThreadReportID("exp"); got != "thread" {
		t.Errorf("OneTransactionThreadReportID(exp) = %q, want thread", got)
	}
	// e3 carries errors, so the request is the last visible action.
	if got := snap.LastVisibleMessage("exp", nil, nil).Text; got != "$12.00 expense" {
		t.Errorf("LastVisibleMessage(exp) = %q, want %q", got, "$12.00 expense")
	}
}

func TestLoad_ViewerAndPeople(t *testing.T) {
	gdb := openTestDB(t)
	seedFixture(t, gdb)

	snap, err := Load(gdb, testConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Viewer.AccountID != 5 {
		t.Errorf("Viewer.AccountID = %d, want 5", snap.Viewer.AccountID)
	}
	if snap.Viewer.EnvironmentURL != "https://new.expensify.com" {
		t.Errorf("Viewer.EnvironmentURL = %q", snap.Viewer.EnvironmentURL)
	}
	if snap.LastMessageMaxLength != 40 {
		t.Errorf("LastMessageMaxLength = %d, want 40", snap.LastMessageMaxLength)
	}
	d, ok := snap.Formatter.People.PersonalDetail(9)
	if !ok || d.Login != "+15550100@expensify.sms" {
		t.Errorf("person 9 = %+v, %v", d, ok)
	}

	bare, err := Load(gdb, nil)
	if err != nil {
		t.Fatalf("Load(nil config): %v", err)
	}
	if bare.Viewer.AccountID != 0 || bare.Formatter.People == nil {
		t.Errorf("nil config snapshot viewer = %+v", bare.Viewer)
	}
}

func TestLoad_KeyedActions(t *testing.T) {
	gdb := openTestDB(t)
	seedFixture(t, gdb)

	var row models.ReportAction
	if err := gdb.Where("report_id = ? AND action_key = ?", "thread", "r2").First(&row).Error; err != nil {
		t.Fatalf("find r2: %v", err)
	}
	if row.ActionID != "r2" {
		t.Errorf("ActionID = %q, want r2", row.ActionID)
	}

	snap, err := Load(gdb, testConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	chain := snap.ContinuousChain("thread", "")
	if len(chain) != 2 || chain[0].ID != "r2" || chain[1].ID != "r1" {
		t.Errorf("thread chain has %d actions", len(chain))
	}
}

func TestVersion_ChangesOnImport(t *testing.T) {
	gdb := openTestDB(t)

	before, err := Version(gdb)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	seedFixture(t, gdb)
	after, err := Version(gdb)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if before == after {
		t.Errorf("Version unchanged after import: %q", after)
	}

	again, err := Version(gdb)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if again != after {
		t.Errorf("Version not stable: %q then %q", after, again)
	}
}

func TestCheckReport(t *testing.T) {
	gdb := openTestDB(t)
	seedFixture(t, gdb)

	snap, err := Load(gdb, testConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := CheckReport(snap, "thread"); err != nil {
		t.Errorf("CheckReport(thread) = %v, want nil", err)
	}
	err = CheckReport(snap, "missing")
	if !errors.Is(err, ErrReportNotFound) {
		t.Errorf("CheckReport(missing) = %v, want ErrReportNotFound", err)
	}
	if err != nil && err.Error() != "store: report not found: missing" {
		t.Errorf("error = %q", err.Error())
	}
}
