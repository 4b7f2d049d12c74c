// Package store loads report snapshots from the database and writes operator
// fixtures into it. The engine in reportactions only ever sees the snapshot.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/zulandar/threadline/internal/config"
	"github.com/zulandar/threadline/internal/models"
	"github.com/zulandar/threadline/internal/reportactions"
	"gorm.io/gorm"
)

// ErrReportNotFound is returned when a snapshot has neither a record nor any
// actions for a report.
var ErrReportNotFound = errors.New("store: report not found")

// CheckReport returns ErrReportNotFound when snap knows nothing about
// reportID.
func CheckReport(snap *reportactions.Snapshot, reportID string) error {
	if snap.Report(reportID) == nil && len(snap.ReportActions(reportID)) == 0 {
		return fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	return nil
}

// Load reads every report, action and personal detail and returns them as a
// snapshot configured for the viewer in cfg.
func Load(db *gorm.DB, cfg *config.Config) (*reportactions.Snapshot, error) {
	version, err := Version(db)
	if err != nil {
		return nil, err
	}

	var reports []models.Report
	if err := db.Order("report_id ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("store: load reports: %w", err)
	}
	var rows []models.ReportAction
	if err := db.Order("report_id ASC, action_key ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load actions: %w", err)
	}
	var details []models.PersonalDetail
	if err := db.Find(&details).Error; err != nil {
		return nil, fmt.Errorf("store: load personal details: %w", err)
	}

	snap := &reportactions.Snapshot{
		Version: version,
		Reports: make(map[string]*reportactions.Report, len(reports)),
		Actions: make(map[string]reportactions.Collection),
	}
	for _, r := range reports {
		snap.Reports[r.ReportID] = reportFromRow(r)
	}
	for _, row := range rows {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, err
		}
		a, err := rec.Action()
		if err != nil {
			return nil, fmt.Errorf("store: report %s: %w", row.ReportID, err)
		}
		c, ok := snap.Actions[row.ReportID]
		if !ok {
			c = reportactions.Collection{}
			snap.Actions[row.ReportID] = c
		}
		c[row.ActionKey] = a
	}

	people := make(reportactions.People, len(details))
	for _, d := range details {
		people[d.AccountID] = reportactions.PersonalDetail{
			AccountID:   d.AccountID,
			DisplayName: d.DisplayName,
			Login:       d.Login,
		}
	}

	if cfg != nil {
		snap.Viewer = reportactions.Viewer{
			AccountID:      cfg.Viewer.AccountID,
			Offline:        cfg.Viewer.Offline,
			EnvironmentURL: cfg.EnvironmentURL,
			Logger:         log.Default(),
		}
		snap.Formatter.EnvironmentURL = cfg.EnvironmentURL
		snap.LastMessageMaxLength = cfg.Display.LastMessageMaxLength
	}
	snap.Formatter.People = people
	return snap, nil
}

// Version fingerprints the stored data from row counts and the newest
// update time of each table. It changes whenever an import touches a row.
func Version(db *gorm.DB) (string, error) {
	tables := []struct {
		name  string
		model any
	}{
		{"reports", &models.Report{}},
		{"actions", &models.ReportAction{}},
		{"people", &models.PersonalDetail{}},
	}
	var version string
	for i, t := range tables {
		var (
			count  int64
			latest sql.NullString
		)
		row := db.Model(t.model).Select("COUNT(*), MAX(updated_at)").Row()
		if err := row.Scan(&count, &latest); err != nil {
			return "", fmt.Errorf("store: version of %s: %w", t.name, err)
		}
		if i > 0 {
			version += "/"
		}
		version += fmt.Sprintf("%d@%s", count, latest.String)
	}
	return version, nil
}
