package store

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/zulandar/threadline/internal/models"
	"github.com/zulandar/threadline/internal/reportactions"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixture is an operator-supplied batch of reports, actions and people.
// Actions use the same field names as the JSON wire records and may be given
// as a list or as a mapping keyed by action ID.
type Fixture struct {
	People  []FixturePerson `json:"people"`
	Reports []FixtureReport `json:"reports"`
}

// FixturePerson is one personal-detail entry of a fixture.
type FixturePerson struct {
	AccountID   int64  `json:"accountID"`
	DisplayName string `json:"displayName"`
	Login       string `json:"login"`
}

// FixtureReport is one report of a fixture together with its actions.
type FixtureReport struct {
	ReportID                      reportactions.FlexString `json:"reportID"`
	Type                          string                   `json:"type"`
	ChatType                      string                   `json:"chatType"`
	LastReadTime                  string                   `json:"lastReadTime"`
	ParentReportID                reportactions.FlexString `json:"parentReportID"`
	ParentReportActionID          reportactions.FlexString `json:"parentReportActionID"`
	LastVisibleActionCreated      string                   `json:"lastVisibleActionCreated"`
	LastVisibleActionLastModified string                   `json:"lastVisibleActionLastModified"`
	Actions                       json.RawMessage          `json:"actions"`
}

// ImportStats counts the rows an import wrote.
type ImportStats struct {
	Reports int
	Actions int
	People  int
}

// ParseFixture decodes YAML fixture data. The document is converted to JSON
// first so action payloads go through the same decoder as wire batches.
func ParseFixture(data []byte) (*Fixture, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parse fixture: %w", err)
	}
	if doc == nil {
		return &Fixture{}, nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("store: fixture is not JSON-compatible: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("store: decode fixture: %w", err)
	}
	for i, r := range f.Reports {
		if r.ReportID == "" {
			return nil, fmt.Errorf("store: fixture report %d has no reportID", i)
		}
	}
	return &f, nil
}

// ImportFixtures reads a YAML fixture from path and upserts its contents in
// one transaction.
func ImportFixtures(db *gorm.DB, path string) (ImportStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("store: read fixture: %w", err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return ImportStats{}, err
	}
	return Import(db, f)
}

// Import upserts a parsed fixture. Every action must normalize cleanly or
// nothing is written.
func Import(db *gorm.DB, f *Fixture) (ImportStats, error) {
	var (
		stats   ImportStats
		reports []models.Report
		actions []models.ReportAction
		people  []models.PersonalDetail
	)
	for _, fr := range f.Reports {
		reportID := string(fr.ReportID)
		reports = append(reports, models.Report{
			ReportID:                      reportID,
			Type:                          fr.Type,
			ChatType:                      fr.ChatType,
			LastReadTime:                  fr.LastReadTime,
			ParentReportID:                string(fr.ParentReportID),
			ParentReportActionID:          string(fr.ParentReportActionID),
			LastVisibleActionCreated:      fr.LastVisibleActionCreated,
			LastVisibleActionLastModified: fr.LastVisibleActionLastModified,
		})
		if len(fr.Actions) == 0 || string(fr.Actions) == "null" {
			continue
		}
		records, err := reportactions.DecodeRecords(fr.Actions)
		if err != nil {
			return stats, fmt.Errorf("store: report %s actions: %w", reportID, err)
		}
		for _, rec := range records {
			if _, err := rec.Action(); err != nil {
				return stats, fmt.Errorf("store: report %s: %w", reportID, err)
			}
			row, err := rowFromRecord(reportID, rec)
			if err != nil {
				return stats, err
			}
			actions = append(actions, row)
		}
	}
	for _, p := range f.People {
		people = append(people, models.PersonalDetail{
			AccountID:   p.AccountID,
			DisplayName: p.DisplayName,
			Login:       p.Login,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range reports {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "report_id"}},
				UpdateAll: true,
			}).Create(&reports[i]).Error; err != nil {
				return fmt.Errorf("store: upsert report %s: %w", reports[i].ReportID, err)
			}
		}
		for i := range actions {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "report_id"}, {Name: "action_key"}},
				UpdateAll: true,
			}).Create(&actions[i]).Error; err != nil {
				return fmt.Errorf("store: upsert action %s/%s: %w", actions[i].ReportID, actions[i].ActionKey, err)
			}
		}
		for i := range people {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "account_id"}},
				UpdateAll: true,
			}).Create(&people[i]).Error; err != nil {
				return fmt.Errorf("store: upsert person %d: %w", people[i].AccountID, err)
			}
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}
	stats = ImportStats{Reports: len(reports), Actions: len(actions), People: len(people)}
	return stats, nil
}
