package service

import (
	"encoding/json"
	"strings"

	"github.com/ccorchooo/CalAIFree/internal/model"
	"github.com/ccorchooo/CalAIFree/internal/store"
)

type DoctorReport struct {
	Records        int      `json:"records"`
	CorruptRecords int      `json:"corrupt_records"`
	UnknownRecords int      `json:"unknown_records"`
	CorruptKeys    []string `json:"corrupt_keys,omitempty"`
	RemovedRecords int      `json:"removed_records,omitempty"`
}

// RunDoctor validates every stored record against the schema its key
// implies. With fix set, undecodable records are removed; the session then
// rebuilds them from defaults, which is the documented fallback anyway.
func RunDoctor(st *store.Store, fix bool) (*DoctorReport, error) {
	records, err := st.Records()
	if err != nil {
		return nil, err
	}

	report := &DoctorReport{Records: len(records)}
	for _, r := range records {
		ok := true
		switch {
		case r.Key == "currentUser":
			ok = strings.TrimSpace(r.Value) != ""
		case strings.HasPrefix(r.Key, "userProfile_"):
			var p model.UserProfile
			ok = json.Unmarshal([]byte(r.Value), &p) == nil
		case strings.HasPrefix(r.Key, "mealHistory_"):
			var items []model.HistoryItem
			ok = json.Unmarshal([]byte(r.Value), &items) == nil
		case strings.HasPrefix(r.Key, "streakData_"):
			var s model.StreakState
			ok = json.Unmarshal([]byte(r.Value), &s) == nil
		default:
			report.UnknownRecords++
			continue
		}
		if !ok {
			report.CorruptRecords++
			report.CorruptKeys = append(report.CorruptKeys, r.Key)
		}
	}

	if fix {
		for _, key := range report.CorruptKeys {
			if err := st.DeleteRecord(key); err != nil {
				return nil, err
			}
			report.RemovedRecords++
		}
	}
	return report, nil
}
