package domain

import (
	"sort"
	"time"
)

// DateTotal is the time tracked on one calendar day.
type DateTotal struct {
	Date time.Time `json:"date"`
	Time int64     `json:"time"`
}

// ProjectTimeRecords collects every time record under the project, from tasks and subtasks,
// each record once.
func ProjectTimeRecords(p *Project) []TimeRecord {
	seen := map[uint]bool{}
	var records []TimeRecord
	collect := func(rs []TimeRecord) {
		for _, r := range rs {
			if seen[r.TimeRecordID] {
				continue
			}
			seen[r.TimeRecordID] = true
			records = append(records, r)
		}
	}
	for _, t := range p.Tasks {
		collect(t.TimeRecords)
		for _, st := range t.Subtasks {
			collect(st.TimeRecords)
		}
	}
	return records
}

// TimeByDate groups the project's time records by the calendar date of their start time
// and sums each group, most recent day first.
func TimeByDate(p *Project) []DateTotal {
	totals := map[time.Time]int64{}
	for _, r := range ProjectTimeRecords(p) {
		totals[dateOf(r.StartTime)] += r.TrackedMillis()
	}

	result := make([]DateTotal, 0, len(totals))
	for date, millis := range totals {
		result = append(result, DateTotal{Date: date, Time: millis})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result
}

// dateOf is the calendar date of t in its own zone, keyed as UTC midnight so that equal
// dates compare equal whatever zone value the row carries.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
