// Package dashboard summarizes the application ledger.
package dashboard

import (
	"sort"
	"time"

	"github.com/jonathan/job-assistant/internal/types"
)

// UnspecifiedPlatform labels applications recorded without a platform.
const UnspecifiedPlatform = "(unspecified)"

// Count is one labelled tally.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Upcoming is an interview on or after today.
type Upcoming struct {
	Index    int    `json:"index"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Date     string `json:"date"`
}

// Summary is the dashboard view of the ledger.
type Summary struct {
	Total         int        `json:"total"`
	ByStatus      []Count    `json:"by_status"`
	ByPlatform    []Count    `json:"by_platform"`
	ResponseRate  float64    `json:"response_rate"`
	InterviewRate float64    `json:"interview_rate"`
	Upcoming      []Upcoming `json:"upcoming"`
}

// Summarize tallies rows. Statuses are listed in fixed order, platforms by count then name.
func Summarize(rows []types.ApplicationRecord, now time.Time) Summary {
	s := Summary{
		Total:      len(rows),
		ByStatus:   make([]Count, 0, len(types.Statuses())),
		ByPlatform: []Count{},
		Upcoming:   []Upcoming{},
	}

	statusCounts := make(map[types.Status]int)
	platformCounts := make(map[string]int)
	today := now.Format(types.DateLayout)

	for i, r := range rows {
		statusCounts[r.Status]++

		platform := r.Platform
		if platform == "" {
			platform = UnspecifiedPlatform
		}
		platformCounts[platform]++

		// Dates share one layout, so string order is date order.
		if r.InterviewDate != "" && r.InterviewDate >= today {
			s.Upcoming = append(s.Upcoming, Upcoming{
				Index:    i,
				Company:  r.Company,
				Position: r.Position,
				Date:     r.InterviewDate,
			})
		}
	}

	for _, st := range types.Statuses() {
		s.ByStatus = append(s.ByStatus, Count{Label: string(st), Count: statusCounts[st]})
	}

	for platform, n := range platformCounts {
		s.ByPlatform = append(s.ByPlatform, Count{Label: platform, Count: n})
	}
	sort.Slice(s.ByPlatform, func(i, j int) bool {
		if s.ByPlatform[i].Count != s.ByPlatform[j].Count {
			return s.ByPlatform[i].Count > s.ByPlatform[j].Count
		}
		return s.ByPlatform[i].Label < s.ByPlatform[j].Label
	})

	sort.SliceStable(s.Upcoming, func(i, j int) bool {
		return s.Upcoming[i].Date < s.Upcoming[j].Date
	})

	if s.Total > 0 {
		responded := s.Total - statusCounts[types.StatusApplied]
		interviewed := statusCounts[types.StatusInterview] + statusCounts[types.StatusOffer]
		s.ResponseRate = float64(responded) / float64(s.Total)
		s.InterviewRate = float64(interviewed) / float64(s.Total)
	}

	return s
}

// StatusCount returns the tally for one status.
func (s Summary) StatusCount(st types.Status) int {
	for _, c := range s.ByStatus {
		if c.Label == string(st) {
			return c.Count
		}
	}
	return 0
}
