package core

import (
	"sort"
	"strings"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

// WeeklyOvertimeThreshold is the regular-hours cap per worker per week.
const WeeklyOvertimeThreshold = 40.0

// approachingOvertimeThreshold flags workers nearing the cap on dashboards.
const approachingOvertimeThreshold = 35.0

const (
	AlertOvertime    = "Overtime"
	AlertApproaching = "Approaching overtime"
)

// DailyHours converts an entry's clock span into worked hours: overnight
// checkout rolls to the next day, the lunch break is deducted, and the
// result never goes below zero.
func DailyHours(e *model.TimesheetEntry) float64 {
	in, out := e.Span()
	hours := out.Sub(in).Hours() - float64(e.LunchMinutes)/60.0
	if hours < 0 {
		return 0
	}
	return hours
}

// SplitOvertime divides a weekly total into its regular and overtime parts.
func SplitOvertime(total float64) (regular, overtime float64) {
	if total <= WeeklyOvertimeThreshold {
		return total, 0
	}
	return WeeklyOvertimeThreshold, total - WeeklyOvertimeThreshold
}

// WeeklySummary is one worker's hours for one ISO week.
type WeeklySummary struct {
	WorkerID       string  `json:"worker_id"`
	Year           int     `json:"year"`
	Week           int     `json:"week"`
	TotalHours     float64 `json:"total_hours"`
	RegularHours   float64 `json:"regular_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	AgenciesWorked string  `json:"agencies_worked"`
	Alert          string  `json:"alert,omitempty"`
}

type workerWeekKey struct {
	workerID string
	year     int
	week     int
}

// WeeklySummaries rolls raw entries up into per-worker per-ISO-week totals,
// ordered by worker then week.
func WeeklySummaries(entries []model.TimesheetEntry) []WeeklySummary {
	groups := utils.GroupBy(entries, func(e model.TimesheetEntry) workerWeekKey {
		year, week := e.Date.ISOWeek()
		return workerWeekKey{workerID: e.WorkerID, year: year, week: week}
	})

	summaries := make([]WeeklySummary, 0, len(groups))
	for key, group := range groups {
		total := 0.0
		agencySet := map[string]bool{}
		for i := range group {
			total += DailyHours(&group[i])
			if agency := group[i].AgencyName(); agency != "" {
				agencySet[agency] = true
			}
		}

		agencies := make([]string, 0, len(agencySet))
		for agency := range agencySet {
			agencies = append(agencies, agency)
		}
		sort.Strings(agencies)

		regular, overtime := SplitOvertime(total)
		summary := WeeklySummary{
			WorkerID:       key.workerID,
			Year:           key.year,
			Week:           key.week,
			TotalHours:     total,
			RegularHours:   regular,
			OvertimeHours:  overtime,
			RemainingHours: WeeklyOvertimeThreshold - total,
			AgenciesWorked: strings.Join(agencies, ", "),
		}
		switch {
		case total >= WeeklyOvertimeThreshold:
			summary.Alert = AlertOvertime
		case total >= approachingOvertimeThreshold:
			summary.Alert = AlertApproaching
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].WorkerID != summaries[j].WorkerID {
			return summaries[i].WorkerID < summaries[j].WorkerID
		}
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year < summaries[j].Year
		}
		return summaries[i].Week < summaries[j].Week
	})
	return summaries
}

// AgencyMonthlySummary is one agency's hours for one calendar month, with
// the weekly regular/overtime split already applied.
type AgencyMonthlySummary struct {
	Agency        string  `json:"agency"`
	Month         string  `json:"month"`
	RegularHours  float64 `json:"total_regular_hours"`
	OvertimeHours float64 `json:"total_overtime_hours"`
	TotalHours    float64 `json:"total_hours"`
}

type agencyWeekKey struct {
	workerID string
	year     int
	week     int
	agency   string
	month    string
}

type agencyMonthKey struct {
	agency string
	month  string
}

// AgencyMonthlySummaries buckets hours by agency and month. The overtime cap
// applies to each worker's weekly total first; the capped figures are then
// summed per agency per month.
func AgencyMonthlySummaries(entries []model.TimesheetEntry) []AgencyMonthlySummary {
	weekly := utils.GroupBy(entries, func(e model.TimesheetEntry) agencyWeekKey {
		year, week := e.Date.ISOWeek()
		return agencyWeekKey{
			workerID: e.WorkerID,
			year:     year,
			week:     week,
			agency:   e.AgencyName(),
			month:    utils.MonthKey(e.Date),
		}
	})

	totals := map[agencyMonthKey]*AgencyMonthlySummary{}
	for key, group := range weekly {
		if key.agency == "" {
			continue
		}
		weekTotal := 0.0
		for i := range group {
			weekTotal += DailyHours(&group[i])
		}
		regular, overtime := SplitOvertime(weekTotal)

		bucket := agencyMonthKey{agency: key.agency, month: key.month}
		summary, ok := totals[bucket]
		if !ok {
			summary = &AgencyMonthlySummary{Agency: key.agency, Month: key.month}
			totals[bucket] = summary
		}
		summary.RegularHours += regular
		summary.OvertimeHours += overtime
	}

	summaries := make([]AgencyMonthlySummary, 0, len(totals))
	for _, summary := range totals {
		summary.TotalHours = summary.RegularHours + summary.OvertimeHours
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Agency != summaries[j].Agency {
			return summaries[i].Agency < summaries[j].Agency
		}
		return summaries[i].Month < summaries[j].Month
	})
	return summaries
}
