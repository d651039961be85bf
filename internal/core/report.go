package core

import (
	"sort"
	"time"
)

// SortOrder selects how per-category totals are ordered in a report.
// The monthly report lists categories from smallest spend to largest while
// analyze/summary lead with the largest; the asymmetry is intentional.
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// ChartThresholdPercent is the minimum share of total spend a category needs
// to earn a pie-chart slice. Smaller categories stay in the text report only.
const ChartThresholdPercent = 3.0

type (
	// CategoryTotal is a per-category aggregate over one month's expenses.
	// Total keeps the ledger sign (negative); Percent is the share of the
	// month's absolute spend.
	CategoryTotal struct {
		DanhMuc string
		Total   int64
		Percent float64
	}

	// DayGroup collects one calendar day's expenses for the itemized
	// summary. Entries keep the order they were handed in.
	DayGroup struct {
		Day     time.Time
		Total   int64
		Entries []ExpenseEntry
	}
)

// TotalSpent sums expense amounts. The result is negative or zero.
func TotalSpent(entries []ExpenseEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.SoTien
	}
	return total
}

// GroupByCategory aggregates expenses per category and computes each
// category's share of the month's spend. Returns nil for no expenses.
func GroupByCategory(entries []ExpenseEntry, order SortOrder) []CategoryTotal {
	if len(entries) == 0 {
		return nil
	}

	totals := map[string]int64{}
	for _, e := range entries {
		cat := e.DanhMuc
		if cat == "" {
			cat = DefaultCategory
		}
		totals[cat] += e.SoTien
	}

	grand := TotalSpent(entries)
	out := make([]CategoryTotal, 0, len(totals))
	for cat, sum := range totals {
		out = append(out, CategoryTotal{
			DanhMuc: cat,
			Total:   sum,
			Percent: percentOf(sum, grand),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			if order == SortDesc {
				// Totals are negative, so the biggest spender is the
				// smallest number.
				return out[i].Total < out[j].Total
			}
			return out[i].Total > out[j].Total
		}
		return out[i].DanhMuc < out[j].DanhMuc
	})
	return out
}

// ChartSlices filters category totals down to the ones large enough to
// render as pie slices.
func ChartSlices(totals []CategoryTotal) []CategoryTotal {
	var out []CategoryTotal
	for _, t := range totals {
		if t.Percent >= ChartThresholdPercent {
			out = append(out, t)
		}
	}
	return out
}

// GroupByDay buckets expenses by the calendar day of their creation
// timestamp. Days are ordered newest first; entries inside a day keep the
// order of the input slice (the store already returns them newest first).
func GroupByDay(entries []ExpenseEntry) []DayGroup {
	byDay := map[time.Time]int{}
	var groups []DayGroup
	for _, e := range entries {
		y, m, d := e.CreatedAt.Local().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		idx, ok := byDay[day]
		if !ok {
			idx = len(groups)
			byDay[day] = idx
			groups = append(groups, DayGroup{Day: day})
		}
		groups[idx].Entries = append(groups[idx].Entries, e)
		groups[idx].Total += e.SoTien
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Day.After(groups[j].Day)
	})
	return groups
}

func percentOf(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(abs(part)) / float64(abs(whole)) * 100
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
