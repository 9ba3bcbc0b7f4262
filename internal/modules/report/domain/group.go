package domain

import (
	"strconv"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	timelogdomain "timeclock/internal/modules/timelog/domain"
)

type CategoryHours struct {
	Category string
	Hours    float64
}

// Bucket is one group key with its categories in first-seen order.
type Bucket struct {
	Key        string
	Categories []CategoryHours
}

func (b Bucket) Total() float64 {
	total := 0.0
	for _, c := range b.Categories {
		total += c.Hours
	}
	return total
}

// Hours returns the summed hours of category, zero when absent.
func (b Bucket) Hours(category string) float64 {
	for _, c := range b.Categories {
		if c.Category == category {
			return c.Hours
		}
	}
	return 0
}

// Grouping keeps buckets in the order their keys were first encountered. No calendar sort
// is applied; a log written out of order reports out of order.
type Grouping struct {
	Buckets []Bucket
}

func (g Grouping) Keys() []string {
	keys := make([]string, 0, len(g.Buckets))
	for _, b := range g.Buckets {
		keys = append(keys, b.Key)
	}
	return keys
}

func (g Grouping) Lookup(key string) (Bucket, bool) {
	for _, b := range g.Buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

func (g Grouping) Total() float64 {
	total := 0.0
	for _, b := range g.Buckets {
		total += b.Total()
	}
	return total
}

// upsert stores fn(current, present) under k and returns it. A key keeps the position of
// its first Set.
func upsert[K comparable, V any](m *orderedmap.OrderedMap[K, V], k K, fn func(current V, present bool) V) V {
	current, ok := m.Get(k)
	next := fn(current, ok)
	m.Set(k, next)
	return next
}

func groupByCategory(entries []timelogdomain.TimeEntry, key func(timelogdomain.TimeEntry) string, keep func(timelogdomain.TimeEntry) bool) Grouping {
	groups := orderedmap.New[string, *orderedmap.OrderedMap[string, float64]]()
	for _, entry := range entries {
		if keep != nil && !keep(entry) {
			continue
		}
		categories := upsert(groups, key(entry), func(current *orderedmap.OrderedMap[string, float64], present bool) *orderedmap.OrderedMap[string, float64] {
			if present {
				return current
			}
			return orderedmap.New[string, float64]()
		})
		upsert(categories, entry.Category, func(hours float64, _ bool) float64 {
			return hours + entry.Hours
		})
	}

	out := Grouping{Buckets: make([]Bucket, 0, groups.Len())}
	for group := groups.Oldest(); group != nil; group = group.Next() {
		bucket := Bucket{Key: group.Key, Categories: make([]CategoryHours, 0, group.Value.Len())}
		for c := group.Value.Oldest(); c != nil; c = c.Next() {
			bucket.Categories = append(bucket.Categories, CategoryHours{Category: c.Key, Hours: c.Value})
		}
		out.Buckets = append(out.Buckets, bucket)
	}
	return out
}

// GroupByDay merges entries of the same calendar day into one synthetic entry. Category is
// dropped at this granularity, and Raw becomes MergedRaw once two lines are merged.
func GroupByDay(entries []timelogdomain.TimeEntry) []timelogdomain.TimeEntry {
	days := orderedmap.New[string, timelogdomain.TimeEntry]()
	for _, entry := range entries {
		upsert(days, entry.Date.Format("2006-01-02"), func(merged timelogdomain.TimeEntry, present bool) timelogdomain.TimeEntry {
			if !present {
				entry.Category = ""
				return entry
			}
			merged.Hours += entry.Hours
			merged.IsCurrent = merged.IsCurrent || entry.IsCurrent
			merged.Raw = timelogdomain.MergedRaw
			return merged
		})
	}
	out := make([]timelogdomain.TimeEntry, 0, days.Len())
	for day := days.Oldest(); day != nil; day = day.Next() {
		out = append(out, day.Value)
	}
	return out
}

// CurrentWeekGroupByDayAndCategory keeps the entries of the ISO week containing now and
// groups them by short weekday name.
func CurrentWeekGroupByDayAndCategory(entries []timelogdomain.TimeEntry, now time.Time) Grouping {
	week := timelogdomain.WeekOf(now)
	return groupByCategory(entries,
		func(e timelogdomain.TimeEntry) string { return e.DayOfWeek },
		func(e timelogdomain.TimeEntry) bool { return e.Week == week },
	)
}

func GroupByWeekAndCategory(entries []timelogdomain.TimeEntry) Grouping {
	return groupByCategory(entries, func(e timelogdomain.TimeEntry) string { return e.Week.String() }, nil)
}

func GroupByMonthAndCategory(entries []timelogdomain.TimeEntry) Grouping {
	return groupByCategory(entries, func(e timelogdomain.TimeEntry) string { return e.YearAndMonth.String() }, nil)
}

func GroupByYearAndCategory(entries []timelogdomain.TimeEntry) Grouping {
	return groupByCategory(entries, func(e timelogdomain.TimeEntry) string { return strconv.Itoa(e.Year()) }, nil)
}
