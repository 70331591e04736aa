package service

import (
	"fmt"
	"math"
	"time"

	"github.com/nurpe/trialops/internal/model"
)

const (
	dailyBucketCount   = 7
	weeklyBucketCount  = 8
	monthlyBucketCount = 12
)

// bucket is a half-open window [start, end). Buckets are built from the
// calendar alone; rows are assigned into them afterwards.
type bucket struct {
	start     time.Time
	end       time.Time
	label     string
	dateLabel string
}

// granularitySpec is the per-granularity strategy: how many trailing
// buckets a default window has, how to step one period, and how to
// truncate an instant to its period start.
type granularitySpec struct {
	defaultCount int
	step         func(time.Time, int) time.Time
	truncate     func(time.Time) time.Time
}

func specFor(granularity model.Granularity) granularitySpec {
	switch granularity {
	case model.GranularityDaily:
		return granularitySpec{
			defaultCount: dailyBucketCount,
			step:         func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
			truncate:     startOfDay,
		}
	case model.GranularityWeekly:
		return granularitySpec{
			defaultCount: weeklyBucketCount,
			step:         func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
			truncate:     startOfWeek,
		}
	default:
		// Monthly stepping relies on AddDate month normalization;
		// day-of-month overflow (Jan 31 + 1 month) is accepted as is.
		return granularitySpec{
			defaultCount: monthlyBucketCount,
			step:         func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) },
			truncate:     startOfMonth,
		}
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// startOfWeek truncates to the most recent Monday.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t.AddDate(0, 0, -offset))
}

func startOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// buildBuckets produces the ordered, contiguous bucket sequence for a
// granularity. With both range endpoints set it walks from the
// truncated start while cursor <= finish, so a finish before the start
// yields an empty (and valid) result. Otherwise it builds the fixed
// trailing window ending at now.
func buildBuckets(granularity model.Granularity, now time.Time, rangeStart, rangeEnd *time.Time) []bucket {
	spec := specFor(granularity)

	if rangeStart != nil && rangeEnd != nil {
		finish := *rangeEnd
		var buckets []bucket
		cursor := spec.truncate(*rangeStart)
		for !cursor.After(finish) {
			start := spec.truncate(cursor)
			end := spec.step(start, 1)
			buckets = append(buckets, makeBucket(granularity, start, end))
			cursor = end
		}
		return buckets
	}

	cursor := spec.truncate(now)
	for i := 0; i < spec.defaultCount-1; i++ {
		cursor = spec.step(cursor, -1)
	}

	buckets := make([]bucket, 0, spec.defaultCount)
	for i := 0; i < spec.defaultCount; i++ {
		start := spec.truncate(cursor)
		end := spec.step(start, 1)
		buckets = append(buckets, makeBucket(granularity, start, end))
		cursor = end
	}
	return buckets
}

func makeBucket(granularity model.Granularity, start, end time.Time) bucket {
	label, dateLabel := bucketLabels(granularity, start)
	return bucket{start: start, end: end, label: label, dateLabel: dateLabel}
}

func bucketLabels(granularity model.Granularity, start time.Time) (string, string) {
	switch granularity {
	case model.GranularityDaily:
		day := start.Format("Jan 02")
		return day, day
	case model.GranularityWeekly:
		rangeLabel := start.Format("Jan 02") + " - " + start.AddDate(0, 0, 6).Format("Jan 02")
		return fmt.Sprintf("W%d", weekNumber(start)), rangeLabel
	default:
		month := start.Format("Jan")
		return month, month
	}
}

// weekNumber counts calendar weeks from Jan 1, anchored to the weekday
// Jan 1 falls on (Sunday = 0).
func weekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.Sub(jan1).Hours() / 24
	return int(math.Ceil((days + float64(jan1.Weekday()) + 1) / 7))
}
