// Package analytics computes derived statistics over stored check-in
// records. Every function is pure and stateless: no I/O, no caching, safe
// to recompute on every access. Empty input always yields an empty result,
// never an error.
package analytics

import (
	"sort"
	"time"

	"github.com/lunabrook/moodscope/internal/model"
)

// EmotionFrequency is the occurrence count of one primary emotion across a
// record set, with its share of the total.
type EmotionFrequency struct {
	Emotion model.EmotionKind
	Count   int
	Percent float64
}

// TrendPoint is the mean confidence of one emotion across one calendar
// day's records. The series is sparse: days or emotions with no data
// produce no point.
type TrendPoint struct {
	Day            time.Time
	Emotion        model.EmotionKind
	MeanConfidence float64
}

// TimeOfDayBucket counts records per (hour of day, primary emotion) pair.
type TimeOfDayBucket struct {
	Hour    int
	Emotion model.EmotionKind
	Count   int
}

// StreakResult is the longest run of days sharing a dominant emotion.
type StreakResult struct {
	Emotion model.EmotionKind
	Days    int
}

// Frequency counts primary emotions across the record set. Buckets are
// emitted in canonical emotion order, one per distinct emotion present;
// emotions absent from the data get no bucket.
func Frequency(records []model.CheckInRecord) []EmotionFrequency {
	counts, total := countPrimaries(records)
	if total == 0 {
		return nil
	}

	out := make([]EmotionFrequency, 0, len(counts))
	for _, kind := range model.AllEmotions {
		count := counts[kind]
		if count == 0 {
			continue
		}
		out = append(out, EmotionFrequency{
			Emotion: kind,
			Count:   count,
			Percent: float64(count) / float64(total) * 100,
		})
	}
	return out
}

// DominantEmotion returns the most frequent primary emotion. Ties resolve
// by canonical emotion order. The second return is false when no records
// carry a recognizable emotion.
func DominantEmotion(records []model.CheckInRecord) (model.EmotionKind, bool) {
	counts, total := countPrimaries(records)
	if total == 0 {
		return "", false
	}
	return maxByCount(counts), true
}

// Streak finds the longest run of consecutive calendar days whose dominant
// emotion matches. True calendar-day adjacency is enforced: a gap day
// breaks the run even when the emotions on both sides match.
func Streak(records []model.CheckInRecord, loc *time.Location) StreakResult {
	return streak(records, loc, true)
}

// StreakDataDays is the relaxed variant: it scans the sorted distinct days
// that have data and ignores calendar gaps between them.
func StreakDataDays(records []model.CheckInRecord, loc *time.Location) StreakResult {
	return streak(records, loc, false)
}

func streak(records []model.CheckInRecord, loc *time.Location, requireAdjacent bool) StreakResult {
	days := dominantByDay(records, loc)
	if len(days) == 0 {
		return StreakResult{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].day.Before(days[j].day) })

	best := StreakResult{Emotion: days[0].emotion, Days: 1}
	run := 1
	for i := 1; i < len(days); i++ {
		adjacent := !requireAdjacent || days[i].day.Equal(days[i-1].day.AddDate(0, 0, 1))
		if adjacent && days[i].emotion == days[i-1].emotion {
			run++
		} else {
			run = 1
		}
		if run > best.Days {
			best = StreakResult{Emotion: days[i].emotion, Days: run}
		}
	}
	return best
}

// Trend computes, for each (calendar day, emotion) pair present in the
// records, the mean confidence of that emotion across the day's scored
// records. Points are ordered by day, then canonical emotion order.
// Records whose score blobs cannot be decoded are skipped.
func Trend(records []model.CheckInRecord, loc *time.Location) []TrendPoint {
	type accum struct {
		sum   float64
		count int
	}
	type dayEmotion struct {
		day     time.Time
		emotion model.EmotionKind
	}

	sums := make(map[dayEmotion]*accum)
	for i := range records {
		scores, err := records[i].Scores()
		if err != nil {
			continue
		}
		day := dayOf(records[i].Timestamp, loc)
		for _, s := range scores {
			key := dayEmotion{day: day, emotion: s.Emotion}
			a := sums[key]
			if a == nil {
				a = &accum{}
				sums[key] = a
			}
			a.sum += s.Confidence
			a.count++
		}
	}

	if len(sums) == 0 {
		return nil
	}

	out := make([]TrendPoint, 0, len(sums))
	for key, a := range sums {
		out = append(out, TrendPoint{
			Day:            key.day,
			Emotion:        key.emotion,
			MeanConfidence: a.sum / float64(a.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Day.Equal(out[j].Day) {
			return out[i].Day.Before(out[j].Day)
		}
		return emotionOrder(out[i].Emotion) < emotionOrder(out[j].Emotion)
	})
	return out
}

// TimeOfDay buckets records by hour of day (0-23) and primary emotion.
// Buckets are ordered by hour, then canonical emotion order; empty pairs
// get no bucket.
func TimeOfDay(records []model.CheckInRecord, loc *time.Location) []TimeOfDayBucket {
	type hourEmotion struct {
		hour    int
		emotion model.EmotionKind
	}

	counts := make(map[hourEmotion]int)
	for i := range records {
		kind, ok := model.ParseEmotionKind(records[i].PrimaryEmotion)
		if !ok {
			continue
		}
		key := hourEmotion{hour: records[i].Timestamp.In(loc).Hour(), emotion: kind}
		counts[key]++
	}

	if len(counts) == 0 {
		return nil
	}

	out := make([]TimeOfDayBucket, 0, len(counts))
	for key, count := range counts {
		out = append(out, TimeOfDayBucket{Hour: key.hour, Emotion: key.emotion, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return emotionOrder(out[i].Emotion) < emotionOrder(out[j].Emotion)
	})
	return out
}

// FilterRange returns the records with from <= timestamp <= to. Both
// bounds are inclusive.
func FilterRange(records []model.CheckInRecord, from, to time.Time) []model.CheckInRecord {
	out := make([]model.CheckInRecord, 0, len(records))
	for i := range records {
		ts := records[i].Timestamp
		if !ts.Before(from) && !ts.After(to) {
			out = append(out, records[i])
		}
	}
	return out
}

type dayDominant struct {
	day     time.Time
	emotion model.EmotionKind
}

// dominantByDay buckets records by calendar day and takes the majority
// primary emotion for each day, tie-broken by canonical emotion order.
func dominantByDay(records []model.CheckInRecord, loc *time.Location) []dayDominant {
	byDay := make(map[time.Time]map[model.EmotionKind]int)
	for i := range records {
		kind, ok := model.ParseEmotionKind(records[i].PrimaryEmotion)
		if !ok {
			continue
		}
		day := dayOf(records[i].Timestamp, loc)
		if byDay[day] == nil {
			byDay[day] = make(map[model.EmotionKind]int)
		}
		byDay[day][kind]++
	}

	out := make([]dayDominant, 0, len(byDay))
	for day, counts := range byDay {
		out = append(out, dayDominant{day: day, emotion: maxByCount(counts)})
	}
	return out
}

func countPrimaries(records []model.CheckInRecord) (map[model.EmotionKind]int, int) {
	counts := make(map[model.EmotionKind]int)
	total := 0
	for i := range records {
		kind, ok := model.ParseEmotionKind(records[i].PrimaryEmotion)
		if !ok {
			continue
		}
		counts[kind]++
		total++
	}
	return counts, total
}

// maxByCount picks the highest-count emotion, tie-broken by canonical order.
func maxByCount(counts map[model.EmotionKind]int) model.EmotionKind {
	var best model.EmotionKind
	bestCount := -1
	for _, kind := range model.AllEmotions {
		if counts[kind] > bestCount {
			best = kind
			bestCount = counts[kind]
		}
	}
	return best
}

func emotionOrder(kind model.EmotionKind) int {
	for i, e := range model.AllEmotions {
		if e == kind {
			return i
		}
	}
	return len(model.AllEmotions)
}

// dayOf truncates a timestamp to midnight of its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
