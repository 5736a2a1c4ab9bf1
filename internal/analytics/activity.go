package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// ComputeActivityByYear partitions the observed span into calendar years
// and reports active/inactive day counts per year, with a synthetic
// "Overall" row first. Boundary years are partial: their total_days run
// from the first/last observed day to the year's edge. Interior years use
// the full calendar length, so leap years count 366.
func ComputeActivityByYear(timestamps []time.Time) []models.ActivityYearRecord {
	if len(timestamps) == 0 {
		return []models.ActivityYearRecord{}
	}

	activeByYear := make(map[int]map[string]bool)
	first, last := dateOnly(timestamps[0]), dateOnly(timestamps[0])
	totalActive := 0
	seen := make(map[string]bool)
	for _, ts := range timestamps {
		day := dateOnly(ts)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
		key := day.Format(dateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		totalActive++
		if activeByYear[day.Year()] == nil {
			activeByYear[day.Year()] = make(map[string]bool)
		}
		activeByYear[day.Year()][key] = true
	}

	years := make([]int, 0, len(activeByYear))
	for y := range activeByYear {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := make([]models.ActivityYearRecord, 0, len(years)+1)
	rows = append(rows, activityRow("Overall", daysInclusive(first, last), totalActive))
	for _, y := range years {
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
		if y == first.Year() {
			start = first
		}
		if y == last.Year() {
			end = last
		}
		rows = append(rows, activityRow(strconv.Itoa(y), daysInclusive(start, end), len(activeByYear[y])))
	}
	return rows
}

func activityRow(year string, totalDays, active int) models.ActivityYearRecord {
	inactive := totalDays - active
	row := models.ActivityYearRecord{
		Year:         year,
		TotalDays:    totalDays,
		DaysActive:   active,
		DaysInactive: inactive,
	}
	if totalDays > 0 {
		row.PctActive = round1(float64(active) / float64(totalDays) * 100)
		row.PctInactive = round1(float64(inactive) / float64(totalDays) * 100)
	}
	return row
}

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
