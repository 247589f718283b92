package helper

import (
	"strings"
	"time"
)

// IsFrontDeskOpen reports whether the front desk accepts check-ins right
// now, given its configured opening hours. Times use the hospital's
// timezone (America/Fortaleza).
func IsFrontDeskOpen(openAt, closeAt string) bool {
	loc, err := time.LoadLocation("America/Fortaleza")
	if err != nil {
		return false
	}
	return isOpenAt(time.Now().In(loc), openAt, closeAt)
}

func isOpenAt(now time.Time, openAt, closeAt string) bool {
	loc := now.Location()

	// Database TIME format can be HH:MM:SS or HH:MM
	layout := "15:04:05"

	if strings.Count(openAt, ":") == 1 {
		openAt += ":00"
	}
	if strings.Count(closeAt, ":") == 1 {
		closeAt += ":00"
	}

	openTime, err := time.ParseInLocation(layout, openAt, loc)
	if err != nil {
		return false
	}

	closeTime, err := time.ParseInLocation(layout, closeAt, loc)
	if err != nil {
		return false
	}

	openTime = time.Date(
		now.Year(), now.Month(), now.Day(),
		openTime.Hour(), openTime.Minute(), openTime.Second(),
		0, loc,
	)

	closeTime = time.Date(
		now.Year(), now.Month(), now.Day(),
		closeTime.Hour(), closeTime.Minute(), closeTime.Second(),
		0, loc,
	)

	// Closing time past midnight, e.g. open 22:00 close 02:00
	if closeTime.Before(openTime) {
		closeTime = closeTime.Add(24 * time.Hour)

		if now.Before(openTime) {
			openTime = openTime.Add(-24 * time.Hour)
		}
	}

	return now.After(openTime) && now.Before(closeTime)
}
