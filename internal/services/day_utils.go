package services

import "time"

const dayLayout = "2006-01-02"

// DateAtLocation is midnight of the day value falls on in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDate keeps the year, month and day of value as written and anchors them at
// midnight in location. Stored dates carry no meaningful zone, so they are never converted.
func CalendarDate(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDaysBetween counts whole calendar days from from to to, ignoring time of day and DST shifts.
func CalendarDaysBetween(from time.Time, to time.Time) int {
	fromYear, fromMonth, fromDay := from.Date()
	toYear, toMonth, toDay := to.Date()
	fromUTC := time.Date(fromYear, fromMonth, fromDay, 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(toYear, toMonth, toDay, 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}
