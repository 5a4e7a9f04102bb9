package core

import "time"

// Semester bills come due in fixed anchor months; yearly bills are always
// anchored to January. These are deliberate policy constants, not settings.
var semesterAnchors = [...]time.Month{time.January, time.September}

// NextDueDate computes the next occurrence of a bill due on dueDay of the
// month, relative to ref. The result is never before ref's calendar date.
//
// Monthly: dueDay in ref's month when ref's day has not passed it, otherwise
// dueDay in the following month. Semester: dueDay in the next anchor month
// (January or September) strictly after ref's month, wrapping to January of
// the next year. Yearly: dueDay in January of the current year only when ref
// is in January with its day not past dueDay, otherwise January next year.
//
// A dueDay of 29-31 that does not exist in the target month clamps to the
// last day of that month, so the result is always a valid calendar date.
func NextDueDate(dueDay int, frequency Frequency, ref time.Time) (Date, error) {
	if dueDay < 1 || dueDay > 31 {
		return Date{}, ErrInvalidDueDay
	}
	if err := frequency.Validate(); err != nil {
		return Date{}, err
	}

	year, month, day := ref.Date()

	switch frequency {
	case FreqMonthly:
		if day <= dueDay {
			return clampedDate(year, month, dueDay), nil
		}
		return clampedDate(year, month+1, dueDay), nil

	case FreqSemester:
		for _, anchor := range semesterAnchors {
			if anchor > month {
				return clampedDate(year, anchor, dueDay), nil
			}
		}
		return clampedDate(year+1, time.January, dueDay), nil

	default: // FreqYearly
		if month == time.January && day <= dueDay {
			return clampedDate(year, time.January, dueDay), nil
		}
		return clampedDate(year+1, time.January, dueDay), nil
	}
}

// clampedDate builds a date, clamping day to the last day of the month
// instead of letting time.Date roll it into the next month.
func clampedDate(year int, month time.Month, day int) Date {
	last := lastDayOfMonth(year, month)
	if day > last {
		day = last
	}
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
