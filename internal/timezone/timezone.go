package timezone

import "time"

const DefaultTimezone = "America/New_York"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// TodayISO returns the clinic-local calendar date as a zero-padded ISO string,
// the same format appointment dates are stored in. Lexical comparison against
// stored dates is therefore a correct calendar comparison.
func TodayISO(tz string) string {
	return NowIn(tz).Format("2006-01-02")
}
