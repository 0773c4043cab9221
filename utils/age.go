package utils

import "time"

// birthDateLayout is the wire format for profile birth dates.
const birthDateLayout = "2006-01-02"

// AgeFromBirthDate computes a whole-year age as of now. The second return
// value is false when birthDate is empty or malformed; callers must treat
// such candidates as unrankable rather than assume an age.
func AgeFromBirthDate(birthDate string, now time.Time) (int, bool) {
	if birthDate == "" {
		return 0, false
	}
	born, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		return 0, false
	}
	age := now.Year() - born.Year()
	// Not yet had this year's birthday
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}
