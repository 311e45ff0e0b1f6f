package progression

import "time"

type DayActivity struct {
	Date   string `json:"date"`
	Day    string `json:"day"`
	Active bool   `json:"active"`
}

// WeeklyActivity marks each day of the Monday-start week containing today that has at
// least one entry. entryTimes are converted to calendar dates in loc.
func WeeklyActivity(today string, entryTimes []time.Time, loc *time.Location) ([]DayActivity, error) {
	start, err := WeekStart(today)
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(entryTimes))
	for _, t := range entryTimes {
		active[LocalDate(t, loc)] = true
	}
	out := make([]DayActivity, 0, 7)
	for i := 0; i < 7; i++ {
		d, err := AddDays(start, i)
		if err != nil {
			return nil, err
		}
		parsed, _ := time.Parse(DateLayout, d)
		out = append(out, DayActivity{Date: d, Day: parsed.Weekday().String()[:3], Active: active[d]})
	}
	return out, nil
}
