package timezone

import (
	"time"
	_ "time/tzdata"
)

// Location is the timezone the portal renders dates in.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// Now returns the current time in the portal's timezone, "today" on a
// server running in UTC can otherwise be a day ahead of the portal.
func Now() time.Time {
	return time.Now().In(Location)
}

// Date renders the calendar date of `t` as seen from the portal's timezone.
func Date(t time.Time, layout string) string {
	return t.In(Location).Format(layout)
}
