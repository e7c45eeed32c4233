// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ResolveDate validates a YYYY-MM-DD date and slides weekend dates back
// to the preceding Friday, since the listing only covers business days.
// An empty date passes through unchanged (meaning "latest").
func ResolveDate(date string) (string, error) {
	if date == "" {
		return "", nil
	}

	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	switch t.Weekday() {
	case time.Saturday:
		t = t.AddDate(0, 0, -1)
	case time.Sunday:
		t = t.AddDate(0, 0, -2)
	}

	return t.Format(dateLayout), nil
}
