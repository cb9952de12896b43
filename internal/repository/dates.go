package repository

import "time"

const dateLayout = "2006-01-02"

// DATE columns travel as time.Time through pgx, models keep plain
// YYYY-MM-DD strings. Conversion happens only here at the scan boundary.

func dateToString(t time.Time) string {
	return t.Format(dateLayout)
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func stringToDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func stringPtrToDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
