package model

import "time"

// StatsTimeFormat is the ISO-8601 layout used for createdAt in API responses.
const StatsTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// URLRecord is a stored short code target together with its visit counter.
type URLRecord struct {
	OriginalURL string
	CreatedAt   time.Time
	Visits      int64
}

// URLStats is the external representation returned by the stats API.
type URLStats struct {
	OriginalURL string    `json:"originalUrl"`
	ShortCode   string    `json:"shortCode"`
	Visits      int64     `json:"visits"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// NewURLStats builds the stats view of a record.
func NewURLStats(code string, rec URLRecord) URLStats {
	return URLStats{
		OriginalURL: rec.OriginalURL,
		ShortCode:   code,
		Visits:      rec.Visits,
		CreatedAt:   Timestamp(rec.CreatedAt),
	}
}

// Timestamp marshals as a UTC ISO-8601 string with millisecond precision.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	s := time.Time(t).UTC().Format(StatsTimeFormat)
	return []byte(`"` + s + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	parsed, err := time.Parse(`"`+StatsTimeFormat+`"`, string(b))
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time value.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
