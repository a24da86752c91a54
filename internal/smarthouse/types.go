package smarthouse

import (
	"fmt"
	"time"
)

// Units recognised by the statistics queries.
const (
	UnitCelsius  = "°C"
	UnitHumidity = "%"
)

// dateLayout is the ISO-8601 calendar date format used for query bounds.
const dateLayout = "2006-01-02"

// timestampLayouts are the timestamp formats found in the measurements table.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	dateLayout,
}

// Measurement is a single sensor reading. It is a value type and never
// changes after creation.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`

	// Timestamp is the ISO-8601 text as stored, e.g. "2024-01-27 09:00:00".
	Timestamp string `json:"timestamp"`
}

// Time parses the measurement timestamp. Timestamps without a zone are UTC.
func (m Measurement) Time() (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing measurement timestamp %q: unknown format", m.Timestamp)
}

// String implements fmt.Stringer.
func (m Measurement) String() string {
	return fmt.Sprintf("%s %g %s", m.Timestamp, m.Value, m.Unit)
}

// DailyAverage is the mean temperature of one calendar day.
type DailyAverage struct {
	Date    string  `json:"date"`
	Celsius float64 `json:"celsius"`
}

// parseDate validates an optional YYYY-MM-DD date argument.
// The empty string means "no bound" and is accepted.
func parseDate(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, value)
	}
	return nil
}
