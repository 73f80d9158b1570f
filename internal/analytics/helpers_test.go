package analytics

import (
	"time"

	"tmanalyzer/pkg/contracts/domain"
)

func day(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func filing(country string, date *time.Time, class int) domain.FilingRecord {
	return domain.FilingRecord{Country: country, FilingDate: date, ClassCode: class, Name: "mark"}
}

// yearly appends n filings of one class for the given year.
func yearly(records []domain.FilingRecord, country string, year, class, n int) []domain.FilingRecord {
	for i := 0; i < n; i++ {
		records = append(records, filing(country, day(year, 1+i%12, 1), class))
	}
	return records
}
