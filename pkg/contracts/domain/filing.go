package domain

import (
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"
)

// FallbackClassLabel is the class key used for filings whose class code has no digits.
const FallbackClassLabel = "기타"

// NamePlaceholder replaces a missing trademark name.
const NamePlaceholder = "(상표명칭 정보 없음)"

// goodsSplitter matches the separators used inside designated-goods text.
var goodsSplitter = regexp.MustCompile(`//|,|\n`)

// nameNoise matches characters ignored when measuring a trademark name.
var nameNoise = regexp.MustCompile(`\s|\(|\)`)

// FilingRecord is one trademark filing row after normalization.
type FilingRecord struct {
	Country    string     `json:"country" validate:"required"`
	FilingDate *time.Time `json:"filing_date,omitempty"`
	ClassCode  int        `json:"class_code"`
	RawClass   string     `json:"raw_class,omitempty"`
	Name       string     `json:"name"`
	Goods      string     `json:"goods,omitempty"`
	Group      string     `json:"group,omitempty"`
	SourceFile string     `json:"source_file"`
	SourceRow  int        `json:"source_row"`
}

// HasDate reports whether the filing date could be parsed.
func (r FilingRecord) HasDate() bool {
	return r.FilingDate != nil
}

// Year returns the filing year when the date is known.
func (r FilingRecord) Year() (int, bool) {
	if r.FilingDate == nil {
		return 0, false
	}
	return r.FilingDate.Year(), true
}

// Month returns the filing month (1-12) when the date is known.
func (r FilingRecord) Month() (int, bool) {
	if r.FilingDate == nil {
		return 0, false
	}
	return int(r.FilingDate.Month()), true
}

// ClassKey returns the class code as a lookup key, "기타" for the fallback bucket.
func (r FilingRecord) ClassKey() string {
	return ClassKey(r.ClassCode)
}

// NameLength counts the characters of the name ignoring whitespace and parentheses.
func (r FilingRecord) NameLength() int {
	return utf8.RuneCountInString(nameNoise.ReplaceAllString(r.Name, ""))
}

// GoodsItems splits the designated-goods text into its raw items.
func (r FilingRecord) GoodsItems() []string {
	return goodsSplitter.Split(r.Goods, -1)
}

// GoodsCount is the number of designated-goods items. An empty field counts as one item.
func (r FilingRecord) GoodsCount() int {
	return len(r.GoodsItems())
}

// ClassKey converts a numeric class code into its string key.
func ClassKey(code int) string {
	if code <= 0 {
		return FallbackClassLabel
	}
	return strconv.Itoa(code)
}

// FilingTable is the consolidated, ordered set of filings from every loaded file.
type FilingTable struct {
	Records []FilingRecord `json:"records"`
}

// NewFilingTable wraps records into a table.
func NewFilingTable(records []FilingRecord) *FilingTable {
	return &FilingTable{Records: records}
}

// Len returns the number of rows.
func (t *FilingTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// IsEmpty reports whether the table has no rows.
func (t *FilingTable) IsEmpty() bool {
	return t.Len() == 0
}

// Append adds records to the end of the table.
func (t *FilingTable) Append(records ...FilingRecord) {
	t.Records = append(t.Records, records...)
}

// Countries lists country labels in order of first appearance.
func (t *FilingTable) Countries() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	var countries []string
	for _, r := range t.Records {
		if !seen[r.Country] {
			seen[r.Country] = true
			countries = append(countries, r.Country)
		}
	}
	return countries
}

// ByCountry groups rows per country, preserving row order inside each group.
func (t *FilingTable) ByCountry() map[string][]FilingRecord {
	groups := make(map[string][]FilingRecord)
	if t == nil {
		return groups
	}
	for _, r := range t.Records {
		groups[r.Country] = append(groups[r.Country], r)
	}
	return groups
}

// Dated returns only the rows with a parsed filing date.
func (t *FilingTable) Dated() []FilingRecord {
	if t == nil {
		return nil
	}
	dated := make([]FilingRecord, 0, len(t.Records))
	for _, r := range t.Records {
		if r.HasDate() {
			dated = append(dated, r)
		}
	}
	return dated
}

// NullDates counts rows whose filing date could not be parsed.
func (t *FilingTable) NullDates() int {
	return t.Len() - len(t.Dated())
}
