package dataprocessing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Column is a canonical filing column recognised in a sheet header.
type Column int

const (
	ColumnUnknown Column = iota
	ColumnDate
	ColumnClass
	ColumnGroup
	ColumnGoods
	ColumnName
	ColumnCountry
)

var columnNames = map[Column]string{
	ColumnUnknown: "unknown",
	ColumnDate:    "date",
	ColumnClass:   "class",
	ColumnGroup:   "group",
	ColumnGoods:   "goods",
	ColumnName:    "name",
	ColumnCountry: "country",
}

func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return "unknown"
}

var lower = cases.Lower(language.Und)

// normalizeHeader composes Hangul jamo (exports from macOS use NFD) and lower-cases.
func normalizeHeader(header string) string {
	return lower.String(norm.NFC.String(strings.TrimSpace(header)))
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// MatchColumn maps a raw header cell to a canonical column. Checks run in a
// fixed order so "유사군코드" is a group and "상품분류" is a class.
func MatchColumn(header string) Column {
	h := normalizeHeader(header)
	switch {
	case h == "":
		return ColumnUnknown
	case containsAny(h, "출원일", "application date", "filing date") || h == "date":
		return ColumnDate
	case containsAny(h, "유사군", "similarity", "group"):
		return ColumnGroup
	case containsAny(h, "류", "class"):
		return ColumnClass
	case containsAny(h, "지정상품", "goods"):
		return ColumnGoods
	case nameRank(h) > 0:
		return ColumnName
	case containsAny(h, "국가", "country"):
		return ColumnCountry
	}
	return ColumnUnknown
}

const (
	rankGeneric  = 1
	rankSpecific = 2
)

// nameRank scores a normalized header as a trademark name column. Owner and
// applicant headers never match even though they often contain "name" or "상표".
func nameRank(h string) int {
	switch {
	case containsAny(h, "출원인", "권자", "대리인", "applicant", "owner", "holder", "agent"):
		return 0
	case containsAny(h, "상표명", "trademark", "mark name"):
		return rankSpecific
	case containsAny(h, "상표", "name"):
		return rankGeneric
	}
	return 0
}

func headerRank(col Column, header string) int {
	if col == ColumnName {
		return nameRank(normalizeHeader(header))
	}
	return rankSpecific
}

// ColumnMap holds the index of each canonical column in a header row.
type ColumnMap map[Column]int

// MapColumns matches every header cell. The first cell matching a column
// wins unless a later cell matches it more specifically.
func MapColumns(header []string) ColumnMap {
	m := make(ColumnMap)
	ranks := make(map[Column]int)
	for i, h := range header {
		col := MatchColumn(h)
		if col == ColumnUnknown {
			continue
		}
		if rank := headerRank(col, h); rank > ranks[col] {
			m[col] = i
			ranks[col] = rank
		}
	}
	return m
}

// Has reports whether the column was found.
func (m ColumnMap) Has(col Column) bool {
	_, ok := m[col]
	return ok
}

// Value returns the trimmed cell for col, or "" when the column is absent or the row is short.
func (m ColumnMap) Value(row []string, col Column) string {
	idx, ok := m[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
