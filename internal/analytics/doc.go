// Package analytics computes descriptive statistics over a consolidated
// filing table. Every function is pure: it reads a domain.FilingTable and
// returns a result value for the report and export layers to format.
//
// The basic run covers yearly counts and growth per country, the class mix,
// portfolio breadth and name/goods text statistics. The market run covers
// global and per-country top classes, similarity groups, recent trends,
// class growth and seasonality.
package analytics
