// Package report renders analysis results for people: aligned UTF-8 text
// tables and PNG charts drawn with gonum/plot. Writers take an io.Writer so
// callers decide where the output lands.
package report
