// Package logging provides the structured logging interface used across
// limbcalc. Components depend on Logger; the zerolog adapter is the default
// backend and a standard library adapter exists for plain-text output.
package logging
