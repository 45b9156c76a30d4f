// Package calibration finds the fastest Karatsuba threshold on the current
// machine and keeps it in a JSON profile, so later campaigns start with a
// measured value instead of the CPU estimate.
package calibration
