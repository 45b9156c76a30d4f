// Package app wires configuration, the check registry, calibration,
// metrics and presentation into the limbcalc command.
package app
