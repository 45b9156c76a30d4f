// Package cli renders a verification campaign in the terminal: the
// configuration banner, a spinner with the progress bar while checks run,
// and the summary table with replay commands for failed cases.
package cli
