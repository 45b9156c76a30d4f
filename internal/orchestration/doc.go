// Package orchestration runs a verification campaign: every selected check
// at every selected limb width, concurrently, with progress reporting and a
// final summary. It decouples the campaign from presentation through the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
