// Package apperrors defines the structured error types of limbcalc and maps
// them to process exit codes. Every type keeps its cause reachable through
// errors.Is and errors.As.
package apperrors
