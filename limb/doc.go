// Package limb implements arithmetic over sequences of fixed-width machine
// words ("limbs"), least significant first, each followed by an infinite
// repetition of a single appendix bit that encodes sign extension.
//
// Views (View, Mut) wrap caller-owned slices and never allocate. Operations
// that may lose information report it through Fallible's error flag instead of
// panicking; constructors that can be handed invalid input return a boolean.
//
// The package is generic over the word width (uint8 through uint64). Every
// algorithm is instantiated per width, so the hot paths contain no interface
// calls.
package limb
