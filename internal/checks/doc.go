// Package checks holds the kernel properties limbcalc verifies. Each check
// is instantiated for 8, 16, 32 and 64-bit limbs, draws its cases from a
// seeded Generator and compares the limb package against math/big.
//
// Every case has its own seed, derived from the campaign seed, so a failure
// reported as an apperrors.CheckError can be replayed alone.
package checks
