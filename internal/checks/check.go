package checks

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/limb"
)

// Params describes one (check, width) run.
type Params struct {
	// Width is the limb width in bits: 8, 16, 32 or 64.
	Width int
	// Cases is the number of generated cases.
	Cases int
	// MaxLimbs bounds operand lengths.
	MaxLimbs int
	// Seed is the campaign seed every case seed derives from.
	Seed int64
	// KaratsubaThreshold is the production threshold; checks that compare
	// multiplication paths also draw smaller ones.
	KaratsubaThreshold int
	// Replay, when not negative, replaces the generated cases by the single
	// case with this seed.
	Replay int64
}

// Total returns the number of cases Run will execute.
func (p Params) Total() int {
	if p.Replay >= 0 {
		return 1
	}
	return p.Cases
}

// Check is one kernel property, verified against a math/big oracle.
type Check interface {
	// Name is the registry key, as accepted by -checks.
	Name() string
	// Description is a one-line summary for -list.
	Description() string
	// Run executes the cases for p. done is called with the number of
	// finished cases; it may be nil. A failed case is returned as an
	// apperrors.CheckError carrying the case seed.
	Run(ctx context.Context, p Params, done func(int)) error
}

type caseFunc[T limb.Word] func(g *Generator[T], p Params) error

// property instantiates one case function per limb width.
type property struct {
	name        string
	description string
	w8          caseFunc[uint8]
	w16         caseFunc[uint16]
	w32         caseFunc[uint32]
	w64         caseFunc[uint64]
}

func (c property) Name() string        { return c.name }
func (c property) Description() string { return c.description }

func (c property) Run(ctx context.Context, p Params, done func(int)) error {
	switch p.Width {
	case 8:
		return runCases(ctx, c.name, p, done, c.w8)
	case 16:
		return runCases(ctx, c.name, p, done, c.w16)
	case 32:
		return runCases(ctx, c.name, p, done, c.w32)
	case 64:
		return runCases(ctx, c.name, p, done, c.w64)
	}
	return apperrors.ValidationError{Field: "width", Message: fmt.Sprintf("unsupported limb width %d", p.Width)}
}

// ctxCheckInterval is how many cases run between context checks.
const ctxCheckInterval = 16

func runCases[T limb.Word](ctx context.Context, name string, p Params, done func(int), fn caseFunc[T]) error {
	total := p.Total()
	for i := 0; i < total; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		seed := p.Replay
		if seed < 0 {
			seed = CaseSeed(p.Seed, name, p.Width, i)
		}
		if err := fn(NewGenerator[T](seed, p.MaxLimbs), p); err != nil {
			return apperrors.CheckError{Check: name, Width: p.Width, Seed: seed, Cause: err}
		}
		if done != nil {
			done(i + 1)
		}
	}
	return nil
}

// CaseSeed derives the seed of case index from the campaign seed. Seeds are
// never negative, so any of them can be passed to -replay.
func CaseSeed(seed int64, name string, width, index int) int64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	buf = append(buf, name...)
	buf = append(buf, '/')
	buf = strconv.AppendInt(buf, int64(width), 10)
	buf = append(buf, '/')
	buf = strconv.AppendInt(buf, seed, 10)
	buf = append(buf, '/')
	buf = strconv.AppendInt(buf, int64(index), 10)
	_, _ = d.Write(buf)
	return int64(d.Sum64() >> 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

var registry = []Check{
	property{"carry", "increment/decrement chains, carry in and carry out",
		carryCase[uint8], carryCase[uint16], carryCase[uint32], carryCase[uint64]},
	property{"roundtrip", "(x / d) * d + x % d == x for single-word divisors",
		roundTripCase[uint8], roundTripCase[uint16], roundTripCase[uint32], roundTripCase[uint64]},
	property{"multiply", "schoolbook and Karatsuba agree, commute and square",
		multiplyCase[uint8], multiplyCase[uint16], multiplyCase[uint32], multiplyCase[uint64]},
	property{"reciprocal", "single-word reciprocal divider agrees with division",
		reciprocalCase[uint8], reciprocalCase[uint16], reciprocalCase[uint32], reciprocalCase[uint64]},
	property{"reciprocal21", "double-word reciprocal divider agrees with division",
		reciprocal21Case[uint8], reciprocal21Case[uint16], reciprocal21Case[uint32], reciprocal21Case[uint64]},
	property{"longdiv", "multi-limb long division against big.Int.QuoRem",
		longDivCase[uint8], longDivCase[uint16], longDivCase[uint32], longDivCase[uint64]},
	property{"shift", "upshift overflow, arithmetic downshift and shift inverse",
		shiftCase[uint8], shiftCase[uint16], shiftCase[uint32], shiftCase[uint64]},
	property{"counting", "bit counts, runs and entropy over the appendix",
		countingCase[uint8], countingCase[uint16], countingCase[uint32], countingCase[uint64]},
	property{"compare", "comparison and signum ignore appendix padding",
		compareCase[uint8], compareCase[uint16], compareCase[uint32], compareCase[uint64]},
	property{"recast", "re-slicing across widths keeps little-endian order",
		recastCase[uint8], recastCase[uint16], recastCase[uint32], recastCase[uint64]},
}

// All returns every registered check in registry order.
func All() []Check {
	return slices.Clone(registry)
}

// Names returns the names of list, in order.
func Names(list []Check) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name()
	}
	return names
}

// Select returns the checks of list named in names, in the order of names.
// An unknown name is a configuration error.
func Select(list []Check, names []string) ([]Check, error) {
	selected := make([]Check, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(list, func(c Check) bool { return c.Name() == name })
		if i < 0 {
			return nil, apperrors.NewConfigError("unknown check %q", name)
		}
		selected = append(selected, list[i])
	}
	return selected, nil
}
