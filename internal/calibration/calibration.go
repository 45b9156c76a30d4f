package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/limb"
)

// DefaultRounds is how many products are timed per threshold.
const DefaultRounds = 20

// QuickRounds is how many products a quick calibration times per threshold.
const QuickRounds = 5

// Options controls a calibration run. Zero values select the defaults.
type Options struct {
	Thresholds []int
	Limbs      int
	Rounds     int
	Seed       int64
	Logger     logging.Logger
}

type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

func (o Options) withDefaults() Options {
	if len(o.Thresholds) == 0 {
		o.Thresholds = GenerateKaratsubaThresholds()
	}
	if o.Limbs <= 0 {
		o.Limbs = CalibrationLimbs(o.Thresholds)
	}
	if o.Rounds <= 0 {
		o.Rounds = DefaultRounds
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// measure times Multiplier.Product on 64-bit limbs for every candidate
// threshold and returns the fastest one. Every product is checked against
// the schoolbook product, so a wrong Karatsuba path fails the candidate
// instead of winning it.
func measure(ctx context.Context, opts Options) (int, []calibrationResult, error) {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))
	n := opts.Limbs
	x, y := randomLimbs(rng, n), randomLimbs(rng, n)
	xv, _ := limb.NewView(x, limb.Zero)
	yv, _ := limb.NewView(y, limb.Zero)

	want := make([]uint64, 2*n)
	wm, _ := limb.NewMut(want, limb.Zero)
	wm.SetLongProduct(xv, yv, 0)

	z := make([]uint64, 2*n)
	zm, _ := limb.NewMut(z, limb.Zero)
	scratch := make([]uint64, limb.ProductScratch(n, n))
	sm, _ := limb.NewMut(scratch, limb.Zero)

	results := make([]calibrationResult, 0, len(opts.Thresholds))
	best, bestTime := 0, time.Duration(0)
	for _, threshold := range opts.Thresholds {
		if err := ctx.Err(); err != nil {
			return 0, results, err
		}
		m := limb.Multiplier[uint64]{Threshold: threshold}
		res := calibrationResult{Threshold: threshold}
		start := time.Now()
		for range opts.Rounds {
			m.Product(zm, xv, yv, sm)
		}
		res.Duration = time.Since(start) / time.Duration(opts.Rounds)
		if !slices.Equal(z, want) {
			res.Err = fmt.Errorf("threshold %d: product differs from the schoolbook product", threshold)
			opts.Logger.Error("calibration candidate rejected", res.Err, logging.Int("threshold", threshold))
		} else {
			opts.Logger.Debug("calibration candidate timed",
				logging.Int("threshold", threshold),
				logging.Int("limbs", n),
				logging.Float64("seconds", res.Duration.Seconds()))
			if best == 0 || res.Duration < bestTime {
				best, bestTime = threshold, res.Duration
			}
		}
		results = append(results, res)
	}
	if best == 0 {
		return 0, results, fmt.Errorf("calibration: no candidate threshold produced a correct product")
	}
	return best, results, nil
}

func randomLimbs(rng *rand.Rand, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = rng.Uint64()
	}
	return out
}

// RunCalibration measures every candidate threshold, prints the table and
// stores the winner in the profile at profilePath (the default path when
// empty). It returns the process exit code.
func RunCalibration(ctx context.Context, out io.Writer, profilePath string, opts Options) int {
	opts = opts.withDefaults()
	fmt.Fprintf(out, "Calibrating the Karatsuba threshold on %d-limb operands (%d candidates)...\n",
		opts.Limbs, len(opts.Thresholds))

	start := time.Now()
	best, results, err := measure(ctx, opts)
	if err != nil {
		if apperrors.IsContextError(err) {
			fmt.Fprintf(out, "Calibration interrupted: %v\n", err)
		} else {
			fmt.Fprintf(out, "Calibration failed: %v\n", err)
		}
		return apperrors.ExitCodeFor(err)
	}
	printCalibrationResults(out, results, best)

	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = best
	profile.CalibrationLimbs = opts.Limbs
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	if profilePath == "" {
		profilePath = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(profilePath); err != nil {
		opts.Logger.Error("could not save calibration profile", err, logging.String("path", profilePath))
		fmt.Fprintf(out, "Warning: profile not saved: %v\n", err)
	} else {
		fmt.Fprintf(out, "Profile saved to %s\n", profilePath)
	}
	printCalibrationOutput(out, best)
	return apperrors.ExitSuccess
}

// AutoCalibrate fills a zero KaratsubaThreshold. A fresh profile at path is
// reused; otherwise the quick candidate list is timed and the winner saved
// to path. The boolean reports whether a threshold was set. An explicit
// threshold is never replaced.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, path string, logger logging.Logger) (config.AppConfig, bool) {
	if cfg.KaratsubaThreshold != 0 {
		return cfg, false
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}

	profile, loaded := LoadOrCreateProfile(path)
	if loaded && !profile.IsStale(MaxProfileAge) && profile.OptimalKaratsubaThreshold > 0 {
		cfg.KaratsubaThreshold = profile.OptimalKaratsubaThreshold
		return cfg, true
	}

	opts := Options{
		Thresholds: GenerateQuickKaratsubaThresholds(),
		Rounds:     QuickRounds,
		Seed:       cfg.Seed,
		Logger:     logger,
	}.withDefaults()
	start := time.Now()
	best, _, err := measure(ctx, opts)
	if err != nil {
		logger.Error("quick calibration failed", err)
		return cfg, false
	}

	profile.CalibratedAt = time.Now()
	profile.OptimalKaratsubaThreshold = best
	profile.CalibrationLimbs = opts.Limbs
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	if err := profile.SaveProfile(path); err != nil {
		logger.Error("could not save calibration profile", err, logging.String("path", path))
	}
	logger.Info("quick calibration done",
		logging.Int("karatsuba_threshold", best),
		logging.String("profile", path))
	cfg.KaratsubaThreshold = best
	return cfg, true
}
