package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/limbcalc/internal/config"
)

const (
	// CurrentProfileVersion is bumped whenever the profile layout or the
	// meaning of a stored threshold changes.
	CurrentProfileVersion = 1
	// DefaultProfileFileName is the profile file name in the home directory.
	DefaultProfileFileName = ".limbcalc_calibration.json"
	// MaxProfileAge is how long a stored profile is trusted.
	MaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile records a calibration together with the hardware it ran
// on. A profile from other hardware is ignored.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CPUFeatures    []string  `json:"cpu_features,omitempty"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	OptimalKaratsubaThreshold int    `json:"optimal_karatsuba_threshold"`
	CalibrationLimbs          int    `json:"calibration_limbs"`
	CalibrationTime           string `json:"calibration_time"`
}

// NewProfile returns a profile describing the current machine, with no
// threshold yet.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    config.CPUFeatures(),
		CalibratedAt:   time.Now(),
	}
}

// IsValid reports whether the profile was recorded on hardware matching
// the current machine, with the current layout.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	current := NewProfile()
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == current.NumCPU &&
		p.GOARCH == current.GOARCH &&
		p.WordSize == current.WordSize
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile v%d (%s/%s, %d CPUs, %d-bit words, %s)\n",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, p.GoVersion)
	fmt.Fprintf(&b, "  Karatsuba threshold: %d limbs\n", p.OptimalKaratsubaThreshold)
	fmt.Fprintf(&b, "  Measured at %d limbs in %s on %s",
		p.CalibrationLimbs, p.CalibrationTime, p.CalibratedAt.Format(time.RFC3339))
	if len(p.CPUFeatures) > 0 {
		fmt.Fprintf(&b, "\n  CPU features: %s", strings.Join(p.CPUFeatures, ", "))
	}
	return b.String()
}

// SaveProfile writes the profile as indented JSON. The file is replaced
// atomically so a concurrent reader never sees half a profile.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode calibration profile: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".limbcalc-profile-*")
	if err != nil {
		return fmt.Errorf("create temporary profile: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write calibration profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write calibration profile: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadProfile reads a profile and rejects it when it belongs to other
// hardware or a different layout.
func LoadProfile(path string) (*CalibrationProfile, error) {
	p, err := loadProfile(path)
	if err != nil {
		return nil, err
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("calibration profile %s does not match this machine", path)
	}
	return p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one.
// The boolean reports whether the profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := LoadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile path in the home directory,
// falling back to the working directory.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// LoadCachedCalibration applies a stored threshold when none was given
// explicitly. It reports whether the profile was used.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.KaratsubaThreshold != 0 {
		return cfg, false
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := LoadProfile(path)
	if err != nil || p.IsStale(MaxProfileAge) || p.OptimalKaratsubaThreshold <= 0 {
		return cfg, false
	}
	cfg.KaratsubaThreshold = p.OptimalKaratsubaThreshold
	return cfg, true
}
