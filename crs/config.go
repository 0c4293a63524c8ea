package crs

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DatumShiftPolicy decides when a transform shifts between datums.
type DatumShiftPolicy int

const (
	// PolicyCompatible shifts only when both CRSs are projected and their
	// datums differ. Transforms from or to a CRS without a projection never
	// shift, even if its datum differs.
	PolicyCompatible DatumShiftPolicy = iota
	// PolicyStrict shifts whenever both datums are known and differ.
	PolicyStrict
)

func (p DatumShiftPolicy) String() string {
	switch p {
	case PolicyCompatible:
		return "compatible"
	case PolicyStrict:
		return "strict"
	default:
		return "unknown"
	}
}

func (p DatumShiftPolicy) MarshalText() ([]byte, error) {
	if p != PolicyCompatible && p != PolicyStrict {
		return nil, errors.Errorf("crs: unknown datum shift policy %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *DatumShiftPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "compatible", "":
		*p = PolicyCompatible
	case "strict":
		*p = PolicyStrict
	default:
		return errors.Errorf("crs: unknown datum shift policy %q", text)
	}
	return nil
}

// Config holds the behaviour switches of a Transform.
type Config struct {
	DatumShift DatumShiftPolicy `toml:"datum_shift"`
	// PropagateHeight carries Z through the datum shift. When false the
	// height is zeroed before the shift and the output Z is 0.
	PropagateHeight bool `toml:"propagate_height"`
}

// DefaultConfig returns the compatible policy without height propagation.
func DefaultConfig() Config {
	return Config{DatumShift: PolicyCompatible}
}

// DecodeConfig reads a TOML configuration. Keys missing from r keep their
// defaults; unknown keys are an error.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "crs: decoding config")
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "crs: loading config %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.Errorf("crs: unknown config keys %v", keys)
	}
	return nil
}
