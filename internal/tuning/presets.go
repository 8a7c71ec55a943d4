package tuning

import "fmt"

// #region presets

// Preset names a canonical tuning. Presets are fixed constants; applying one
// copies its tuning into the session, it is never mutated in place.
type Preset string

const (
	PresetBalanced   Preset = "balanced"
	PresetResponsive Preset = "responsive"
	PresetCinematic  Preset = "cinematic"
)

// Presets lists every preset in display order.
var Presets = []Preset{PresetBalanced, PresetResponsive, PresetCinematic}

// ParsePreset maps a raw string to a Preset.
func ParsePreset(raw string) (Preset, error) {
	switch Preset(raw) {
	case PresetBalanced, PresetResponsive, PresetCinematic:
		return Preset(raw), nil
	}
	return "", fmt.Errorf("unknown preset %q", raw)
}

// Label returns the human-readable preset name.
func (p Preset) Label() string {
	switch p {
	case PresetResponsive:
		return "Responsive"
	case PresetCinematic:
		return "Cinematic"
	default:
		return "Balanced"
	}
}

// Tuning returns the canonical tuning literal for the preset.
func (p Preset) Tuning() Tuning {
	switch p {
	case PresetResponsive:
		return Tuning{
			SplitStiffness:     210,
			SplitDamping:       20,
			SettleStiffness:    172,
			SettleDamping:      12,
			PreSplitDelay:      0.2,
			GestureCommitDelay: 0.06,
			PreSettleDelay:     0.46,
			PostSettleDelay:    0.3,
			GestureThreshold:   0.58,
			PullDistance:       185,
			VelocityScale:      145,
			VelocityInfluence:  0.8,
			BiasInfluence:      0.42,
		}
	case PresetCinematic:
		return Tuning{
			SplitStiffness:     156,
			SplitDamping:       23,
			SettleStiffness:    128,
			SettleDamping:      16,
			PreSplitDelay:      0.44,
			GestureCommitDelay: 0.12,
			PreSettleDelay:     0.74,
			PostSettleDelay:    0.52,
			GestureThreshold:   0.65,
			PullDistance:       238,
			VelocityScale:      182,
			VelocityInfluence:  0.66,
			BiasInfluence:      0.5,
		}
	default:
		return Tuning{
			SplitStiffness:     180,
			SplitDamping:       22,
			SettleStiffness:    145,
			SettleDamping:      14,
			PreSplitDelay:      0.32,
			GestureCommitDelay: 0.10,
			PreSettleDelay:     0.56,
			PostSettleDelay:    0.42,
			GestureThreshold:   0.62,
			PullDistance:       210,
			VelocityScale:      160,
			VelocityInfluence:  0.72,
			BiasInfluence:      0.45,
		}
	}
}

// #endregion presets
