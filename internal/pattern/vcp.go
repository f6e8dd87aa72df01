package pattern

import (
	"math"

	"StockRadar/internal/model"
)

const (
	vcpWindow         = 20
	vcpMaxContraction = 0.75
	vcpMaxVolumeRatio = 0.9
)

// DetectVCP evaluates the volatility-contraction pattern at the series'
// last bar: the most recent 20 bars against the 20 bars before them.
// Shorter series shrink the windows rather than fail; with no older window
// at all the ratios degenerate to +Inf and no signal is produced.
func DetectVCP(s model.Series) model.VCPStatus {
	recStart := len(s) - vcpWindow
	if recStart < 0 {
		recStart = 0
	}
	oldStart := recStart - vcpWindow
	if oldStart < 0 {
		oldStart = 0
	}
	recent := s[recStart:]
	older := s[oldStart:recStart]

	cr := ratio(avgRange(recent), avgRange(older))
	vr := ratio(avgVolume(recent), avgVolume(older))

	tightness := (1 - cr) * 200
	if tightness < 0 || math.IsNaN(tightness) {
		tightness = 0
	} else if tightness > 100 {
		tightness = 100
	}

	return model.VCPStatus{
		IsVCP:            cr < vcpMaxContraction && vr < vcpMaxVolumeRatio,
		ContractionRatio: cr,
		VolumeRatio:      vr,
		TightnessScore:   tightness,
	}
}

// ratio guards the degenerate flat-window case: a zero denominator yields
// +Inf, which fails every contraction threshold instead of leaking a NaN.
func ratio(recent, older float64) float64 {
	if older == 0 {
		return math.Inf(1)
	}
	return recent / older
}

func avgRange(bars model.Series) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.High - b.Low
	}
	return sum / float64(len(bars))
}

func avgVolume(bars model.Series) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Volume
	}
	return sum / float64(len(bars))
}
