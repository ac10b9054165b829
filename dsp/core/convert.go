package core

const pcmScale = 1.0 / 2147483648.0

// SampleFromPCM converts a raw 32-bit signed PCM sample to a normalized
// float in [-1, 1).
func SampleFromPCM(sample int32) float64 {
	return float64(sample) * pcmScale
}

// SampleToPCM converts a normalized float to a raw 32-bit signed PCM
// sample. The input is clamped to [-1, 1] first, so out-of-range values
// saturate instead of wrapping.
func SampleToPCM(sample float64) int32 {
	sample = Clamp(sample, -1, 1)

	v := sample * 2147483648.0
	if v >= 2147483647.0 {
		return 2147483647
	}

	return int32(v)
}
