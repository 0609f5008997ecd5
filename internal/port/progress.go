package port

// Progress receives coarse milestone updates from long-running pipelines.
// It is an observation side channel only; implementations must not influence
// pipeline behavior.
type Progress interface {
	Report(fraction float64, message string)
}

// NopProgress discards all updates. It is the default sink so pipelines
// never branch on whether a caller supplied one.
type NopProgress struct{}

func (NopProgress) Report(float64, string) {}
