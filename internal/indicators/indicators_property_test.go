package indicators

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any positive price series, every defined RSI value lies in [0, 100]
// and everything before the first full window is NaN.
func TestPropertyRSIBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("RSI is NaN or within [0, 100]", prop.ForAll(
		func(closes []float64) bool {
			result, err := NewRSI(14).Calculate(barsFromCloses(closes))
			if err != nil {
				t.Logf("Calculate failed: %v", err)
				return false
			}
			for i, v := range result {
				if i < 14 {
					if !math.IsNaN(v) {
						t.Logf("index %d: warmup value %v is not NaN", i, v)
						return false
					}
					continue
				}
				if math.IsNaN(v) {
					continue
				}
				if v < 0 || v > 100 {
					t.Logf("index %d: RSI %v out of range", i, v)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0.01, 10000)),
	))

	properties.Property("SMA equals the trailing window mean", prop.ForAll(
		func(closes []float64) bool {
			const period = 5
			result, err := NewSMA(period).Calculate(barsFromCloses(closes))
			if err != nil {
				return false
			}
			for i := period - 1; i < len(closes); i++ {
				var sum float64
				for j := i - period + 1; j <= i; j++ {
					sum += closes[j]
				}
				if math.Abs(result[i]-sum/period) > 1e-6 {
					t.Logf("index %d: SMA %v, want %v", i, result[i], sum/period)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0.01, 10000)),
	))

	properties.TestingRun(t)
}
