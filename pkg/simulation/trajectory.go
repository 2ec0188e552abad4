package simulation

import (
	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/rng"
	"github.com/riskforge/riskengine/pkg/sampling"
)

const (
	// trajectorySteps is the number of time steps the horizon is split into.
	// Horizons shorter than this get one step per day.
	trajectorySteps = 10

	// trajectorySubSamples is the sub-sample population drawn per step to
	// estimate the step's stochastic deviation from trend.
	trajectorySubSamples = 64

	// trajectoryStreamBase offsets trajectory rng streams away from the
	// chunk streams used for the main sample draw.
	trajectoryStreamBase = uint64(1) << 32

	// Trend constants: exposure probability decays over the horizon as
	// controls and awareness respond, while realized impact drifts up with
	// accumulated exposure.
	probabilityDecayRate  = 0.15
	impactAmplifyRate     = 0.10
	trajectoryJitterScale = 0.08
)

// buildTrajectory produces the time-indexed (day, probability, impact)
// sequence for a risk. Each step applies the deterministic trend to the
// qualitative ratings and then perturbs them with the observed deviation of
// a small sub-sample population, so the trajectory reflects both the trend
// and the sampling noise at that point in time.
func buildTrajectory(r risk.Input, p Parameters, sampler *sampling.Sampler, base *rng.Source) []TrajectoryPoint {
	steps := trajectorySteps
	if p.TimeframeDays < steps {
		steps = p.TimeframeDays
	}
	stepDays := float64(p.TimeframeDays) / float64(steps)

	points := make([]TrajectoryPoint, 0, steps)
	for step := 1; step <= steps; step++ {
		t := float64(step) / float64(steps)

		trended := r
		trended.Probability = clamp100(r.Probability * decay(t))
		trended.Impact = clamp100(r.Impact * amplify(t))

		src := base.Split(trajectoryStreamBase + uint64(step))
		jitter := subSampleJitter(trended, sampler, src)

		points = append(points, TrajectoryPoint{
			Day:         int(float64(step) * stepDays),
			Probability: clamp100(trended.Probability * (1 + jitter)),
			Impact:      clamp100(trended.Impact * (1 + jitter)),
		})
	}
	return points
}

// subSampleJitter draws a sub-sample population for the trended risk and
// returns the relative deviation of its mean from the distribution mode,
// scaled down to a small perturbation.
func subSampleJitter(trended risk.Input, sampler *sampling.Sampler, src *rng.Source) float64 {
	mode := trended.Severity()
	if mode == 0 {
		return 0
	}

	sum := 0.0
	drawn := 0
	for i := 0; i < trajectorySubSamples; i++ {
		v, err := sampler.Sample(trended, src)
		if err != nil {
			// Sampler failures surface from the main draw; the trajectory
			// just skips the bad draw.
			continue
		}
		sum += v
		drawn++
	}
	if drawn == 0 {
		return 0
	}

	mean := sum / float64(drawn)
	return trajectoryJitterScale * (mean/mode - 1)
}

func decay(t float64) float64 {
	return 1 - probabilityDecayRate*t
}

func amplify(t float64) float64 {
	return 1 + impactAmplifyRate*t
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
