package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/sampling"
)

func TestFingerprint_OrderIndependent(t *testing.T) {
	risks := portfolio()
	reversed := []risk.Input{risks[2], risks[1], risks[0]}

	p := testParams()
	assert.Equal(t,
		fingerprint(risks, p, 1, "custom"),
		fingerprint(reversed, p, 1, "custom"),
	)
}

func TestFingerprint_SensitiveToInputs(t *testing.T) {
	risks := portfolio()
	p := testParams()
	base := fingerprint(risks, p, 1, "custom")

	changedSeed := fingerprint(risks, p, 2, "custom")
	assert.NotEqual(t, base, changedSeed)

	changedFramework := fingerprint(risks, p, 1, "nist-rmf")
	assert.NotEqual(t, base, changedFramework)

	bumped := testParams()
	bumped.Iterations++
	assert.NotEqual(t, base, fingerprint(risks, bumped, 1, "custom"))

	overridden := testParams()
	overridden.Distributions = map[string]sampling.Family{"breach": sampling.FamilyLogNormal}
	assert.NotEqual(t, base, fingerprint(risks, overridden, 1, "custom"))

	tweaked := portfolio()
	tweaked[0].Impact++
	assert.NotEqual(t, base, fingerprint(tweaked, p, 1, "custom"))
}

func TestFingerprint_OverrideOrderIndependent(t *testing.T) {
	risks := portfolio()
	a := testParams()
	a.Distributions = map[string]sampling.Family{
		"breach": sampling.FamilyLogNormal,
		"outage": sampling.FamilyTriangular,
	}
	b := testParams()
	b.Distributions = map[string]sampling.Family{
		"outage": sampling.FamilyTriangular,
		"breach": sampling.FamilyLogNormal,
	}

	assert.Equal(t, fingerprint(risks, a, 1, ""), fingerprint(risks, b, 1, ""))
}
