package assessment

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/simulation"
)

// fingerprint derives a cache key from everything that determines report
// content: the risk set, the simulation parameters, the seed and the
// framework label. Risk order does not matter; the set is hashed in sorted
// ID order.
func fingerprint(risks []risk.Input, p simulation.Parameters, seed uint64, framework string) string {
	h := sha256.New()
	fmt.Fprintf(h, "framework=%s\nseed=%d\n", framework, seed)
	fmt.Fprintf(h, "timeframe=%d\niterations=%d\ndistribution=%s\n",
		p.TimeframeDays, p.Iterations, p.Distribution)

	overrides := make([]string, 0, len(p.Distributions))
	for id, fam := range p.Distributions {
		overrides = append(overrides, fmt.Sprintf("%s=%s", id, fam))
	}
	sort.Strings(overrides)
	for _, o := range overrides {
		fmt.Fprintf(h, "override=%s\n", o)
	}

	sorted := make([]risk.Input, len(risks))
	copy(sorted, risks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, r := range sorted {
		fmt.Fprintf(h, "risk=%s|%s|%s|%g|%g", r.ID, r.Title, r.Category, r.Probability, r.Impact)
		for _, f := range r.Factors {
			fmt.Fprintf(h, "|f:%s", f)
		}
		if r.Financial != nil {
			fmt.Fprintf(h, "|fin:%g-%g-%s", r.Financial.Min, r.Financial.Max, r.Financial.Currency)
		}
		fmt.Fprintln(h)
	}

	return hex.EncodeToString(h.Sum(nil))
}
