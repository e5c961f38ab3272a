package signals

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"SmartMoney/internal/domain/models"
)

const (
	topFactors = 2
	topAlerts  = 3
)

// Explain composes the human-readable rationale for a signal.
func Explain(o Outcome, f models.Factors, alerts []string, upstream string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s signal with %s strength. ", o.Type, o.Strength)

	named := f.Named()
	sort.SliceStable(named, func(i, j int) bool {
		return math.Abs(named[i].Value) > math.Abs(named[j].Value)
	})
	parts := make([]string, 0, topFactors)
	for _, nf := range named[:topFactors] {
		parts = append(parts, fmt.Sprintf("%s: %.1f", strings.Replace(nf.Name, "_", " ", 1), nf.Value))
	}
	fmt.Fprintf(&b, "Key factors: %s. ", strings.Join(parts, ", "))

	if len(alerts) > 0 {
		n := min(len(alerts), topAlerts)
		fmt.Fprintf(&b, "Signals: %s. ", strings.Join(alerts[:n], ", "))
	}

	b.WriteString("Original analysis: ")
	b.WriteString(upstream)
	return b.String()
}
