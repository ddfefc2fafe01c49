package analyzer

import (
	"strings"

	"github.com/bycommute/po-sentinel/internal/model"
)

// OrderKind is the role an order plays inside a project.
type OrderKind string

const (
	KindFabricator   OrderKind = "fabricant"
	KindInstallation OrderKind = "installation"
	KindTransport    OrderKind = "transport"
	KindOther        OrderKind = "autre"
)

// ClassifyOrder labels an order by its supplier name and line items.
// Supplier rules outrank line-item rules; first match wins. Supplier
// matching is a case-sensitive substring check; line names are lower-cased
// before keyword matching.
func ClassifyOrder(supplierName string, lines []model.OrderLine, rules *model.RuleSet) OrderKind {
	for _, fab := range rules.MissingInstallation.Fabricants {
		if strings.Contains(supplierName, fab) {
			return KindFabricator
		}
	}
	for _, inst := range rules.MissingInstallation.Installateurs {
		if strings.Contains(supplierName, inst) {
			return KindInstallation
		}
	}
	for _, trans := range rules.OrderNotPlaced.Exclusions {
		if strings.Contains(supplierName, trans) {
			return KindTransport
		}
	}

	for _, line := range lines {
		lineName := strings.ToLower(line.Name)
		for _, kw := range rules.MissingInstallation.MotsClesInstallation {
			if strings.Contains(lineName, kw) {
				return KindInstallation
			}
		}
		for _, kw := range rules.MissingInstallation.MotsClesAbris {
			if strings.Contains(lineName, kw) {
				return KindFabricator
			}
		}
	}

	return KindOther
}

// matchesAny reports whether name contains any of the given substrings.
func matchesAny(name string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}
