package analyzer

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/bycommute/po-sentinel/internal/model"
)

// daysBetween returns the calendar-day distance from "from" to "to",
// computed as the millisecond difference divided by one day and rounded up.
// A positive fractional difference of any size counts as a full day.
func daysBetween(from, to time.Time) int {
	ms := to.Sub(from).Milliseconds()
	return int(math.Ceil(float64(ms) / 86_400_000))
}

// AnalyzeProject runs every enabled rule against one project and returns the
// anomalies found, in rule order.
func AnalyzeProject(p *model.Project, lines map[int64][]model.OrderLine, rules *model.RuleSet, now time.Time) []model.Anomaly {
	var anomalies []model.Anomaly

	if rules.BlockedOrder.Enabled {
		if a := DetectBlockedOrder(p, now); a != nil {
			anomalies = append(anomalies, *a)
		}
	}
	if rules.MissingInstallation.Enabled {
		if a := DetectMissingInstallation(p, lines, rules, now); a != nil {
			anomalies = append(anomalies, *a)
		}
	}
	if rules.OrderNotPlaced.Enabled {
		anomalies = append(anomalies, DetectOrderNotPlaced(p, &rules.OrderNotPlaced, now)...)
	}
	if rules.PickupTooLong.Enabled {
		if a := DetectPickupTooLong(p, &rules.PickupTooLong, now); a != nil {
			anomalies = append(anomalies, *a)
		}
	}

	return anomalies
}

// DetectBlockedOrder flags a project whose dated orders all have planned
// dates in the past. Orders without a planned date are ignored; a project
// with no dated orders at all is skipped.
func DetectBlockedOrder(p *model.Project, now time.Time) *model.Anomaly {
	var past []model.PastDate
	future := 0

	for _, o := range p.Orders {
		if !o.DatePlanned.Set {
			continue
		}
		if o.DatePlanned.Time.Before(now) {
			past = append(past, model.PastDate{Name: o.Name, Date: o.DatePlanned.Time})
		} else {
			future++
		}
	}

	if len(past) == 0 || future > 0 {
		return nil
	}

	return &model.Anomaly{
		Type:      model.AnomalyBlockedOrder,
		Project:   p.Name,
		ProjectID: p.ID,
		OrderID:   p.Orders[0].ID,
		Message:   "Toutes les livraisons prévues sont passées mais le projet est encore en cours",
		Details: model.BlockedOrderDetails{
			OrderCount: len(p.Orders),
			PastDates:  past,
		},
	}
}

// DetectMissingInstallation flags a project whose fabricator order leaves
// the workshop within the configured window while no installation order is
// confirmed. Only the first fabricator-classified order with a planned date
// is considered.
func DetectMissingInstallation(p *model.Project, lines map[int64][]model.OrderLine, rules *model.RuleSet, now time.Time) *model.Anomaly {
	rule := &rules.MissingInstallation
	limit := now.Add(time.Duration(rule.DelaiJours) * 24 * time.Hour)

	var fabricator *model.PurchaseOrder
	for i := range p.Orders {
		o := &p.Orders[i]
		kind := ClassifyOrder(o.SupplierName(), lines[o.ID], rules)
		if kind == KindFabricator && o.DatePlanned.Set {
			fabricator = o
			break
		}
	}

	if fabricator == nil || fabricator.DatePlanned.Time.After(limit) {
		return nil
	}

	for i := range p.Orders {
		o := &p.Orders[i]
		kind := ClassifyOrder(o.SupplierName(), lines[o.ID], rules)
		if kind == KindInstallation && (o.State == model.StatePurchase || o.State == model.StateSent) {
			return nil
		}
	}

	exit := fabricator.DatePlanned.Time
	daysRemaining := daysBetween(now, exit)

	var msg string
	if daysRemaining < 0 {
		msg = fmt.Sprintf("Sortie d'atelier il y a %d jours mais installation toujours pas commandée", -daysRemaining)
	} else {
		msg = fmt.Sprintf("Sortie d'atelier dans %d jours mais installation toujours pas commandée", daysRemaining)
	}

	return &model.Anomaly{
		Type:      model.AnomalyMissingInstallation,
		Project:   p.Name,
		ProjectID: p.ID,
		OrderID:   fabricator.ID,
		Message:   msg,
		Details: model.MissingInstallationDetails{
			FabricatorOrder: fabricator.Name,
			Supplier:        fabricator.SupplierName(),
			WorkshopExit:    exit,
			DaysRemaining:   daysRemaining,
		},
	}
}

// DetectOrderNotPlaced flags every draft order from a non-excluded supplier
// once the project's installation date falls within the configured window.
// The installation date is the earliest planned date among orders whose
// supplier matches the rule's installer list.
func DetectOrderNotPlaced(p *model.Project, rule *model.OrderNotPlacedRule, now time.Time) []model.Anomaly {
	limit := now.Add(time.Duration(rule.DelaiJours) * 24 * time.Hour)

	var installDate time.Time
	haveDate := false
	for _, o := range p.Orders {
		if !matchesAny(o.SupplierName(), rule.Installateurs) || !o.DatePlanned.Set {
			continue
		}
		if !haveDate || o.DatePlanned.Time.Before(installDate) {
			installDate = o.DatePlanned.Time
			haveDate = true
		}
	}

	if !haveDate || installDate.After(limit) {
		return nil
	}

	var anomalies []model.Anomaly
	for _, o := range p.Orders {
		if o.State != model.StateDraft {
			continue
		}
		supplier := o.SupplierName()
		if matchesAny(supplier, rule.Exclusions) {
			continue
		}

		daysBefore := daysBetween(now, installDate)

		var msg string
		if daysBefore < 0 {
			msg = fmt.Sprintf("Installation prévue il y a %d jours mais commande %s toujours en brouillon", -daysBefore, supplier)
		} else {
			msg = fmt.Sprintf("Installation dans %d jours mais commande %s toujours en brouillon", daysBefore, supplier)
		}

		anomalies = append(anomalies, model.Anomaly{
			Type:      model.AnomalyOrderNotPlaced,
			Project:   p.Name,
			ProjectID: p.ID,
			OrderID:   o.ID,
			Message:   msg,
			Details: model.OrderNotPlacedDetails{
				Order:             o.Name,
				Supplier:          supplier,
				Amount:            float64(o.AmountTotal),
				DaysBeforeInstall: daysBefore,
			},
		})
	}

	return anomalies
}

// DetectPickupTooLong flags the first order sitting ready at its supplier
// for longer than the configured delay without being fully received. At most
// one anomaly per project.
func DetectPickupTooLong(p *model.Project, rule *model.PickupTooLongRule, now time.Time) *model.Anomaly {
	limit := now.Add(-time.Duration(rule.DelaiJours) * 24 * time.Hour)

	for _, o := range p.Orders {
		if !o.SupplierStatus.Contains(model.SupplierStatusReady) {
			continue
		}
		if string(o.ReceiptStatus) == model.ReceiptFull || !o.DatePlanned.Set {
			continue
		}
		if !o.DatePlanned.Time.Before(limit) {
			continue
		}

		daysWaiting := daysBetween(o.DatePlanned.Time, now)
		supplier := o.SupplierName()

		return &model.Anomaly{
			Type:      model.AnomalyPickupTooLong,
			Project:   p.Name,
			ProjectID: p.ID,
			OrderID:   o.ID,
			Message:   fmt.Sprintf("En attente chez %s depuis %d jours", supplier, daysWaiting),
			Details: model.PickupTooLongDetails{
				Order:       o.Name,
				Supplier:    supplier,
				DaysWaiting: daysWaiting,
				Dimensions:  orDefault(string(o.Dimensions)),
				Weight:      weightLabel(float64(o.Weight)),
			},
		}
	}

	return nil
}

func orDefault(s string) string {
	if s == "" {
		return "Non spécifié"
	}
	return s
}

func weightLabel(w float64) string {
	if w == 0 {
		return "Non spécifié"
	}
	return strconv.FormatFloat(w, 'f', -1, 64)
}
