package analyzer

import (
	"time"

	"github.com/bycommute/po-sentinel/internal/model"
	"github.com/bycommute/po-sentinel/pkg/odoo"
)

// testNow is the fixed clock used across analyzer tests.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testRules() *model.RuleSet {
	return &model.RuleSet{
		BlockedOrder: model.BlockedOrderRule{Enabled: true},
		MissingInstallation: model.MissingInstallationRule{
			Enabled:              true,
			DelaiJours:           3,
			Fabricants:           []string{"Fabrik"},
			Installateurs:        []string{"WeeVee"},
			MotsClesInstallation: []string{"installation"},
			MotsClesAbris:        []string{"abri"},
		},
		OrderNotPlaced: model.OrderNotPlacedRule{
			Enabled:       true,
			DelaiJours:    5,
			Installateurs: []string{"WeeVee"},
			Exclusions:    []string{"WeeVee", "Transport"},
		},
		PickupTooLong: model.PickupTooLongRule{Enabled: true, DelaiJours: 7},
	}
}

// po builds a purchase order fixture. A zero planned time means no planned
// date; an empty supplier means no linked partner.
func po(id int64, name, supplier string, planned time.Time, state string) model.PurchaseOrder {
	o := model.PurchaseOrder{
		ID:    id,
		Name:  name,
		State: state,
	}
	if supplier != "" {
		o.Partner = odoo.Many2One{ID: id * 100, Name: supplier, Set: true}
	}
	if !planned.IsZero() {
		o.DatePlanned = odoo.Datetime{Time: planned, Set: true}
	}
	return o
}

// inProject links an order to a client-order reference.
func inProject(o model.PurchaseOrder, projectID int64, projectName string) model.PurchaseOrder {
	o.ClientOrder = odoo.Many2One{ID: projectID, Name: projectName, Set: true}
	return o
}

func project(name string, orders ...model.PurchaseOrder) *model.Project {
	return &model.Project{ID: 1, Name: name, Orders: orders}
}

func noLines() map[int64][]model.OrderLine {
	return map[int64][]model.OrderLine{}
}
