// Package analyzer groups purchase orders into projects and evaluates the
// configured anomaly rules against each one.
package analyzer

import (
	"github.com/bycommute/po-sentinel/internal/model"
)

// GroupProjects partitions orders into projects keyed by their linked
// client-order reference. Orders without the reference belong to no project
// and are never analyzed. Project order and member order both follow first
// appearance in the input.
func GroupProjects(orders []model.PurchaseOrder) []*model.Project {
	var projects []*model.Project
	byName := make(map[string]*model.Project)

	for _, o := range orders {
		if !o.ClientOrder.Set {
			continue
		}
		p, ok := byName[o.ClientOrder.Name]
		if !ok {
			p = &model.Project{
				ID:   o.ClientOrder.ID,
				Name: o.ClientOrder.Name,
			}
			byName[o.ClientOrder.Name] = p
			projects = append(projects, p)
		}
		p.Orders = append(p.Orders, o)
	}

	return projects
}
