package model

import (
	"github.com/bycommute/po-sentinel/pkg/odoo"
)

// Purchase order lifecycle states as reported by Odoo.
const (
	StateDraft    = "draft"
	StateSent     = "sent"
	StatePurchase = "purchase"
	StateDone     = "done"
	StateCancel   = "cancel"
)

// ReceiptFull marks a purchase order whose goods are fully received.
const ReceiptFull = "full"

// SupplierStatusReady is the supplier-side status code meaning the goods
// are ready for pickup at the supplier's site.
const SupplierStatusReady int64 = 1

// PurchaseOrder is one purchase order as returned by purchase.order
// search_read. Immutable snapshot; fetched fresh on every analysis run.
type PurchaseOrder struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Partner        odoo.Many2One `json:"partner_id"`
	DatePlanned    odoo.Datetime `json:"date_planned"`
	State          string        `json:"state"`
	ReceiptStatus  odoo.String   `json:"receipt_status"`
	AmountTotal    odoo.Float    `json:"amount_total"`
	ClientOrder    odoo.Many2One `json:"x_studio_commande_client"`
	Opportunity    odoo.Many2One `json:"x_studio_opportunuit_lie"`
	SupplierStatus odoo.IDList   `json:"x_studio_statut_chez_le_fournisseur"`
	Dimensions     odoo.String   `json:"x_studio_dimension_du_colis"`
	Weight         odoo.Float    `json:"x_studio_poids"`
}

// SupplierName returns the display name of the order's supplier, or "" when
// no partner is linked.
func (o *PurchaseOrder) SupplierName() string {
	return o.Partner.Name
}

// OrderLine is one purchase order line; only the free-text name is used,
// for keyword classification.
type OrderLine struct {
	ID        int64         `json:"id"`
	Order     odoo.Many2One `json:"order_id"`
	Product   odoo.Many2One `json:"product_id"`
	Name      string        `json:"name"`
	Qty       float64       `json:"product_qty"`
	PriceUnit float64       `json:"price_unit"`
}

// Project groups the purchase orders sharing one client-order reference.
// Derived per analysis run, never persisted.
type Project struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Orders []PurchaseOrder `json:"commandes"`
}
