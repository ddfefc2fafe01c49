package model

// RulesDocument is the operator-editable configuration document. It is
// persisted verbatim as one JSON file; the API layer reads and writes the
// raw document so unknown keys survive a round trip.
type RulesDocument struct {
	Odoo  OdooSettings `json:"odoo"`
	Rules RuleSet      `json:"rules"`
}

// OdooSettings holds the ERP endpoint, its bearer token and the record ids
// needed to create activities.
type OdooSettings struct {
	APIURL               string `json:"api_url"`
	APIToken             string `json:"api_token"`
	ActivityTypeUrgentID int64  `json:"activity_type_urgent_id"`
	AssigneeUserID       int64  `json:"assignee_user_id"`
	PurchaseOrderModelID int64  `json:"purchase_order_model_id"`
}

// RuleSet holds the four anomaly rules, keyed in the document by their
// French rule names.
type RuleSet struct {
	BlockedOrder        BlockedOrderRule        `json:"commande_bloquee"`
	MissingInstallation MissingInstallationRule `json:"installation_manquante"`
	OrderNotPlaced      OrderNotPlacedRule      `json:"commande_non_passee"`
	PickupTooLong       PickupTooLongRule       `json:"pret_enlevement"`
}

// BlockedOrderRule flags projects whose planned deliveries are all in the past.
type BlockedOrderRule struct {
	Enabled bool `json:"enabled"`
}

// MissingInstallationRule flags projects close to a workshop exit date with
// no confirmed installation order. Its keyword lists also drive order
// classification: supplier-name substrings for fabricators and installers,
// line-name keywords for installation work and for the product itself.
type MissingInstallationRule struct {
	Enabled              bool     `json:"enabled"`
	DelaiJours           int      `json:"delai_jours"`
	Fabricants           []string `json:"fabricants"`
	Installateurs        []string `json:"installateurs"`
	MotsClesInstallation []string `json:"mots_cles_installation"`
	MotsClesAbris        []string `json:"mots_cles_abris"`
}

// OrderNotPlacedRule flags draft orders when the project's installation date
// is near. Exclusions are supplier-name substrings (transporters and
// installers themselves) that never trigger the rule.
type OrderNotPlacedRule struct {
	Enabled       bool     `json:"enabled"`
	DelaiJours    int      `json:"delai_jours"`
	Installateurs []string `json:"installateurs"`
	Exclusions    []string `json:"exclusions"`
}

// PickupTooLongRule flags orders sitting ready at the supplier for too long.
type PickupTooLongRule struct {
	Enabled    bool `json:"enabled"`
	DelaiJours int  `json:"delai_jours"`
}
