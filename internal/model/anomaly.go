package model

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// AnomalyType enumerates the four anomaly kinds. The wire values match the
// ledger and the operator UI.
type AnomalyType string

const (
	AnomalyBlockedOrder        AnomalyType = "COMMANDE_BLOQUEE"
	AnomalyMissingInstallation AnomalyType = "INSTALLATION_MANQUANTE"
	AnomalyOrderNotPlaced      AnomalyType = "COMMANDE_NON_PASSEE"
	AnomalyPickupTooLong       AnomalyType = "PRET_ENLEVEMENT_TROP_LONG"
)

// AnomalyDetails is the type-specific payload of an anomaly. One variant
// exists per AnomalyType so serialization and action-list lookup stay
// exhaustive.
type AnomalyDetails interface {
	anomalyType() AnomalyType
}

// Anomaly is one detected rule violation, tied to a project and to the
// order that triggered it. Created fresh on each analysis run.
type Anomaly struct {
	Type      AnomalyType    `json:"type"`
	Project   string         `json:"projet"`
	ProjectID int64          `json:"projetId"`
	OrderID   int64          `json:"commandeId"`
	Message   string         `json:"message"`
	Details   AnomalyDetails `json:"details,omitempty"`
}

// DedupKey identifies an anomaly for ledger deduplication.
func (a *Anomaly) DedupKey() string {
	return DedupKey(a.OrderID, a.Type)
}

// PastDate is one overdue planned delivery inside a blocked project.
type PastDate struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// BlockedOrderDetails is the payload for COMMANDE_BLOQUEE.
type BlockedOrderDetails struct {
	OrderCount int        `json:"nb_commandes"`
	PastDates  []PastDate `json:"dates_passees"`
}

func (BlockedOrderDetails) anomalyType() AnomalyType { return AnomalyBlockedOrder }

// MissingInstallationDetails is the payload for INSTALLATION_MANQUANTE.
type MissingInstallationDetails struct {
	FabricatorOrder string    `json:"commande_fabricant"`
	Supplier        string    `json:"fournisseur"`
	WorkshopExit    time.Time `json:"date_sortie"`
	DaysRemaining   int       `json:"jours_restants"`
}

func (MissingInstallationDetails) anomalyType() AnomalyType { return AnomalyMissingInstallation }

// OrderNotPlacedDetails is the payload for COMMANDE_NON_PASSEE.
type OrderNotPlacedDetails struct {
	Order             string  `json:"commande"`
	Supplier          string  `json:"fournisseur"`
	Amount            float64 `json:"montant"`
	DaysBeforeInstall int     `json:"jours_avant_installation"`
}

func (OrderNotPlacedDetails) anomalyType() AnomalyType { return AnomalyOrderNotPlaced }

// PickupTooLongDetails is the payload for PRET_ENLEVEMENT_TROP_LONG.
type PickupTooLongDetails struct {
	Order       string `json:"commande"`
	Supplier    string `json:"fournisseur"`
	DaysWaiting int    `json:"jours_attente"`
	Dimensions  string `json:"dimensions"`
	Weight      string `json:"poids"`
}

func (PickupTooLongDetails) anomalyType() AnomalyType { return AnomalyPickupTooLong }

// UnmarshalJSON decodes the envelope, then the details variant selected by
// the type tag. Unknown types fail, so a malformed create request is
// rejected before any side effect.
func (a *Anomaly) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      AnomalyType     `json:"type"`
		Project   string          `json:"projet"`
		ProjectID int64           `json:"projetId"`
		OrderID   int64           `json:"commandeId"`
		Message   string          `json:"message"`
		Details   json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "decode anomaly")
	}

	out := Anomaly{
		Type:      raw.Type,
		Project:   raw.Project,
		ProjectID: raw.ProjectID,
		OrderID:   raw.OrderID,
		Message:   raw.Message,
	}

	if len(raw.Details) > 0 && string(raw.Details) != "null" {
		details, err := decodeDetails(raw.Type, raw.Details)
		if err != nil {
			return err
		}
		out.Details = details
	}

	*a = out
	return nil
}

func decodeDetails(t AnomalyType, data json.RawMessage) (AnomalyDetails, error) {
	switch t {
	case AnomalyBlockedOrder:
		var d BlockedOrderDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, eris.Wrap(err, "decode blocked order details")
		}
		return d, nil
	case AnomalyMissingInstallation:
		var d MissingInstallationDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, eris.Wrap(err, "decode missing installation details")
		}
		return d, nil
	case AnomalyOrderNotPlaced:
		var d OrderNotPlacedDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, eris.Wrap(err, "decode order not placed details")
		}
		return d, nil
	case AnomalyPickupTooLong:
		var d PickupTooLongDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, eris.Wrap(err, "decode pickup too long details")
		}
		return d, nil
	default:
		return nil, eris.Errorf("unknown anomaly type %q", t)
	}
}
