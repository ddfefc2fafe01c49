package activity

import (
	"fmt"

	"github.com/bycommute/po-sentinel/internal/model"
)

// actionItems returns the HTML action list matching the anomaly type. The
// order-not-placed list names the supplier to order from.
func actionItems(a *model.Anomaly) string {
	switch a.Type {
	case model.AnomalyMissingInstallation:
		return "<li>Commander l'installation chez WeeVee ou un installateur</li><li>Prévoir la date d'installation</li>"
	case model.AnomalyOrderNotPlaced:
		supplier := ""
		if d, ok := a.Details.(model.OrderNotPlacedDetails); ok {
			supplier = d.Supplier
		}
		return fmt.Sprintf("<li>Passer la commande chez %s</li><li>Valider le bon de commande</li>", supplier)
	case model.AnomalyPickupTooLong:
		return "<li>Organiser le transport</li><li>Coordonner l'enlèvement</li>"
	case model.AnomalyBlockedOrder:
		return "<li>Vérifier le blocage SAV</li><li>Résoudre le problème et clôturer le projet</li>"
	default:
		return "<li>Voir les détails de l'anomalie</li>"
	}
}

// note renders the rich-text body of an activity: the anomaly context
// followed by the type-specific action list.
func note(a *model.Anomaly) string {
	return fmt.Sprintf(
		"<p><strong>📋 Contexte :</strong></p><p>%s</p><hr/><p><strong>✅ Actions à réaliser :</strong></p><ul>%s</ul>",
		a.Message, actionItems(a),
	)
}
