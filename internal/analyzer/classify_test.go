package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bycommute/po-sentinel/internal/model"
)

func line(name string) model.OrderLine {
	return model.OrderLine{Name: name}
}

func TestClassifyOrder_Precedence(t *testing.T) {
	rules := testRules()

	tests := []struct {
		name     string
		supplier string
		lines    []model.OrderLine
		want     OrderKind
	}{
		{"fabricator supplier", "Fabrik SA", nil, KindFabricator},
		{"installer supplier", "WeeVee Services", nil, KindInstallation},
		{"transport supplier", "Transport Express", nil, KindTransport},
		{"installation line keyword", "Autre SARL", []model.OrderLine{line("Forfait INSTALLATION complète")}, KindInstallation},
		{"shelter line keyword", "Autre SARL", []model.OrderLine{line("Abri modèle L")}, KindFabricator},
		{"no match", "Autre SARL", []model.OrderLine{line("Visserie")}, KindOther},
		{"no lines no match", "Autre SARL", nil, KindOther},

		// Supplier rules outrank line-item rules.
		{"fabricator supplier beats installation line", "Fabrik SA", []model.OrderLine{line("installation sur site")}, KindFabricator},
		// Installer supplier outranks transport exclusion.
		{"installer beats transport", "WeeVee Transport", nil, KindInstallation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOrder(tt.supplier, tt.lines, rules))
		})
	}
}

func TestClassifyOrder_SupplierMatchIsCaseSensitive(t *testing.T) {
	rules := testRules()
	// "fabrik" does not match the configured "Fabrik" substring.
	assert.Equal(t, KindOther, ClassifyOrder("fabrik sa", nil, rules))
}

func TestClassifyOrder_LineMatchIsCaseInsensitiveOnLineOnly(t *testing.T) {
	rules := testRules()
	// Line names are lower-cased before matching, keywords are not.
	assert.Equal(t, KindInstallation, ClassifyOrder("Autre", []model.OrderLine{line("INSTALLATION")}, rules))

	upper := testRules()
	upper.MissingInstallation.MotsClesInstallation = []string{"INSTALLATION"}
	assert.Equal(t, KindOther, ClassifyOrder("Autre", []model.OrderLine{line("INSTALLATION")}, upper))
}
