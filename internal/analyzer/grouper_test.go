package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bycommute/po-sentinel/internal/model"
)

func TestGroupProjects_ExcludesUnlinkedOrders(t *testing.T) {
	orders := []model.PurchaseOrder{
		inProject(po(1, "PO0001", "Fabrik SA", time.Time{}, model.StatePurchase), 10, "CC0010"),
		po(2, "PO0002", "Autre SARL", time.Time{}, model.StateDraft), // no client order
		inProject(po(3, "PO0003", "WeeVee", time.Time{}, model.StateSent), 10, "CC0010"),
	}

	projects := GroupProjects(orders)
	require.Len(t, projects, 1)
	assert.Equal(t, "CC0010", projects[0].Name)
	assert.Equal(t, int64(10), projects[0].ID)
	require.Len(t, projects[0].Orders, 2)
	assert.Equal(t, int64(1), projects[0].Orders[0].ID)
	assert.Equal(t, int64(3), projects[0].Orders[1].ID)
}

func TestGroupProjects_InsertionOrder(t *testing.T) {
	orders := []model.PurchaseOrder{
		inProject(po(1, "PO0001", "A", time.Time{}, model.StateDraft), 20, "CC0020"),
		inProject(po(2, "PO0002", "B", time.Time{}, model.StateDraft), 10, "CC0010"),
		inProject(po(3, "PO0003", "C", time.Time{}, model.StateDraft), 20, "CC0020"),
	}

	projects := GroupProjects(orders)
	require.Len(t, projects, 2)
	assert.Equal(t, "CC0020", projects[0].Name)
	assert.Equal(t, "CC0010", projects[1].Name)
}

func TestGroupProjects_Deterministic(t *testing.T) {
	orders := []model.PurchaseOrder{
		inProject(po(1, "PO0001", "A", time.Time{}, model.StateDraft), 1, "CC1"),
		inProject(po(2, "PO0002", "B", time.Time{}, model.StateDraft), 2, "CC2"),
		inProject(po(3, "PO0003", "C", time.Time{}, model.StateDraft), 1, "CC1"),
		inProject(po(4, "PO0004", "D", time.Time{}, model.StateDraft), 3, "CC3"),
	}

	first := GroupProjects(orders)
	second := GroupProjects(orders)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Orders, second[i].Orders)
	}
}

func TestGroupProjects_Empty(t *testing.T) {
	assert.Empty(t, GroupProjects(nil))
}
