package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bycommute/po-sentinel/internal/model"
	"github.com/bycommute/po-sentinel/internal/store"
	"github.com/bycommute/po-sentinel/pkg/odoo"
)

// orderFields is the purchase.order field list fetched per analysis run.
var orderFields = []string{
	"name", "partner_id", "date_planned", "state", "receipt_status",
	"x_studio_commande_client", "order_line", "amount_total",
	"x_studio_statut_chez_le_fournisseur", "x_studio_dimension_du_colis",
	"x_studio_poids", "x_studio_opportunuit_lie",
}

// openOrdersDomain selects orders still in flight: either linked to a client
// order not fully delivered, or unlinked to an opportunity and not fully
// received, excluding cancelled and done orders.
var openOrdersDomain = []any{
	"&", "|",
	[]any{"x_studio_commande_client.delivery_status", "!=", "full"},
	"&",
	[]any{"x_studio_opportunuit_lie", "=", false},
	[]any{"receipt_status", "!=", "full"},
	[]any{"state", "not in", []string{"cancel", "done"}},
}

// Report is the outcome of one analysis run.
type Report struct {
	RunID        string          `json:"runId"`
	ProjectCount int             `json:"projectCount"`
	Anomalies    []model.Anomaly `json:"anomalies"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Service runs the full analysis cycle: fetch, group, classify, detect.
// The ERP client is built per run from the stored rules document, so token
// or endpoint changes take effect on the next analysis.
type Service struct {
	newClient odoo.Factory
	store     store.Store
	now       func() time.Time
}

// NewService creates an analysis service over the given document store and
// ERP client factory.
func NewService(st store.Store, factory odoo.Factory) *Service {
	if factory == nil {
		factory = odoo.DefaultFactory
	}
	return &Service{newClient: factory, store: st, now: time.Now}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run executes one analysis cycle and stamps the history document with the
// run time. Anomalies are returned in project insertion order, rule order
// within a project.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	runID := uuid.New().String()
	log := zap.L().With(zap.String("run_id", runID))

	rules, err := s.store.LoadRules(ctx)
	if err != nil {
		return nil, err
	}
	client := s.newClient(rules.Odoo.APIURL, rules.Odoo.APIToken)

	var orders []model.PurchaseOrder
	err = client.SearchRead(ctx, "purchase.order", odoo.SearchReadOptions{
		Domain: openOrdersDomain,
		Fields: orderFields,
		Order:  "x_studio_commande_client, date_planned",
	}, &orders)
	if err != nil {
		return nil, err
	}
	log.Info("orders fetched", zap.Int("count", len(orders)))

	projects := GroupProjects(orders)
	log.Info("projects grouped", zap.Int("count", len(projects)))

	lines, err := s.fetchLines(ctx, client, orders)
	if err != nil {
		return nil, err
	}

	now := s.now()
	anomalies := []model.Anomaly{}
	for _, p := range projects {
		anomalies = append(anomalies, AnalyzeProject(p, lines, &rules.Rules, now)...)
	}
	log.Info("analysis complete", zap.Int("anomalies", len(anomalies)))

	if err := s.stampHistory(ctx, now); err != nil {
		return nil, err
	}

	return &Report{
		RunID:        runID,
		ProjectCount: len(projects),
		Anomalies:    anomalies,
		Timestamp:    now,
	}, nil
}

// fetchLines loads the order lines for every fetched order and indexes them
// by owning order id.
func (s *Service) fetchLines(ctx context.Context, client odoo.Client, orders []model.PurchaseOrder) (map[int64][]model.OrderLine, error) {
	if len(orders) == 0 {
		return map[int64][]model.OrderLine{}, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	var lines []model.OrderLine
	err := client.SearchRead(ctx, "purchase.order.line", odoo.SearchReadOptions{
		Domain: []any{[]any{"order_id", "in", ids}},
		Fields: []string{"order_id", "name", "product_id", "product_qty", "price_unit"},
	}, &lines)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]model.OrderLine, len(orders))
	for _, l := range lines {
		byOrder[l.Order.ID] = append(byOrder[l.Order.ID], l)
	}
	return byOrder, nil
}

func (s *Service) stampHistory(ctx context.Context, now time.Time) error {
	history, err := s.store.LoadHistory(ctx)
	if err != nil {
		return err
	}
	history.LastAnalysis = &now
	return s.store.SaveHistory(ctx, history)
}
