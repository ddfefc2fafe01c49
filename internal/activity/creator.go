// Package activity turns detected anomalies into follow-up activities in
// the ERP, deduplicated through the history ledger.
package activity

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bycommute/po-sentinel/internal/model"
	"github.com/bycommute/po-sentinel/internal/resilience"
	"github.com/bycommute/po-sentinel/pkg/odoo"
)

// CreatedItem reports one successfully created activity.
type CreatedItem struct {
	Anomaly    string `json:"anomalie"`
	ActivityID int64  `json:"activity_id"`
}

// SkippedItem reports an anomaly whose activity already exists.
type SkippedItem struct {
	Anomaly string    `json:"anomalie"`
	Reason  string    `json:"reason"`
	Date    time.Time `json:"date"`
}

// ErrorItem reports an anomaly whose activity could not be created.
type ErrorItem struct {
	Anomaly string `json:"anomalie"`
	Error   string `json:"error"`
}

// Result is the outcome of one creation batch.
type Result struct {
	Created []CreatedItem `json:"created"`
	Skipped []SkippedItem `json:"skipped"`
	Errors  []ErrorItem   `json:"errors"`
}

// Creator submits anomaly activities to the ERP. The client is built per
// batch from the stored endpoint settings.
type Creator struct {
	newClient odoo.Factory
	retry     resilience.Config
	now       func() time.Time
}

// NewCreator creates a Creator using the given ERP client factory and
// retry policy.
func NewCreator(factory odoo.Factory, retry resilience.Config) *Creator {
	if factory == nil {
		factory = odoo.DefaultFactory
	}
	return &Creator{newClient: factory, retry: retry, now: time.Now}
}

// WithClock overrides the creator clock. Tests only.
func (c *Creator) WithClock(now func() time.Time) *Creator {
	c.now = now
	return c
}

// CreateAll processes anomalies sequentially in input order, mutating
// history as it goes: ledger appends and counter bumps from earlier
// anomalies are visible to later ones. One anomaly's failure never aborts
// the batch.
func (c *Creator) CreateAll(ctx context.Context, anomalies []model.Anomaly, settings *model.OdooSettings, history *model.HistoryDocument) Result {
	result := Result{
		Created: []CreatedItem{},
		Skipped: []SkippedItem{},
		Errors:  []ErrorItem{},
	}
	client := c.newClient(settings.APIURL, settings.APIToken)

	for i := range anomalies {
		a := &anomalies[i]

		if prior := history.Find(a.DedupKey()); prior != nil {
			result.Skipped = append(result.Skipped, SkippedItem{
				Anomaly: a.Project,
				Reason:  "Activité déjà créée précédemment",
				Date:    prior.CreatedAt,
			})
			continue
		}

		activityID, err := c.create(ctx, client, a, settings)
		if err != nil {
			zap.L().Error("activity creation failed",
				zap.String("project", a.Project),
				zap.String("type", string(a.Type)),
				zap.Error(err),
			)
			history.Stats.TotalErrors++
			result.Errors = append(result.Errors, ErrorItem{
				Anomaly: a.Project,
				Error:   err.Error(),
			})
			continue
		}

		history.Append(model.LedgerEntry{
			Key:        a.DedupKey(),
			ActivityID: activityID,
			Project:    a.Project,
			Type:       a.Type,
			OrderID:    a.OrderID,
			CreatedAt:  c.now(),
		})
		history.Stats.TotalCreated++
		result.Created = append(result.Created, CreatedItem{
			Anomaly:    a.Project,
			ActivityID: activityID,
		})
		zap.L().Info("activity created",
			zap.String("project", a.Project),
			zap.Int64("activity_id", activityID),
		)
	}

	return result
}

// create builds the activity payload and submits it, retrying per the
// configured policy.
func (c *Creator) create(ctx context.Context, client odoo.Client, a *model.Anomaly, settings *model.OdooSettings) (int64, error) {
	deadline := c.now().AddDate(0, 0, 2).Format("2006-01-02")

	values := map[string]any{
		"activity_type_id": settings.ActivityTypeUrgentID,
		"user_id":          settings.AssigneeUserID,
		"res_model":        "purchase.order",
		"res_model_id":     settings.PurchaseOrderModelID,
		"res_id":           a.OrderID,
		"summary":          summary(a),
		"note":             note(a),
		"date_deadline":    deadline,
	}

	retry := c.retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.Logger("odoo", "mail.activity.create")
	}

	return resilience.DoVal(ctx, retry, func(ctx context.Context) (int64, error) {
		return client.Create(ctx, "mail.activity", values)
	})
}

func summary(a *model.Anomaly) string {
	return "🚨 " + strings.ReplaceAll(string(a.Type), "_", " ") + " - " + a.Project
}
