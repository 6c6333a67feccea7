package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/planning"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SelectionInput is one dish and its plate count
type SelectionInput struct {
	DishID   uuid.UUID `json:"dish_id" binding:"required"`
	Servings int       `json:"servings" binding:"required,min=1"`
}

// PlanRequest asks for the ingredient plan of a set of dish selections
type PlanRequest struct {
	Name       string           `json:"name" binding:"max=200"`
	EventID    *uuid.UUID       `json:"event_id"`
	PlannedFor *time.Time       `json:"planned_for"`
	Selections []SelectionInput `json:"selections" binding:"required,min=1,dive"`
}

// DemandSourceResponse is one dish's contribution to an item's demand
type DemandSourceResponse struct {
	DishID   uuid.UUID       `json:"dish_id"`
	DishName string          `json:"dish_name"`
	Servings int             `json:"servings"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReconciliationLineResponse is one item's demand split into draw and buy
type ReconciliationLineResponse struct {
	ItemID       uuid.UUID              `json:"item_id"`
	ItemName     string                 `json:"item_name"`
	Category     string                 `json:"category"`
	Unit         string                 `json:"unit"`
	TrackingMode string                 `json:"tracking_mode"`
	UnitPrice    decimal.Decimal        `json:"unit_price"`
	Required     decimal.Decimal        `json:"required"`
	Available    decimal.Decimal        `json:"available"`
	ToDraw       decimal.Decimal        `json:"to_draw"`
	ToBuy        decimal.Decimal        `json:"to_buy"`
	Sources      []DemandSourceResponse `json:"sources"`
}

// ListLineResponse is one row of a shopping or draw list
type ListLineResponse struct {
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	OnDemand      bool            `json:"on_demand"`
}

// ListGroupResponse is one category section of a list
type ListGroupResponse struct {
	Category      string             `json:"category"`
	Label         string             `json:"label"`
	Lines         []ListLineResponse `json:"lines"`
	EstimatedCost decimal.Decimal    `json:"estimated_cost"`
}

// CategorizedListResponse is a list grouped by category
type CategorizedListResponse struct {
	Groups         []ListGroupResponse `json:"groups"`
	ItemCount      int                 `json:"item_count"`
	EstimatedTotal decimal.Decimal     `json:"estimated_total"`
}

// PlanResponse is the full ingredient plan for a set of selections
type PlanResponse struct {
	Name                  string                       `json:"name"`
	EventID               *uuid.UUID                   `json:"event_id,omitempty"`
	PlannedFor            *time.Time                   `json:"planned_for,omitempty"`
	TotalServings         int                          `json:"total_servings"`
	Reconciliation        []ReconciliationLineResponse `json:"reconciliation"`
	ShoppingList          CategorizedListResponse      `json:"shopping_list"`
	DrawList              CategorizedListResponse      `json:"draw_list"`
	EstimatedPurchaseCost decimal.Decimal              `json:"estimated_purchase_cost"`
	GeneratedAt           time.Time                    `json:"generated_at"`
}

// PlanRecordResponse describes an archived plan
type PlanRecordResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	EventID       *uuid.UUID      `json:"event_id,omitempty"`
	ObjectKey     string          `json:"object_key"`
	TotalServings int             `json:"total_servings"`
	ItemCount     int             `json:"item_count"`
	ToBuyCount    int             `json:"to_buy_count"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	PlannedFor    *time.Time      `json:"planned_for,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PlanListFilter filters archived plans. EventID is parsed from the
// event_id query parameter by the handler.
type PlanListFilter struct {
	EventID  *uuid.UUID `form:"-"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PlanDownloadResponse is a time-limited link to an archived plan
type PlanDownloadResponse struct {
	PlanID    uuid.UUID `json:"plan_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

var categoryCaser = cases.Title(language.English)

// CategoryLabel turns a stored category key such as "dry_goods" into "Dry Goods"
func CategoryLabel(category string) string {
	if category == "" {
		return "Uncategorized"
	}
	spaced := make([]rune, 0, len(category))
	for _, r := range category {
		if r == '_' || r == '-' {
			r = ' '
		}
		spaced = append(spaced, r)
	}
	return categoryCaser.String(string(spaced))
}

// ToReconciliationResponses converts reconciliation lines
func ToReconciliationResponses(r planning.Reconciliation) []ReconciliationLineResponse {
	out := make([]ReconciliationLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		sources := make([]DemandSourceResponse, 0, len(l.Sources))
		for _, s := range l.Sources {
			sources = append(sources, DemandSourceResponse{
				DishID:   s.DishID,
				DishName: s.DishName,
				Servings: s.Servings,
				Quantity: s.Quantity,
			})
		}
		out = append(out, ReconciliationLineResponse{
			ItemID:       l.ItemID,
			ItemName:     l.ItemName,
			Category:     l.Category,
			Unit:         l.Unit.String(),
			TrackingMode: string(l.TrackingMode),
			UnitPrice:    l.UnitPrice,
			Required:     l.Required,
			Available:    l.Available,
			ToDraw:       l.ToDraw,
			ToBuy:        l.ToBuy,
			Sources:      sources,
		})
	}
	return out
}

// ToCategorizedListResponse converts a grouped list
func ToCategorizedListResponse(l planning.CategorizedList) CategorizedListResponse {
	groups := make([]ListGroupResponse, 0, len(l.Groups))
	for _, g := range l.Groups {
		lines := make([]ListLineResponse, 0, len(g.Lines))
		for _, line := range g.Lines {
			lines = append(lines, ListLineResponse{
				ItemID:        line.ItemID,
				ItemName:      line.ItemName,
				Quantity:      line.Quantity,
				Unit:          line.Unit.String(),
				UnitPrice:     line.UnitPrice,
				EstimatedCost: line.EstimatedCost,
				OnDemand:      line.OnDemand,
			})
		}
		groups = append(groups, ListGroupResponse{
			Category:      g.Category,
			Label:         CategoryLabel(g.Category),
			Lines:         lines,
			EstimatedCost: g.EstimatedCost,
		})
	}
	return CategorizedListResponse{
		Groups:         groups,
		ItemCount:      l.ItemCount(),
		EstimatedTotal: l.EstimatedTotal,
	}
}

// ToPlanRecordResponse converts a plan record
func ToPlanRecordResponse(r *planning.PlanRecord) PlanRecordResponse {
	return PlanRecordResponse{
		ID:            r.ID,
		Name:          r.Name,
		EventID:       r.EventID,
		ObjectKey:     r.ObjectKey,
		TotalServings: r.TotalServings,
		ItemCount:     r.ItemCount,
		ToBuyCount:    r.ToBuyCount,
		EstimatedCost: r.EstimatedCost,
		PlannedFor:    r.PlannedFor,
		CreatedAt:     r.CreatedAt,
	}
}

// ToPlanRecordResponses converts a slice of plan records
func ToPlanRecordResponses(records []planning.PlanRecord) []PlanRecordResponse {
	out := make([]PlanRecordResponse, len(records))
	for i := range records {
		out[i] = ToPlanRecordResponse(&records[i])
	}
	return out
}
