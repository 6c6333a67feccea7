package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const planContentType = "application/json"

// PlanArchiveStorage stores plan snapshots and hands out download links.
// Implemented by the S3 object storage in infrastructure.
type PlanArchiveStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// PlanService computes ingredient plans from dish selections and archives them
type PlanService struct {
	planRepo planning.PlanRecordRepository
	storage  PlanArchiveStorage
	demand   *planning.DemandLoader

	downloadExpiry time.Duration
	metrics        *telemetry.EngineMetrics
	logger         *zap.Logger
	now            func() time.Time
}

// NewPlanService creates a new PlanService. planRepo and storage may be nil when
// archiving is not configured; Plan still works.
func NewPlanService(
	dishRepo menu.DishRepository,
	itemRepo inventory.InventoryItemRepository,
	planRepo planning.PlanRecordRepository,
	storage PlanArchiveStorage,
	table *valueobject.ConversionTable,
) *PlanService {
	return &PlanService{
		planRepo:       planRepo,
		storage:        storage,
		demand:         planning.NewDemandLoader(dishRepo, itemRepo, planning.NewAggregator(table)),
		downloadExpiry: time.Hour,
		logger:         zap.NewNop(),
		now:            time.Now,
	}
}

// SetDownloadExpiry sets how long plan download links stay valid
func (s *PlanService) SetDownloadExpiry(d time.Duration) {
	if d > 0 {
		s.downloadExpiry = d
	}
}

// SetEngineMetrics sets the metrics collector
func (s *PlanService) SetEngineMetrics(m *telemetry.EngineMetrics) {
	s.metrics = m
}

// SetLogger sets the logger
func (s *PlanService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Plan aggregates demand for the selections against one inventory snapshot,
// reconciles it with stock and builds the shopping and draw lists.
// Nothing is written.
func (s *PlanService) Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	reconciliation, servings, err := s.reconcile(ctx, req.Selections)
	if err != nil {
		return nil, err
	}

	shopping := planning.BuildShoppingList(reconciliation)
	draw := planning.BuildDrawList(reconciliation)

	name := req.Name
	if name == "" {
		name = "plan"
	}
	response := &PlanResponse{
		Name:                  name,
		EventID:               req.EventID,
		PlannedFor:            req.PlannedFor,
		TotalServings:         servings,
		Reconciliation:        ToReconciliationResponses(reconciliation),
		ShoppingList:          ToCategorizedListResponse(shopping),
		DrawList:              ToCategorizedListResponse(draw),
		EstimatedPurchaseCost: reconciliation.EstimatedPurchaseCost(),
		GeneratedAt:           s.now(),
	}

	if s.metrics != nil {
		s.metrics.RecordPlan(ctx, len(reconciliation.Lines), shopping.ItemCount())
	}
	s.logger.Info("ingredient plan computed",
		zap.String("name", name),
		zap.Int("selections", len(req.Selections)),
		zap.Int("servings", servings),
		zap.Int("items", len(reconciliation.Lines)),
		zap.Int("to_buy", shopping.ItemCount()),
		zap.String("estimated_purchase_cost", response.EstimatedPurchaseCost.String()),
	)
	return response, nil
}

// ArchivePlan computes a plan, stores its JSON snapshot in object storage and
// records where it lives
func (s *PlanService) ArchivePlan(ctx context.Context, req PlanRequest) (*PlanRecordResponse, error) {
	if s.storage == nil || s.planRepo == nil {
		return nil, shared.NewDomainError("ARCHIVE_UNAVAILABLE", "Plan archiving is not configured")
	}

	plan, err := s.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}

	id := uuid.New()
	key := planObjectKey(plan.GeneratedAt, id)
	if err := s.storage.Upload(ctx, key, data, planContentType); err != nil {
		return nil, fmt.Errorf("upload plan archive: %w", err)
	}

	record, err := planning.NewPlanRecord(plan.Name, req.EventID, key)
	if err != nil {
		return nil, err
	}
	record.ID = id
	record.TotalServings = plan.TotalServings
	record.ItemCount = len(plan.Reconciliation)
	record.ToBuyCount = plan.ShoppingList.ItemCount
	record.EstimatedCost = plan.EstimatedPurchaseCost
	record.PlannedFor = req.PlannedFor

	if err := s.planRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("plan archived",
		zap.String("plan_id", record.ID.String()),
		zap.String("object_key", key),
		zap.Int("bytes", len(data)),
	)
	response := ToPlanRecordResponse(record)
	return &response, nil
}

// GetPlan returns an archived plan record
func (s *PlanService) GetPlan(ctx context.Context, planID uuid.UUID) (*PlanRecordResponse, error) {
	if s.planRepo == nil {
		return nil, shared.ErrNotFound
	}
	record, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	response := ToPlanRecordResponse(record)
	return &response, nil
}

// ListPlans lists archived plans, newest first
func (s *PlanService) ListPlans(ctx context.Context, filter PlanListFilter) ([]PlanRecordResponse, error) {
	if s.planRepo == nil {
		return []PlanRecordResponse{}, nil
	}
	if filter.EventID != nil {
		records, err := s.planRepo.FindByEvent(ctx, *filter.EventID)
		if err != nil {
			return nil, err
		}
		return ToPlanRecordResponses(records), nil
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	records, err := s.planRepo.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}
	return ToPlanRecordResponses(records), nil
}

// GetPlanDownloadURL returns a presigned link to an archived plan's JSON snapshot
func (s *PlanService) GetPlanDownloadURL(ctx context.Context, planID uuid.UUID) (*PlanDownloadResponse, error) {
	if s.storage == nil || s.planRepo == nil {
		return nil, shared.NewDomainError("ARCHIVE_UNAVAILABLE", "Plan archiving is not configured")
	}
	record, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, record.ObjectKey, s.downloadExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate plan download url: %w", err)
	}
	return &PlanDownloadResponse{PlanID: record.ID, URL: url, ExpiresAt: expiresAt}, nil
}

func (s *PlanService) reconcile(ctx context.Context, inputs []SelectionInput) (planning.Reconciliation, int, error) {
	refs := make([]planning.DishServings, len(inputs))
	for i, in := range inputs {
		refs[i] = planning.DishServings{DishID: in.DishID, Servings: in.Servings}
	}
	demand, servings, err := s.demand.Load(ctx, refs)
	if err != nil {
		return planning.Reconciliation{}, 0, err
	}
	return planning.Reconcile(demand), servings, nil
}

func planObjectKey(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("plans/%s/%s.json", at.UTC().Format("2006/01/02"), id)
}
