package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/strategy"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const idempotencyKeyPrefix = "stock:"

// StockService records stock movements and keeps the transaction ledger.
// Every mutation saves the item and appends its transaction in one TransactionScope;
// domain events are published only after the scope commits.
type StockService struct {
	itemRepo        inventory.InventoryItemRepository
	transactionRepo inventory.InventoryTransactionRepository
	txScope         TransactionScope
	table           *valueobject.ConversionTable
	demand          *planning.DemandLoader

	pricing        strategy.UnitPriceStrategy
	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	metrics        *telemetry.EngineMetrics
	logger         *zap.Logger
}

// NewStockService creates a new StockService. A nil table uses the default conversion table.
func NewStockService(
	itemRepo inventory.InventoryItemRepository,
	transactionRepo inventory.InventoryTransactionRepository,
	dishRepo menu.DishRepository,
	txScope TransactionScope,
	table *valueobject.ConversionTable,
) *StockService {
	if table == nil {
		table = valueobject.DefaultConversionTable()
	}
	if txScope == nil {
		txScope = NewNoOpTransactionScope(itemRepo, transactionRepo)
	}
	return &StockService{
		itemRepo:        itemRepo,
		transactionRepo: transactionRepo,
		txScope:         txScope,
		table:           table,
		demand:          planning.NewDemandLoader(dishRepo, itemRepo, planning.NewAggregator(table)),
		idempotencyTTL:  shared.DefaultIdempotencyConfig().TTL,
		logger:          zap.NewNop(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetPricingStrategy sets how costed purchases reprice an item. Nil leaves prices untouched.
func (s *StockService) SetPricingStrategy(pricing strategy.UnitPriceStrategy) {
	s.pricing = pricing
}

// SetIdempotencyStore enables duplicate detection for requests that carry an idempotency key
func (s *StockService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// SetEngineMetrics sets the metrics collector
func (s *StockService) SetEngineMetrics(m *telemetry.EngineMetrics) {
	s.metrics = m
}

// SetLogger sets the logger
func (s *StockService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// CreateItem registers a new inventory item. A positive opening quantity is
// ledgered as an increase adjustment so the ledger explains every unit on hand.
func (s *StockService) CreateItem(ctx context.Context, req CreateItemRequest) (*InventoryItemResponse, error) {
	unit, err := valueobject.ParseUnit(req.Unit)
	if err != nil {
		return nil, err
	}

	item, err := inventory.NewInventoryItem(req.Name, req.Category, unit, req.UnitPrice, req.MinThreshold,
		inventory.TrackingMode(req.TrackingMode))
	if err != nil {
		return nil, err
	}

	var opening *inventory.InventoryTransaction
	if req.OpeningQuantity != nil && req.OpeningQuantity.IsPositive() {
		result, err := item.ApplyTransaction(inventory.TransactionInput{
			Type:      inventory.TransactionTypeAdjustment,
			Direction: inventory.AdjustmentIncrease,
			Quantity:  *req.OpeningQuantity,
			Unit:      unit,
			Metadata:  inventory.TransactionMetadata{Reason: "opening stock"},
		}, s.table)
		if err != nil {
			return nil, err
		}
		opening = result.Transaction
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}
		if opening != nil {
			return repos.TransactionRepo().Create(ctx, opening)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory item created",
		zap.String("inventory_item_id", item.ID.String()),
		zap.String("name", item.Name),
		zap.String("unit", item.Unit.String()),
		zap.String("quantity", item.Quantity.String()),
	)
	s.publishDomainEvents(ctx, item)

	response := ToInventoryItemResponse(item)
	return &response, nil
}

// GetItem retrieves an inventory item by ID
func (s *StockService) GetItem(ctx context.Context, itemID uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// ListItems retrieves inventory items with filtering and pagination
func (s *StockService) ListItems(ctx context.Context, filter InventoryListFilter) ([]InventoryItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.TrackingMode != "" {
		domainFilter.Filters["tracking_mode"] = filter.TrackingMode
	}
	if filter.BelowMinimum != nil && *filter.BelowMinimum {
		domainFilter.Filters["below_minimum"] = true
	}
	if !filter.IncludeInactive {
		domainFilter.Filters["active"] = true
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInventoryItemResponses(items), total, nil
}

// UpdateItem changes an item's threshold, price or active flag.
// Stock quantity is not editable here; use ApplyTransaction.
func (s *StockService) UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest) (*InventoryItemResponse, error) {
	var item *inventory.InventoryItem
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = repos.ItemRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		expected := item.Version

		if req.MinThreshold != nil {
			if err := item.SetMinThreshold(*req.MinThreshold); err != nil {
				return err
			}
		}
		if req.UnitPrice != nil {
			if err := item.UpdateUnitPrice(*req.UnitPrice); err != nil {
				return err
			}
		}
		if req.IsActive != nil {
			if *req.IsActive {
				item.Activate()
			} else {
				item.Deactivate()
			}
		}
		if item.Version == expected {
			return nil
		}
		return repos.ItemRepo().SaveWithLock(ctx, item, expected)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, item)
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// ApplyTransaction records one purchase, usage, wastage or adjustment.
// A decrease below zero succeeds and is reported in the response warnings.
func (s *StockService) ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*MutationResponse, error) {
	if err := s.checkDuplicate(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	in, err := toTransactionInput(req)
	if err != nil {
		return nil, err
	}

	var (
		item   *inventory.InventoryItem
		result inventory.MutationResult
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = repos.ItemRepo().FindByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		expected := item.Version

		result, err = item.ApplyTransaction(in, s.table)
		if err != nil {
			return err
		}
		if err := s.reprice(ctx, item, result.Transaction); err != nil {
			return err
		}
		if err := repos.ItemRepo().SaveWithLock(ctx, item, expected); err != nil {
			return err
		}
		return repos.TransactionRepo().Create(ctx, result.Transaction)
	})
	if err != nil {
		return nil, err
	}

	s.markProcessed(ctx, req.IdempotencyKey)
	s.recordMutation(ctx, item, result)

	fields := []zap.Field{
		zap.String("inventory_item_id", item.ID.String()),
		zap.String("transaction_id", result.Transaction.ID.String()),
		zap.String("transaction_type", result.Transaction.TransactionType.String()),
		zap.String("quantity", result.Transaction.Quantity.String()),
		zap.String("balance_after", result.Transaction.BalanceAfter.String()),
	}
	if result.HasDeficit() {
		s.logger.Warn("stock transaction left item in deficit", fields...)
	} else {
		s.logger.Info("stock transaction recorded", fields...)
	}

	s.publishDomainEvents(ctx, item)

	return &MutationResponse{
		Item:        ToInventoryItemResponse(item),
		Transaction: ToTransactionResponse(result.Transaction),
		Warnings:    ToWarningResponses(result.Warnings),
	}, nil
}

// ApplyEventUsage deducts what a catering event consumed. The dish selections are
// aggregated first, so an item used by several dishes gets a single usage
// transaction for its combined quantity. All items commit or none do.
// On-demand items are skipped unless IncludeOnDemand is set.
func (s *StockService) ApplyEventUsage(ctx context.Context, req EventUsageRequest) (*EventUsageResponse, error) {
	if req.EventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Event ID is required")
	}
	if err := s.checkDuplicate(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	demand, _, err := s.demand.Load(ctx, toDishServings(req.Selections))
	if err != nil {
		return nil, err
	}

	eventID := req.EventID
	meta := inventory.TransactionMetadata{EventID: &eventID, Reason: req.Reason}
	if req.Date != nil {
		meta.Date = *req.Date
	}
	if meta.Reason == "" {
		meta.Reason = "event usage"
	}

	var (
		touched  []*inventory.InventoryItem
		results  []inventory.MutationResult
		response *EventUsageResponse
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		touched, results = nil, nil
		response = &EventUsageResponse{
			EventID:      eventID,
			Transactions: []TransactionResponse{},
			Skipped:      []SkippedItem{},
			Warnings:     []WarningResponse{},
		}

		txs := make([]*inventory.InventoryTransaction, 0, len(demand.Entries))
		for _, entry := range demand.Entries {
			if entry.TrackingMode == inventory.TrackingOnDemand && !req.IncludeOnDemand {
				response.Skipped = append(response.Skipped, SkippedItem{
					ItemID:   entry.ItemID,
					ItemName: entry.ItemName,
					Required: entry.Required,
					Unit:     entry.Unit.String(),
					Reason:   "on_demand",
				})
				continue
			}

			item, err := repos.ItemRepo().FindByID(ctx, entry.ItemID)
			if err != nil {
				return fmt.Errorf("load %s: %w", entry.ItemName, err)
			}
			expected := item.Version

			result, err := item.ApplyTransaction(inventory.TransactionInput{
				Type:     inventory.TransactionTypeUsage,
				Quantity: entry.Required,
				Unit:     entry.Unit,
				Metadata: meta,
			}, s.table)
			if err != nil {
				return err
			}
			if err := repos.ItemRepo().SaveWithLock(ctx, item, expected); err != nil {
				return err
			}

			txs = append(txs, result.Transaction)
			touched = append(touched, item)
			results = append(results, result)
			response.Transactions = append(response.Transactions, ToTransactionResponse(result.Transaction))
			response.Warnings = append(response.Warnings, ToWarningResponses(result.Warnings)...)
		}

		if len(txs) == 0 {
			return nil
		}
		return repos.TransactionRepo().CreateBatch(ctx, txs)
	})
	if err != nil {
		return nil, err
	}

	s.markProcessed(ctx, req.IdempotencyKey)
	for i, item := range touched {
		s.recordMutation(ctx, item, results[i])
	}
	if s.metrics != nil {
		s.metrics.RecordEventUsage(ctx, len(touched))
	}

	s.logger.Info("event usage recorded",
		zap.String("event_id", eventID.String()),
		zap.Int("transactions", len(response.Transactions)),
		zap.Int("skipped", len(response.Skipped)),
		zap.Int("warnings", len(response.Warnings)),
	)

	s.publishDomainEvents(ctx, touched...)
	return response, nil
}

// ListTransactions retrieves an item's ledger, newest first
func (s *StockService) ListTransactions(ctx context.Context, itemID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	txFilter := inventory.TransactionFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "transaction_date",
			OrderDir: "desc",
		},
		EventID: filter.EventID,
		From:    filter.StartDate,
		To:      filter.EndDate,
	}
	if filter.TransactionType != "" {
		t := inventory.TransactionType(filter.TransactionType)
		if !t.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_TRANSACTION_TYPE", fmt.Sprintf("Unknown transaction type %q", filter.TransactionType))
		}
		txFilter.TransactionType = &t
	}

	txs, err := s.transactionRepo.FindByItem(ctx, item.ID, txFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.CountByItem(ctx, item.ID, txFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTransactionResponses(txs), total, nil
}

// VerifyLedger checks that the item's on-hand quantity equals the opening
// quantity plus the signed effect of every ledgered transaction.
func (s *StockService) VerifyLedger(ctx context.Context, itemID uuid.UUID, opening decimal.Decimal) (*LedgerCheckResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactionRepo.FindAllByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	check := inventory.VerifyLedger(item, opening, txs)
	response := &LedgerCheckResponse{
		ItemID:           item.ID,
		OpeningQuantity:  check.OpeningQuantity,
		SignedTotal:      check.SignedTotal,
		ExpectedQuantity: check.ExpectedQuantity,
		ActualQuantity:   check.ActualQuantity,
		Transactions:     check.Transactions,
		Consistent:       check.Consistent,
	}
	if _, err := inventory.ReplayLedger(opening, txs); err != nil {
		response.Consistent = false
		response.Gap = err.Error()
	}

	if !response.Consistent {
		s.logger.Warn("inventory ledger mismatch",
			zap.String("inventory_item_id", item.ID.String()),
			zap.String("expected", check.ExpectedQuantity.String()),
			zap.String("actual", check.ActualQuantity.String()),
			zap.String("gap", response.Gap),
		)
	}
	return response, nil
}

func toDishServings(inputs []SelectionInput) []planning.DishServings {
	refs := make([]planning.DishServings, len(inputs))
	for i, in := range inputs {
		refs[i] = planning.DishServings{DishID: in.DishID, Servings: in.Servings}
	}
	return refs
}

// reprice applies the pricing strategy after a costed purchase
func (s *StockService) reprice(ctx context.Context, item *inventory.InventoryItem, tx *inventory.InventoryTransaction) error {
	if s.pricing == nil || tx.TransactionType != inventory.TransactionTypePurchase || tx.Cost == nil {
		return nil
	}
	price, err := s.pricing.NextUnitPrice(ctx, strategy.PurchaseContext{
		OnHandBefore:      tx.BalanceBefore,
		CurrentUnitPrice:  item.UnitPrice,
		PurchasedQuantity: tx.Quantity,
		PurchaseCost:      *tx.Cost,
	})
	if err != nil {
		return fmt.Errorf("reprice %s: %w", item.Name, err)
	}
	return item.UpdateUnitPrice(price)
}

func (s *StockService) checkDuplicate(ctx context.Context, key string) error {
	if key == "" || s.idempotency == nil {
		return nil
	}
	done, err := s.idempotency.IsProcessed(ctx, idempotencyKeyPrefix+key)
	if err != nil {
		s.logger.Warn("idempotency check failed, processing request",
			zap.String("idempotency_key", key),
			zap.Error(err),
		)
		return nil
	}
	if done {
		return shared.ErrDuplicateRequest
	}
	return nil
}

func (s *StockService) markProcessed(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil {
		return
	}
	if _, err := s.idempotency.MarkProcessed(ctx, idempotencyKeyPrefix+key, s.idempotencyTTL); err != nil {
		s.logger.Warn("failed to mark request processed",
			zap.String("idempotency_key", key),
			zap.Error(err),
		)
	}
}

func (s *StockService) recordMutation(ctx context.Context, item *inventory.InventoryItem, result inventory.MutationResult) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordTransaction(ctx, result.Transaction.TransactionType.String(), item.Category)
	if result.HasDeficit() {
		s.metrics.RecordStockDeficit(ctx, item.Category)
	}
}

// publishDomainEvents publishes and clears the pending events of each item.
// Publishing failures are logged; the mutation is already committed.
func (s *StockService) publishDomainEvents(ctx context.Context, items ...*inventory.InventoryItem) {
	for _, item := range items {
		events := item.GetDomainEvents()
		item.ClearDomainEvents()
		if s.eventPublisher == nil || len(events) == 0 {
			continue
		}
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish inventory events",
				zap.String("inventory_item_id", item.ID.String()),
				zap.Int("events", len(events)),
				zap.Error(err),
			)
		}
	}
}

func toTransactionInput(req ApplyTransactionRequest) (inventory.TransactionInput, error) {
	unit, err := valueobject.ParseUnit(req.Unit)
	if err != nil {
		return inventory.TransactionInput{}, err
	}
	in := inventory.TransactionInput{
		Type:      inventory.TransactionType(req.Type),
		Quantity:  req.Quantity,
		Unit:      unit,
		Direction: inventory.AdjustmentDirection(req.Direction),
		Metadata: inventory.TransactionMetadata{
			Cost:      req.Cost,
			EventID:   req.EventID,
			Reason:    req.Reason,
			Reference: req.Reference,
		},
	}
	if req.Date != nil {
		in.Metadata.Date = *req.Date
	}
	return in, nil
}
