package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"barpos.GO/core/lock"
	entity "barpos.GO/model/entity"
	catalogRepo "barpos.GO/model/repository/catalog"
	ledgerRepo "barpos.GO/model/repository/ledger"
)

// ItemRequest is one line of an add-items call.
type ItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Qty       int  `json:"qty" validate:"required,gt=0"`
}

// OrderService runs the table-facing workflow: resolve or create the open
// order, reserve stock per item, append line items with the price frozen at
// sale time, and close the tab.
//
// Batch semantics: each item is an independent unit of work. Processing stops
// at the first insufficient-stock failure; items already committed in the
// same call stay committed.
type OrderService struct {
	db      *gorm.DB
	ledger  *ledgerRepo.LedgerRepository
	catalog *catalogRepo.CatalogRepository
	stock   *ReservationEngine
	locks   lock.Locker
}

var (
	svcMu        sync.Mutex
	svcInstances = make(map[*gorm.DB]*OrderService)
)

func NewOrderService(db *gorm.DB, stock *ReservationEngine, locks lock.Locker) *OrderService {
	return &OrderService{
		db:      db,
		ledger:  ledgerRepo.GetLedgerRepository(db),
		catalog: catalogRepo.GetCatalogRepository(db),
		stock:   stock,
		locks:   locks,
	}
}

// GetOrderService returns the shared service for a DB handle.
func GetOrderService(db *gorm.DB) *OrderService {
	svcMu.Lock()
	defer svcMu.Unlock()
	if s, ok := svcInstances[db]; ok {
		return s
	}
	s := NewOrderService(db, GetReservationEngine(db), lock.Get())
	svcInstances[db] = s
	return s
}

func tableKey(tableID uint) string {
	return fmt.Sprintf("table:%d", tableID)
}

// AddItems appends the requested items to the table's open order, creating
// the order first when the table has none. On InsufficientStockError the
// returned order reflects the items committed before the failure.
func (s *OrderService) AddItems(ctx context.Context, tableID uint, items []ItemRequest, userID *uint) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Reason: "no items to add"}
	}
	// Reject the whole batch before any mutation.
	for _, it := range items {
		if it.Qty <= 0 {
			return nil, &ValidationError{Reason: fmt.Sprintf("quantity must be positive for product %d", it.ProductID)}
		}
		ok, err := s.catalog.Exists(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("check product %d: %w", it.ProductID, err)
		}
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("unknown product %d", it.ProductID)}
		}
	}

	unlock, err := s.locks.Acquire(ctx, tableKey(tableID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ord, err := s.ledger.FindOpenOrder(tableID)
	if err != nil {
		return nil, fmt.Errorf("resolve open order: %w", err)
	}
	if ord == nil {
		ord, err = s.ledger.CreateOrder(tableID, userID)
		if err != nil {
			return nil, fmt.Errorf("create order: %w", err)
		}
	}

	for _, it := range items {
		if err := s.addItem(ctx, ord, it, userID); err != nil {
			return ord, err
		}
	}
	return ord, nil
}

// addItem reserves stock and appends one line item as a single transaction,
// under the product's lock. The unit price is read from the catalog here;
// this is the moment the sale price freezes.
func (s *OrderService) addItem(ctx context.Context, ord *entity.Order, it ItemRequest, userID *uint) error {
	price, err := s.catalog.GetCurrentPrice(it.ProductID)
	if err != nil {
		return fmt.Errorf("price lookup for product %d: %w", it.ProductID, err)
	}

	unlock, err := s.locks.Acquire(ctx, productKey(it.ProductID))
	if err != nil {
		return err
	}
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.stock.reserveTx(tx, it.ProductID, it.Qty, userID); err != nil {
			return err
		}
		if _, err := s.ledger.WithTx(tx).AddOrderItem(ord.ID, it.ProductID, it.Qty, price); err != nil {
			return fmt.Errorf("append order item: %w", err)
		}
		return nil
	})
}

// Close computes the table's open order total from its recorded line items,
// freezes it and marks the order closed. The item list is the sole source of
// truth for the total.
func (s *OrderService) Close(ctx context.Context, tableID uint) (*entity.Order, error) {
	unlock, err := s.locks.Acquire(ctx, tableKey(tableID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ord, err := s.ledger.FindOpenOrder(tableID)
	if err != nil {
		return nil, fmt.Errorf("resolve open order: %w", err)
	}
	if ord == nil {
		return nil, ErrNoOpenOrder
	}

	items, err := s.ledger.ListOrderItems(ord.ID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}

	var closed *entity.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		closed, txErr = s.ledger.WithTx(tx).CloseOrder(ord.ID, total)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}
