package order

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"barpos.GO/core/lock"
	ledgerRepo "barpos.GO/model/repository/ledger"
)

// ReservationEngine is the only path by which stock is consumed for a sale.
// The check-then-decrement sequence runs under the product's lock inside one
// transaction, so two concurrent reservations can never both pass the check.
type ReservationEngine struct {
	db     *gorm.DB
	ledger *ledgerRepo.LedgerRepository
	locks  lock.Locker
}

var (
	engineMu        sync.Mutex
	engineInstances = make(map[*gorm.DB]*ReservationEngine)
)

func NewReservationEngine(db *gorm.DB, locks lock.Locker) *ReservationEngine {
	return &ReservationEngine{
		db:     db,
		ledger: ledgerRepo.GetLedgerRepository(db),
		locks:  locks,
	}
}

// GetReservationEngine returns the shared engine for a DB handle.
func GetReservationEngine(db *gorm.DB) *ReservationEngine {
	engineMu.Lock()
	defer engineMu.Unlock()
	if e, ok := engineInstances[db]; ok {
		return e
	}
	e := NewReservationEngine(db, lock.Get())
	engineInstances[db] = e
	return e
}

func productKey(productID uint) string {
	return fmt.Sprintf("product:%d", productID)
}

// Reserve consumes qty units for a sale, returning the resulting stock.
// Fails with InsufficientStockError and no mutation when the request exceeds
// availability.
func (e *ReservationEngine) Reserve(ctx context.Context, productID uint, qty int, userID *uint) (int, error) {
	if qty <= 0 {
		return 0, &ValidationError{Reason: "quantity must be positive"}
	}
	unlock, err := e.locks.Acquire(ctx, productKey(productID))
	if err != nil {
		return 0, err
	}
	defer unlock()

	var newStock int
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		newStock, txErr = e.reserveTx(tx, productID, qty, userID)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// reserveTx is the check-and-decrement step. Caller must hold the product
// lock and pass the enclosing transaction.
func (e *ReservationEngine) reserveTx(tx *gorm.DB, productID uint, qty int, userID *uint) (int, error) {
	led := e.ledger.WithTx(tx)

	current, err := led.GetStock(productID)
	if err != nil {
		return 0, fmt.Errorf("read stock: %w", err)
	}
	if qty > current {
		return 0, &InsufficientStockError{ProductID: productID, Requested: qty, Available: current}
	}
	newStock, err := led.ApplyStockDelta(productID, -qty)
	if err != nil {
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}
	if _, err := led.RecordMovement(productID, -qty, newStock, userID); err != nil {
		return 0, fmt.Errorf("record movement: %w", err)
	}
	return newStock, nil
}

// Adjust applies a manual restock or correction. No insufficiency check;
// the floor is clamped at zero and the recorded delta is the effective one,
// keeping the audit replay exact.
func (e *ReservationEngine) Adjust(ctx context.Context, productID uint, delta int, userID *uint) (int, error) {
	if delta == 0 {
		return 0, &ValidationError{Reason: "delta must be non-zero"}
	}
	unlock, err := e.locks.Acquire(ctx, productKey(productID))
	if err != nil {
		return 0, err
	}
	defer unlock()

	var newStock int
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		led := e.ledger.WithTx(tx)

		current, txErr := led.GetStock(productID)
		if txErr != nil {
			return fmt.Errorf("read stock: %w", txErr)
		}
		newStock, txErr = led.ApplyStockDelta(productID, delta)
		if txErr != nil {
			return fmt.Errorf("apply stock delta: %w", txErr)
		}
		if _, txErr = led.RecordMovement(productID, newStock-current, newStock, userID); txErr != nil {
			return fmt.Errorf("record movement: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}
