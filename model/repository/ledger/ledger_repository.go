package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	entity "barpos.GO/model/entity"
)

// ErrOrderClosed is returned when a mutation targets an order that has
// already been closed.
var ErrOrderClosed = errors.New("order already closed")

// LedgerRepository owns persistence for inventory, orders, order items and
// the movement audit log. No other component writes these tables.
//
// Stock mutations are two-step (applyStockDelta + recordMovement); callers
// wrap both in one transaction via WithTx so the audit log can never drift
// from the stock table.
type LedgerRepository struct {
	db *gorm.DB
}

var (
	mu        sync.Mutex
	instances = make(map[*gorm.DB]*LedgerRepository)
)

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetLedgerRepository returns the shared instance for a DB handle.
func GetLedgerRepository(db *gorm.DB) *LedgerRepository {
	mu.Lock()
	defer mu.Unlock()
	if r, ok := instances[db]; ok {
		return r
	}
	r := NewLedgerRepository(db)
	instances[db] = r
	return r
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *LedgerRepository) WithTx(tx *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: tx}
}

// GetStock returns current stock for a product, 0 when no inventory row
// exists yet. A missing row is implicit zero, not an error.
func (r *LedgerRepository) GetStock(productID uint) (int, error) {
	var inv entity.Inventory
	err := r.db.Where("product_id = ?", productID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return inv.Stock, nil
}

// ApplyStockDelta sets stock to max(0, current+delta), creating the inventory
// row lazily. It returns the resulting stock level. Clamping means a large
// negative delta cannot signal insufficient stock by itself; consumption
// paths must check availability before calling this.
func (r *LedgerRepository) ApplyStockDelta(productID uint, delta int) (int, error) {
	current, err := r.GetStock(productID)
	if err != nil {
		return 0, err
	}
	newStock := current + delta
	if newStock < 0 {
		newStock = 0
	}
	inv := entity.Inventory{ProductID: productID, Stock: newStock}
	if err := r.db.Save(&inv).Error; err != nil {
		return 0, err
	}
	return newStock, nil
}

// RecordMovement appends one audit row. Must be called exactly once per
// ApplyStockDelta with the matching delta and resulting stock.
func (r *LedgerRepository) RecordMovement(productID uint, delta, newStock int, userID *uint) (*entity.InventoryMovement, error) {
	m := entity.InventoryMovement{
		ProductID: productID,
		Delta:     delta,
		NewStock:  newStock,
		UserID:    userID,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindOpenOrder returns the table's open order, or nil when the table is
// unoccupied.
func (r *LedgerRepository) FindOpenOrder(tableID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.db.
		Where("table_id = ? AND status = ?", tableID, entity.OrderStatusOpen).
		Order("id DESC").
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder opens a new order for a table. Total stays unset until close.
func (r *LedgerRepository) CreateOrder(tableID uint, userID *uint) (*entity.Order, error) {
	o := entity.Order{
		TableID: tableID,
		Status:  entity.OrderStatusOpen,
		UserID:  userID,
	}
	if err := r.db.Create(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// AddOrderItem appends a line item with the unit price frozen at sale time.
func (r *LedgerRepository) AddOrderItem(orderID, productID uint, qty int, unitPrice decimal.Decimal) (*entity.OrderItem, error) {
	item := entity.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Qty:       qty,
		Price:     unitPrice,
	}
	if err := r.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListOrderItems returns an order's line items in insertion order.
func (r *LedgerRepository) ListOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

// OrderItemRow is a line item joined with its product name, the shape the
// table's order view exposes.
type OrderItemRow struct {
	ID        uint            `json:"id"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	ProductID uint            `json:"product_id"`
}

// ListOrderItemRows returns an order's line items with product names.
func (r *LedgerRepository) ListOrderItemRows(orderID uint) ([]OrderItemRow, error) {
	const query = `
		SELECT oi.id,
		       oi.qty,
		       oi.price,
		       p.name,
		       p.id AS product_id
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.id ASC`
	var rows []OrderItemRow
	err := r.db.Raw(query, orderID).Scan(&rows).Error
	return rows, err
}

// CloseOrder freezes the computed total and marks the order closed. Returns
// ErrOrderClosed when the order is not open anymore.
func (r *LedgerRepository) CloseOrder(orderID uint, total decimal.Decimal) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	if o.Status != entity.OrderStatusOpen {
		return nil, ErrOrderClosed
	}
	now := time.Now()
	o.Status = entity.OrderStatusClosed
	o.ClosedAt = &now
	o.Total = &total
	if err := r.db.Save(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// HasProductHistory reports whether a product appears in any sale or
// movement. Products with history must never be deleted.
func (r *LedgerRepository) HasProductHistory(productID uint) (bool, error) {
	var n int64
	if err := r.db.Model(&entity.OrderItem{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := r.db.Model(&entity.InventoryMovement{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// MovementsByProduct returns a product's movements in creation order, for
// audit replay.
func (r *LedgerRepository) MovementsByProduct(productID uint) ([]entity.InventoryMovement, error) {
	var ms []entity.InventoryMovement
	err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&ms).Error
	return ms, err
}

// MovementRow is one audit entry joined with product and user names, the
// shape the movements listing exposes.
type MovementRow struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ProductName string    `json:"product_name"`
	Delta       int       `json:"delta"`
	NewStock    int       `json:"new_stock"`
	User        *string   `json:"user"`
}

// ListMovements returns the full audit trail, newest first.
func (r *LedgerRepository) ListMovements() ([]MovementRow, error) {
	const query = `
		SELECT m.id,
		       m.created_at,
		       p.name AS product_name,
		       m.delta,
		       m.new_stock,
		       u.username AS user
		FROM inventory_movements m
		LEFT JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.user_id
		ORDER BY m.id DESC`
	var rows []MovementRow
	err := r.db.Raw(query).Scan(&rows).Error
	return rows, err
}
