package report

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService is the read-only surface over the ledger: closed orders with
// totals, item/product joins and movement history feed the reporting screens.
// It never mutates anything.
type ReportService struct {
	db *gorm.DB
}

var (
	mu        sync.Mutex
	instances = make(map[*gorm.DB]*ReportService)
)

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// GetReportService returns the shared instance for a DB handle.
func GetReportService(db *gorm.DB) *ReportService {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := instances[db]; ok {
		return s
	}
	s := NewReportService(db)
	instances[db] = s
	return s
}

// TableRow is a table with its derived occupancy flag.
type TableRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Occupied bool   `json:"occupied"`
}

// ListTables returns all tables; a table is occupied while an open order
// references it.
func (s *ReportService) ListTables() ([]TableRow, error) {
	const query = `
		SELECT t.id,
		       t.name,
		       EXISTS (
		         SELECT 1 FROM orders o
		         WHERE o.table_id = t.id AND o.status = 'open'
		       ) AS occupied
		FROM tables t
		ORDER BY t.id`
	var rows []TableRow
	err := s.db.Raw(query).Scan(&rows).Error
	return rows, err
}

// StockRow is a product with its current stock, implicit 0 when no inventory
// row exists yet.
type StockRow struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ListStock returns the catalog joined with current stock levels.
func (s *ReportService) ListStock() ([]StockRow, error) {
	const query = `
		SELECT p.id, p.name, p.price, COALESCE(i.stock, 0) AS stock
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		ORDER BY p.id`
	var rows []StockRow
	err := s.db.Raw(query).Scan(&rows).Error
	return rows, err
}

// TableSales is the closed-order revenue of one table.
type TableSales struct {
	TableID uint            `json:"table_id"`
	Total   decimal.Decimal `json:"total"`
}

func (s *ReportService) SalesByTable() ([]TableSales, error) {
	const query = `
		SELECT table_id, SUM(total) AS total
		FROM orders
		WHERE status = 'closed'
		GROUP BY table_id
		ORDER BY table_id`
	var rows []TableSales
	err := s.db.Raw(query).Scan(&rows).Error
	return rows, err
}

// ProductSales aggregates sold quantity and revenue per product over closed
// orders.
type ProductSales struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

func (s *ReportService) SalesByProduct() ([]ProductSales, error) {
	const query = `
		SELECT p.name AS product,
		       SUM(oi.qty) AS quantity,
		       SUM(oi.qty * oi.price) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'closed'
		GROUP BY p.id
		ORDER BY revenue DESC`
	var rows []ProductSales
	err := s.db.Raw(query).Scan(&rows).Error
	return rows, err
}

// UserSales aggregates closed-order totals per serving user.
type UserSales struct {
	User  string          `json:"user"`
	Total decimal.Decimal `json:"total"`
}

func (s *ReportService) SalesByUser() ([]UserSales, error) {
	const query = `
		SELECT COALESCE(u.username, 'unknown') AS user,
		       SUM(o.total) AS total
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.status = 'closed'
		GROUP BY COALESCE(u.username, 'unknown')
		ORDER BY total DESC`
	var rows []UserSales
	err := s.db.Raw(query).Scan(&rows).Error
	return rows, err
}

// DetailRow is one sold line item with its order context, newest order first.
type DetailRow struct {
	Date    time.Time       `json:"date"`
	TableID uint            `json:"table_id"`
	User    string          `json:"user"`
	Product string          `json:"product"`
	Qty     int             `json:"qty"`
	Total   decimal.Decimal `json:"total"`
}

func (s *ReportService) ClosedOrderDetail() ([]DetailRow, error) {
	const query = `
		SELECT o.created_at AS date,
		       o.table_id,
		       COALESCE(u.username, 'unknown') AS user,
		       p.name AS product,
		       oi.qty,
		       (oi.qty * oi.price) AS total
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.status = 'closed'
		ORDER BY o.created_at DESC, o.id DESC`
	var rows []DetailRow
	err := s.db.Raw(query).Scan(&rows).Error
	return rows, err
}

// LowStockRow is a product at or below the restock threshold.
type LowStockRow struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// LowStock returns products whose stock is at or below threshold.
func (s *ReportService) LowStock(threshold int) ([]LowStockRow, error) {
	const query = `
		SELECT p.id, p.name, COALESCE(i.stock, 0) AS stock
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE COALESCE(i.stock, 0) <= ?
		ORDER BY stock ASC, p.id`
	var rows []LowStockRow
	err := s.db.Raw(query, threshold).Scan(&rows).Error
	return rows, err
}
