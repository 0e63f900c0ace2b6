package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	entity "barpos.GO/model/entity"
)

func reportTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("report_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Table{},
		&entity.Product{},
		&entity.Inventory{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.InventoryMovement{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// seedSales builds a small closed-order history: table 1 served by admin
// (2 beers + 1 mojito = 185), table 2 served by mesero (1 mojito = 95),
// and one still-open order on table 3.
func seedSales(t *testing.T, db *gorm.DB) {
	t.Helper()
	db.Create(&entity.User{ID: 1, Username: "admin", Password: "admin", Role: "admin"})
	db.Create(&entity.User{ID: 2, Username: "mesero", Password: "mesero", Role: "mesero"})
	for i := 1; i <= 3; i++ {
		db.Create(&entity.Table{ID: uint(i), Name: fmt.Sprintf("Mesa %d", i)})
	}
	db.Create(&entity.Product{ID: 1, Name: "Cerveza Corona", Price: dec(45)})
	db.Create(&entity.Product{ID: 2, Name: "Mojito", Price: dec(95)})
	db.Create(&entity.Inventory{ProductID: 1, Stock: 17})

	now := time.Now()
	u1, u2 := uint(1), uint(2)
	t1, t2 := dec(185), dec(95)
	db.Create(&entity.Order{ID: 1, TableID: 1, Status: entity.OrderStatusClosed, UserID: &u1, ClosedAt: &now, Total: &t1})
	db.Create(&entity.Order{ID: 2, TableID: 2, Status: entity.OrderStatusClosed, UserID: &u2, ClosedAt: &now, Total: &t2})
	db.Create(&entity.Order{ID: 3, TableID: 3, Status: entity.OrderStatusOpen})

	db.Create(&entity.OrderItem{OrderID: 1, ProductID: 1, Qty: 2, Price: dec(45)})
	db.Create(&entity.OrderItem{OrderID: 1, ProductID: 2, Qty: 1, Price: dec(95)})
	db.Create(&entity.OrderItem{OrderID: 2, ProductID: 2, Qty: 1, Price: dec(95)})
	db.Create(&entity.OrderItem{OrderID: 3, ProductID: 1, Qty: 1, Price: dec(45)})
}

func TestListTables_DerivesOccupancy(t *testing.T) {
	db := reportTestDB(t)
	seedSales(t, db)
	svc := NewReportService(db)

	rows, err := svc.ListTables()
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for _, r := range rows {
		wantOccupied := r.ID == 3
		if r.Occupied != wantOccupied {
			t.Errorf("table %d occupied = %v, want %v", r.ID, r.Occupied, wantOccupied)
		}
	}
}

func TestListStock_MissingInventoryReadsZero(t *testing.T) {
	db := reportTestDB(t)
	seedSales(t, db)
	svc := NewReportService(db)

	rows, err := svc.ListStock()
	if err != nil {
		t.Fatalf("ListStock: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Stock != 17 {
		t.Errorf("stock[1] = %d, want 17", rows[0].Stock)
	}
	// Product 2 has no inventory row yet.
	if rows[1].Stock != 0 {
		t.Errorf("stock[2] = %d, want implicit 0", rows[1].Stock)
	}
}

func TestSalesByTable_ClosedOrdersOnly(t *testing.T) {
	db := reportTestDB(t)
	seedSales(t, db)
	svc := NewReportService(db)

	rows, err := svc.SalesByTable()
	if err != nil {
		t.Fatalf("SalesByTable: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (open order excluded)", len(rows))
	}
	if rows[0].TableID != 1 || !rows[0].Total.Equal(dec(185)) {
		t.Errorf("rows[0] = %+v, want table 1 total 185", rows[0])
	}
	if rows[1].TableID != 2 || !rows[1].Total.Equal(dec(95)) {
		t.Errorf("rows[1] = %+v, want table 2 total 95", rows[1])
	}
}

func TestSalesByProduct_RevenueDescending(t *testing.T) {
	db := reportTestDB(t)
	seedSales(t, db)
	svc := NewReportService(db)

	rows, err := svc.SalesByProduct()
	if err != nil {
		t.Fatalf("SalesByProduct: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	// Mojito revenue 190 beats beer 90; the open order's line is excluded.
	if rows[0].Product != "Mojito" || rows[0].Quantity != 2 || !rows[0].Revenue.Equal(dec(190)) {
		t.Errorf("rows[0] = %+v, want Mojito qty 2 revenue 190", rows[0])
	}
	if rows[1].Product != "Cerveza Corona" || rows[1].Quantity != 2 || !rows[1].Revenue.Equal(dec(90)) {
		t.Errorf("rows[1] = %+v, want Cerveza Corona qty 2 revenue 90", rows[1])
	}
}

func TestSalesByUser(t *testing.T) {
	db := reportTestDB(t)
	seedSales(t, db)
	svc := NewReportService(db)

	rows, err := svc.SalesByUser()
	if err != nil {
		t.Fatalf("SalesByUser: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	byUser := map[string]decimal.Decimal{}
	for _, r := range rows {
		byUser[r.User] = r.Total
	}
	if total, ok := byUser["admin"]; !ok || !total.Equal(dec(185)) {
		t.Errorf("admin total = %v, want 185", total)
	}
	if total, ok := byUser["mesero"]; !ok || !total.Equal(dec(95)) {
		t.Errorf("mesero total = %v, want 95", total)
	}
}

func TestClosedOrderDetail(t *testing.T) {
	db := reportTestDB(t)
	seedSales(t, db)
	svc := NewReportService(db)

	rows, err := svc.ClosedOrderDetail()
	if err != nil {
		t.Fatalf("ClosedOrderDetail: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 sold lines", len(rows))
	}
	for _, r := range rows {
		if r.TableID == 3 {
			t.Error("open order leaked into the closed-order detail")
		}
		if r.User == "" {
			t.Errorf("row %+v missing user", r)
		}
	}
}

func TestLowStock(t *testing.T) {
	db := reportTestDB(t)
	seedSales(t, db)
	db.Create(&entity.Inventory{ProductID: 2, Stock: 2})
	svc := NewReportService(db)

	rows, err := svc.LowStock(5)
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].ID != 2 || rows[0].Stock != 2 {
		t.Errorf("rows[0] = %+v, want product 2 stock 2", rows[0])
	}
}
