package apitest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	loginApi "barpos.GO/api/auth"
	inventoryApi "barpos.GO/api/inventory"
	productApi "barpos.GO/api/product"
	reportsApi "barpos.GO/api/reports"
	tablesApi "barpos.GO/api/tables"
	"barpos.GO/core/cache"
	entity "barpos.GO/model/entity"
)

func decimalFrom(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func barTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("bar_api_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
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

// seedBar inserts the demo operators, three tables and two stocked drinks.
func seedBar(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []error{
		db.Create(&entity.User{ID: 1, Username: "admin", Password: "admin", Role: "admin"}).Error,
		db.Create(&entity.User{ID: 2, Username: "mesero", Password: "mesero", Role: "mesero"}).Error,
		db.Create(&entity.Table{ID: 1, Name: "Mesa 1"}).Error,
		db.Create(&entity.Table{ID: 2, Name: "Mesa 2"}).Error,
		db.Create(&entity.Table{ID: 3, Name: "Mesa 3"}).Error,
		db.Create(&entity.Product{ID: 1, Name: "Cerveza Corona", Price: decimalFrom(45)}).Error,
		db.Create(&entity.Product{ID: 2, Name: "Mojito", Price: decimalFrom(95)}).Error,
		db.Create(&entity.Inventory{ProductID: 1, Stock: 20}).Error,
		db.Create(&entity.Inventory{ProductID: 2, Stock: 5}).Error,
	}
	for _, err := range rows {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

// barTestServer mounts every API surface without auth. Cached list responses
// are dropped so tests never see another test's database.
func barTestServer(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	cache.GetInstance().Delete("tables:list")
	cache.GetInstance().Delete("products:list")
	e := echo.New()
	apiGroup := e.Group("/api")
	loginApi.RegisterLoginRoutes(apiGroup, db)
	productApi.RegisterProductRoutes(apiGroup, db)
	inventoryApi.RegisterInventoryRoutes(apiGroup, db)
	tablesApi.RegisterTableRoutes(apiGroup, db)
	reportsApi.RegisterReportRoutes(apiGroup, db)
	return e
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func doJSON(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&l); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return l
}
