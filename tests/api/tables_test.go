package apitest

import (
	"net/http"
	"testing"
)

func TestTables_ListShowsOccupancy(t *testing.T) {
	db := barTestDB(t)
	seedBar(t, db)
	e := barTestServer(t, db)

	rec := doJSON(e, http.MethodGet, "/api/tables", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/tables status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	tables := decodeList(t, rec)
	if len(tables) != 3 {
		t.Fatalf("len(tables) = %d, want 3", len(tables))
	}
	for _, tb := range tables {
		if tb["occupied"] != false {
			t.Errorf("table %v occupied = %v, want false", tb["id"], tb["occupied"])
		}
	}
}

func TestTables_OrderViewEmptyTable(t *testing.T) {
	db := barTestDB(t)
	seedBar(t, db)
	e := barTestServer(t, db)

	rec := doJSON(e, http.MethodGet, "/api/tables/1/order", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeMap(t, rec)
	if body["order"] != nil {
		t.Errorf("order = %v, want null for unoccupied table", body["order"])
	}
	items, ok := body["items"].([]interface{})
	if !ok || len(items) != 0 {
		t.Errorf("items = %v, want empty array", body["items"])
	}
}

func TestTables_AddItemsFullFlow(t *testing.T) {
	db := barTestDB(t)
	seedBar(t, db)
	e := barTestServer(t, db)

	rec := doJSON(e, http.MethodPost, "/api/tables/2/order/items", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": 1, "qty": 2},
			{"product_id": 2, "qty": 1},
		},
		"user_id": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add items status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// Order view now carries both lines with product names.
	rec = doJSON(e, http.MethodGet, "/api/tables/2/order", nil)
	body := decodeMap(t, rec)
	if body["order"] == nil {
		t.Fatal("order = null after adding items")
	}
	items := body["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["name"] != "Cerveza Corona" {
		t.Errorf("items[0].name = %v, want Cerveza Corona", first["name"])
	}

	// Table now reads occupied.
	rec = doJSON(e, http.MethodGet, "/api/tables", nil)
	for _, tb := range decodeList(t, rec) {
		if tb["id"] == float64(2) && tb["occupied"] != true {
			t.Error("table 2 not occupied after adding items")
		}
	}

	// Close the tab: 2*45 + 95 = 185.
	rec = doJSON(e, http.MethodPost, "/api/tables/2/close", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("close status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	closeBody := decodeMap(t, rec)
	if closeBody["success"] != true {
		t.Errorf("success = %v, want true", closeBody["success"])
	}
	if closeBody["total"] != "185" {
		t.Errorf("total = %v, want 185", closeBody["total"])
	}
}

func TestTables_AddItemsInsufficientStock(t *testing.T) {
	db := barTestDB(t)
	seedBar(t, db)
	e := barTestServer(t, db)

	// Mojito stock is 5.
	rec := doJSON(e, http.MethodPost, "/api/tables/1/order/items", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": 2, "qty": 9}},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	body := decodeMap(t, rec)
	if body["product_id"] != float64(2) || body["requested"] != float64(9) || body["available"] != float64(5) {
		t.Errorf("conflict detail = %v, want product 2 requested 9 available 5", body)
	}
}

func TestTables_AddItemsValidation(t *testing.T) {
	db := barTestDB(t)
	seedBar(t, db)
	e := barTestServer(t, db)

	cases := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{"empty items", map[string]interface{}{"items": []map[string]interface{}{}}, http.StatusBadRequest},
		{"zero qty", map[string]interface{}{"items": []map[string]interface{}{{"product_id": 1, "qty": 0}}}, http.StatusBadRequest},
		{"unknown product", map[string]interface{}{"items": []map[string]interface{}{{"product_id": 99, "qty": 1}}}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/tables/1/order/items", tc.body)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}

	rec := doJSON(e, http.MethodPost, "/api/tables/abc/order/items", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": 1, "qty": 1}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad table id status = %d, want 400", rec.Code)
	}
}

func TestTables_CloseWithoutOpenOrder(t *testing.T) {
	db := barTestDB(t)
	seedBar(t, db)
	e := barTestServer(t, db)

	rec := doJSON(e, http.MethodPost, "/api/tables/3/close", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}
