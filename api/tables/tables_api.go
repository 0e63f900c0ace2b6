package tables

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"barpos.GO/api"
	"barpos.GO/core/cache"
	ledgerRepo "barpos.GO/model/repository/ledger"
	orderService "barpos.GO/service/order"
	reportService "barpos.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterTableRoutes)
}

const (
	cacheKeyTables = "tables:list"
	cacheTagTables = "tables"
	cacheTTL       = 5
)

type addItemsRequest struct {
	Items  []orderService.ItemRequest `json:"items" validate:"required,min=1,dive"`
	UserID *uint                      `json:"user_id"`
}

func parseTableID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// RegisterTableRoutes mounts the table workflow under /api/tables: occupancy
// listing, the open order view, item addition and tab close.
func RegisterTableRoutes(apiGroup *echo.Group, db *gorm.DB) {
	orders := orderService.GetOrderService(db)
	ledger := ledgerRepo.GetLedgerRepository(db)
	reports := reportService.GetReportService(db)
	g := apiGroup.Group("/tables")

	g.GET("", func(c echo.Context) error {
		if v, ok := cache.GetInstance().Get(cacheKeyTables); ok {
			return c.JSON(http.StatusOK, v)
		}
		rows, err := reports.ListTables()
		if err != nil {
			return api.HandleServiceError(c, "api/tables", "list", err)
		}
		cache.GetInstance().Set(cacheKeyTables, rows, cacheTTL, []string{cacheTagTables})
		return c.JSON(http.StatusOK, rows)
	})

	g.GET("/:id/order", func(c echo.Context) error {
		tableID, ok := parseTableID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
		}
		ord, err := ledger.FindOpenOrder(tableID)
		if err != nil {
			return api.HandleServiceError(c, "api/tables", "order", err)
		}
		if ord == nil {
			return c.JSON(http.StatusOK, echo.Map{"order": nil, "items": []ledgerRepo.OrderItemRow{}})
		}
		items, err := ledger.ListOrderItemRows(ord.ID)
		if err != nil {
			return api.HandleServiceError(c, "api/tables", "order", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"order": ord, "items": items})
	})

	g.POST("/:id/order/items", func(c echo.Context) error {
		tableID, ok := parseTableID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
		}
		var body addItemsRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := api.Validate.Struct(body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no items to add"})
		}
		ord, err := orders.AddItems(c.Request().Context(), tableID, body.Items, body.UserID)
		cache.GetInstance().DeleteByTag(cacheTagTables)
		if err != nil {
			// Items reserved before the failure stay committed; the error
			// names the offending product.
			return api.HandleServiceError(c, "api/tables", "addItems", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"order": ord})
	})

	g.POST("/:id/close", func(c echo.Context) error {
		tableID, ok := parseTableID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
		}
		ord, err := orders.Close(c.Request().Context(), tableID)
		if err != nil {
			return api.HandleServiceError(c, "api/tables", "close", err)
		}
		cache.GetInstance().DeleteByTag(cacheTagTables)
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"order_id": ord.ID,
			"total":    ord.Total,
		})
	})
}
