package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"barpos.GO/api"
	ledgerRepo "barpos.GO/model/repository/ledger"
	orderService "barpos.GO/service/order"
	reportService "barpos.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

type moveRequest struct {
	ProductID uint  `json:"product_id" validate:"required"`
	Delta     int   `json:"delta" validate:"required"`
	UserID    *uint `json:"user_id"`
}

// RegisterInventoryRoutes mounts the stock surface under /api/inventory:
// current levels, manual moves and the movement audit trail.
func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	engine := orderService.GetReservationEngine(db)
	ledger := ledgerRepo.GetLedgerRepository(db)
	reports := reportService.GetReportService(db)
	g := apiGroup.Group("/inventory")

	g.GET("", func(c echo.Context) error {
		rows, err := reports.ListStock()
		if err != nil {
			return api.HandleServiceError(c, "api/inventory", "list", err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	// Manual restock or correction. Clamped at zero; every applied change
	// yields exactly one movement row.
	g.POST("/move", func(c echo.Context) error {
		var body moveRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := api.Validate.Struct(body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and delta are required"})
		}
		newStock, err := engine.Adjust(c.Request().Context(), body.ProductID, body.Delta, body.UserID)
		if err != nil {
			return api.HandleServiceError(c, "api/inventory", "move", err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"product_id": body.ProductID,
			"stock":      newStock,
		})
	})

	g.GET("/movements", func(c echo.Context) error {
		rows, err := ledger.ListMovements()
		if err != nil {
			return api.HandleServiceError(c, "api/inventory", "movements", err)
		}
		return c.JSON(http.StatusOK, rows)
	})
}
