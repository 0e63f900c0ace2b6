package reports

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"barpos.GO/api"
	reportService "barpos.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

// RegisterReportRoutes mounts the read-only reporting surface under
// /api/reports. Everything here is pure aggregation over the ledger.
func RegisterReportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	reports := reportService.GetReportService(db)
	g := apiGroup.Group("/reports")

	g.GET("/tables", func(c echo.Context) error {
		rows, err := reports.SalesByTable()
		if err != nil {
			return api.HandleServiceError(c, "api/reports", "tables", err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	g.GET("/products", func(c echo.Context) error {
		rows, err := reports.SalesByProduct()
		if err != nil {
			return api.HandleServiceError(c, "api/reports", "products", err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	g.GET("/users", func(c echo.Context) error {
		rows, err := reports.SalesByUser()
		if err != nil {
			return api.HandleServiceError(c, "api/reports", "users", err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	g.GET("/detail", func(c echo.Context) error {
		rows, err := reports.ClosedOrderDetail()
		if err != nil {
			return api.HandleServiceError(c, "api/reports", "detail", err)
		}
		return c.JSON(http.StatusOK, rows)
	})
}
