package product

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"barpos.GO/api"
	"barpos.GO/core/cache"
	catalogRepo "barpos.GO/model/repository/catalog"
	ledgerRepo "barpos.GO/model/repository/ledger"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

const (
	cacheKeyProducts = "products:list"
	cacheTagProducts = "products"
	cacheTTLSeconds  = 30
)

type productRequest struct {
	Name  string           `json:"name" validate:"required"`
	Price *decimal.Decimal `json:"price" validate:"required"`
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// RegisterProductRoutes mounts the catalog CRUD under /api/products.
func RegisterProductRoutes(apiGroup *echo.Group, db *gorm.DB) {
	catalog := catalogRepo.GetCatalogRepository(db)
	ledger := ledgerRepo.GetLedgerRepository(db)
	g := apiGroup.Group("/products")

	g.GET("", func(c echo.Context) error {
		if v, ok := cache.GetInstance().Get(cacheKeyProducts); ok {
			return c.JSON(http.StatusOK, v)
		}
		products, err := catalog.FindAll()
		if err != nil {
			return api.HandleServiceError(c, "api/product", "list", err)
		}
		cache.GetInstance().Set(cacheKeyProducts, products, cacheTTLSeconds, []string{cacheTagProducts})
		return c.JSON(http.StatusOK, products)
	})

	g.POST("", func(c echo.Context) error {
		var body productRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := api.Validate.Struct(body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and price are required"})
		}
		if body.Price.IsNegative() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
		}
		p, err := catalog.Create(body.Name, *body.Price)
		if err != nil {
			return api.HandleServiceError(c, "api/product", "create", err)
		}
		cache.GetInstance().DeleteByTag(cacheTagProducts)
		return c.JSON(http.StatusCreated, p)
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		var body productRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := api.Validate.Struct(body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and price are required"})
		}
		if body.Price.IsNegative() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
		}
		p, err := catalog.Update(id, body.Name, *body.Price)
		if err != nil {
			return api.HandleServiceError(c, "api/product", "update", err)
		}
		cache.GetInstance().DeleteByTag(cacheTagProducts)
		return c.JSON(http.StatusOK, p)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		// Products that appear in sales or movements stay for the history.
		used, err := ledger.HasProductHistory(id)
		if err != nil {
			return api.HandleServiceError(c, "api/product", "delete", err)
		}
		if used {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "product has sale or movement history and cannot be deleted",
			})
		}
		if err := catalog.Delete(id); err != nil {
			return api.HandleServiceError(c, "api/product", "delete", err)
		}
		cache.GetInstance().DeleteByTag(cacheTagProducts)
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
