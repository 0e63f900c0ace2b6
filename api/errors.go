package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"barpos.GO/config"
	catalogRepo "barpos.GO/model/repository/catalog"
	ledgerRepo "barpos.GO/model/repository/ledger"
	orderService "barpos.GO/service/order"
)

// Validate checks request payload structs against their validate tags.
var Validate = validator.New()

// HandleServiceError maps domain errors onto HTTP responses. Validation and
// business-rule failures carry a structured description; anything else is a
// generic 500 so storage detail never leaks to clients.
func HandleServiceError(c echo.Context, module, funcName string, err error) error {
	var insufficient *orderService.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      insufficient.Error(),
			"product_id": insufficient.ProductID,
			"requested":  insufficient.Requested,
			"available":  insufficient.Available,
		})
	}
	var invalid *orderService.ValidationError
	if errors.As(err, &invalid) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Error()})
	}
	if errors.Is(err, orderService.ErrNoOpenOrder) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no open order for this table"})
	}
	if errors.Is(err, ledgerRepo.ErrOrderClosed) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "order already closed"})
	}
	if errors.Is(err, catalogRepo.ErrProductNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	config.LogError(config.GetLogger(), module, funcName, "request failed", nil, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
