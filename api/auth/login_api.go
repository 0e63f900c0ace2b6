package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"barpos.GO/api"
	authRepo "barpos.GO/model/repository/auth"
)

func init() {
	api.RegisterModule(RegisterLoginRoutes)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterLoginRoutes mounts POST /api/login. Login is a plain credential
// lookup returning the user's role; there is no session or token state.
func RegisterLoginRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := authRepo.NewAuthRepository(db)

	apiGroup.POST("/login", func(c echo.Context) error {
		var body loginRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := api.Validate.Struct(body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing credentials"})
		}
		user, err := repo.FindByCredentials(body.Username, body.Password)
		if err != nil {
			return api.HandleServiceError(c, "api/auth", "login", err)
		}
		if user == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	})
}
