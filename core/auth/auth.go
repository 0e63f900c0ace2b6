package auth

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"barpos.GO/config"
	authRepo "barpos.GO/model/repository/auth"
)

// Middleware returns the auth middleware based on AUTH_TYPE env var.
// The default validates basic-auth credentials against the users table, so
// POS operators use the same accounts as the login endpoint.
func Middleware(db *gorm.DB) echo.MiddlewareFunc {
	skipper := buildSkipper()
	authType := os.Getenv("AUTH_TYPE")
	switch authType {
	case "key":
		return keyAuth(skipper)
	case "env":
		return envBasicAuth(skipper)
	default:
		return userBasicAuth(authRepo.NewAuthRepository(db), skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

// userBasicAuth resolves credentials from the users table and stores the
// operator's id and role on the request context for audit attribution.
func userBasicAuth(repo *authRepo.AuthRepository, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			user, err := repo.FindByCredentials(username, password)
			if err != nil || user == nil {
				return false, nil
			}
			c.Set("user_id", user.ID)
			c.Set("user_role", user.Role)
			return true, nil
		},
		Skipper: skipper,
	})
}

func envBasicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return key == apiKey, nil
		},
		Skipper: skipper,
	})
}
