// Package devserver is a local stand-in for the production product API so the
// client can be run and tested without it. Same routes, same JSON, same
// error bodies.
package devserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"productmanager/internal/devserver/handlers"
	"productmanager/internal/devserver/jwtmiddleware"
	"productmanager/internal/hash"
	"productmanager/internal/models"
)

type Deps struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	authHandler := &handlers.AuthHandler{DB: d.DB, JWTSecret: d.JWTSecret}
	productHandler := &handlers.ProductHandler{DB: d.DB}

	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	products := api.Group("/products", jwtmiddleware.RequireAuth(d.JWTSecret))
	products.GET("", productHandler.GetProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("", productHandler.CreateProduct, jwtmiddleware.AdminOnly)
	products.PUT("/:id", productHandler.UpdateProduct, jwtmiddleware.AdminOnly)
	products.DELETE("/:id", productHandler.DeleteProduct, jwtmiddleware.AdminOnly)

	return e
}

// SeedAdmin creates an admin account when none with that email exists yet, so
// a fresh devserver is usable right away.
func SeedAdmin(db *gorm.DB, email, password string, log *slog.Logger) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{Email: email, PasswordHash: passwordHash, Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("seeded admin account", "email", email)
	return nil
}
