package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productmanager/internal/logging"
	"productmanager/internal/models"
)

type ProductHandler struct {
	DB *gorm.DB
}

type messageResponse struct {
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, message string) error {
	return c.JSON(code, messageResponse{Message: message})
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.list")

	products := []models.Product{}
	if err := h.DB.Order("name ASC").Find(&products).Error; err != nil {
		l.Error("list products failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "Product not found with id: "+id)
		}
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.create")

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	if product.Price < 0 {
		return errorResponse(c, http.StatusBadRequest, "Invalid price")
	}
	if product.Stock < 0 {
		return errorResponse(c, http.StatusBadRequest, "Invalid stock")
	}

	product.ID = uuid.NewString()
	if err := h.DB.Create(&product).Error; err != nil {
		l.Error("create product failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Failed to create product")
	}

	l.Info("product created", "id", product.ID, "name", product.Name)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.update")
	id := c.Param("id")

	var req models.Product
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Price < 0 {
		return errorResponse(c, http.StatusBadRequest, "Invalid price")
	}
	if req.Stock < 0 {
		return errorResponse(c, http.StatusBadRequest, "Invalid stock")
	}

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "Product not found with id: "+id)
		}
		return errorResponse(c, http.StatusInternalServerError, "Failed to update product")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.Category = req.Category

	if err := h.DB.Save(&product).Error; err != nil {
		l.Error("update product failed", "id", id, "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Failed to update product")
	}

	l.Info("product updated", "id", product.ID, "name", product.Name)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.delete")
	id := c.Param("id")

	res := h.DB.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		l.Error("delete product failed", "id", id, "error", res.Error)
		return errorResponse(c, http.StatusInternalServerError, "Failed to delete product")
	}
	if res.RowsAffected == 0 {
		return errorResponse(c, http.StatusNotFound, "Product not found with id: "+id)
	}

	l.Info("product deleted", "id", id)
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
