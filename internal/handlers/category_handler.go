package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"smarthome-store/internal/cache"
	"smarthome-store/internal/models"
	"smarthome-store/internal/repository"
)

type CategoryHandler struct {
	repo     *repository.CategoryRepository
	products *repository.ProductRepository
	cache    *cache.Cache
}

func NewCategoryHandler(repo *repository.CategoryRepository, products *repository.ProductRepository) *CategoryHandler {
	return &CategoryHandler{
		repo:     repo,
		products: products,
		cache:    cache.Get(),
	}
}

// CreateCategory crea una nueva categoría
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category models.Category

	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.Create(c.Request.Context(), &category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	h.cache.Delete("categories:list")

	c.JSON(http.StatusCreated, category)
}

// ListCategories lista las categorías de la vitrina (con caché)
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	if cached, found := h.cache.GetValue("categories:list"); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	categories, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}

	response := gin.H{"data": categories}
	h.cache.Set("categories:list", response, 5*time.Minute)
	c.JSON(http.StatusOK, response)
}

// PriceList arma la lista de precios de una categoría (con caché)
func (h *CategoryHandler) PriceList(c *gin.Context) {
	slug := c.Param("slug")
	cacheKey := fmt.Sprintf("pricelist:%s", slug)

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	if _, err := h.repo.FindBySlug(c.Request.Context(), slug); err != nil {
		if err.Error() == "category not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get category"})
		return
	}

	products, err := h.products.FindByCategory(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build price list"})
		return
	}

	response := gin.H{
		"category": slug,
		"entries":  repository.PriceList(products),
	}
	h.cache.Set(cacheKey, response, 5*time.Minute)
	c.JSON(http.StatusOK, response)
}

// UpdateCategory actualiza parcialmente una categoría
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("id")
	var update models.CategoryUpdate

	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updateMap := bson.M{}
	if update.Name != nil {
		updateMap["name"] = *update.Name
	}
	if update.Description != nil {
		updateMap["description"] = *update.Description
	}
	if update.DisplayOrder != nil {
		updateMap["display_order"] = *update.DisplayOrder
	}
	if update.IsActive != nil {
		updateMap["is_active"] = *update.IsActive
	}

	if len(updateMap) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
		return
	}

	if err := h.repo.Update(c.Request.Context(), categoryID, updateMap); err != nil {
		if err.Error() == "category not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		return
	}

	h.cache.Delete("categories:list")
	h.cache.DeleteByPrefix("pricelist:")

	c.JSON(http.StatusOK, gin.H{"message": "category updated"})
}

// DeleteCategory elimina una categoría
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), categoryID); err != nil {
		if err.Error() == "category not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		return
	}

	h.cache.Delete("categories:list")
	h.cache.DeleteByPrefix("pricelist:")

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
