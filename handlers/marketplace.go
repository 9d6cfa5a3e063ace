package handlers

import (
	"net/http"

	"coparent/db"
	"coparent/models"

	"github.com/gin-gonic/gin"
)

// MarketplaceList is public; supports category and featured filters
func MarketplaceList(c *gin.Context) {
	query := db.Instance.Model(&models.MarketplaceItem{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	items := []models.MarketplaceItem{}
	if err := query.Order("featured DESC, created_at DESC").Find(&items).Error; err != nil {
		// Keep the public page alive on storage errors
		c.JSON(http.StatusOK, []models.MarketplaceItem{})
		return
	}
	c.JSON(http.StatusOK, items)
}
