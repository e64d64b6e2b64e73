package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// productResponse reshapes a record into the wire form the client consumes.
// Images go out in the object form; the client also accepts bare strings.
func productResponse(p ProductRecord) gin.H {
	images := []gin.H{}
	if p.ImageURL != "" {
		images = append(images, gin.H{"url": p.ImageURL, "index": 0})
	}
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"images":      images,
		"stock":       p.Stock,
		"rating":      p.Rating,
		"sell_count":  p.SellCount,
		"category_id": p.CategoryID,
	}
}

// listProducts handles GET /products with optional category/filter/sort/
// categoryId/limit/offset query parameters.
func (s *Server) listProducts(c *gin.Context) {
	query := s.db.Model(&ProductRecord{})

	if categoryID, err := strconv.Atoi(c.Query("categoryId")); err == nil && categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if filter := c.Query("filter"); filter != "" {
		query = query.Where("name LIKE ?", "%"+filter+"%")
	}
	switch c.Query("sort") {
	case "price:asc":
		query = query.Order("price asc")
	case "price:desc":
		query = query.Order("price desc")
	case "rating:asc":
		query = query.Order("rating asc")
	case "rating:desc":
		query = query.Order("rating desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count products"})
		return
	}

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		query = query.Limit(limit)
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		query = query.Offset(offset)
	}

	var records []ProductRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list products"})
		return
	}

	products := make([]gin.H, 0, len(records))
	for _, record := range records {
		products = append(products, productResponse(record))
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
	})
}

// getProduct handles GET /products/:id.
func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	var record ProductRecord
	if err := s.db.First(&record, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, productResponse(record))
}

// listCategories handles GET /categories.
func (s *Server) listCategories(c *gin.Context) {
	var records []CategoryRecord
	if err := s.db.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, records)
}
