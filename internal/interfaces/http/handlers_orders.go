package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// createOrderRequest binds the order submission. Price arrives as a decimal
// string; clients serialize money with quotes.
type createOrderRequest struct {
	AddressID       int             `json:"address_id" binding:"required"`
	OrderDate       string          `json:"order_date" binding:"required"`
	CardNo          string          `json:"card_no" binding:"required"`
	CardName        string          `json:"card_name"`
	CardExpireMonth int             `json:"card_expire_month"`
	CardExpireYear  int             `json:"card_expire_year"`
	CardCCV         string          `json:"card_ccv"`
	Price           decimal.Decimal `json:"price"`
	Products        []struct {
		ProductID int    `json:"product_id" binding:"required"`
		Count     int    `json:"count" binding:"required"`
		Detail    string `json:"detail"`
	} `json:"products" binding:"required,min=1"`
}

// listOrders handles GET /order.
func (s *Server) listOrders(c *gin.Context) {
	userID, _ := currentUserID(c)

	var orders []OrderRecord
	if err := s.db.Preload("Products").Where("user_id = ?", userID).Order("id desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// createOrder handles POST /order. No payment processing happens here: the
// order is validated against the address book, numbered and stored.
func (s *Server) createOrder(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order payload"})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order price must be positive"})
		return
	}

	var address AddressRecord
	if err := s.db.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown delivery address"})
		return
	}

	order := OrderRecord{
		UserID:      userID,
		OrderNumber: fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8])),
		AddressID:   req.AddressID,
		OrderDate:   req.OrderDate,
		CardNo:      maskCardNo(req.CardNo),
		CardName:    req.CardName,
		Price:       req.Price.InexactFloat64(),
	}
	for _, p := range req.Products {
		order.Products = append(order.Products, OrderItemRecord{
			ProductID: p.ProductID,
			Count:     p.Count,
			Detail:    p.Detail,
		})
	}

	if err := s.db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// maskCardNo keeps only the last four digits of a stored card number.
func maskCardNo(cardNo string) string {
	if len(cardNo) <= 4 {
		return cardNo
	}
	return strings.Repeat("*", len(cardNo)-4) + cardNo[len(cardNo)-4:]
}
