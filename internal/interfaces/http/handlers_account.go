package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// listAddresses handles GET /user/address.
func (s *Server) listAddresses(c *gin.Context) {
	userID, _ := currentUserID(c)

	var addresses []AddressRecord
	if err := s.db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list addresses"})
		return
	}
	c.JSON(http.StatusOK, addresses)
}

// createAddress handles POST /user/address.
func (s *Server) createAddress(c *gin.Context) {
	userID, _ := currentUserID(c)

	var address AddressRecord
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid address payload"})
		return
	}
	address.ID = 0
	address.UserID = userID

	if err := s.db.Create(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save address"})
		return
	}
	c.JSON(http.StatusCreated, address)
}

// updateAddress handles PUT /user/address/:id.
func (s *Server) updateAddress(c *gin.Context) {
	userID, _ := currentUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid address id"})
		return
	}

	var existing AddressRecord
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
		return
	}

	var update AddressRecord
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid address payload"})
		return
	}
	update.ID = existing.ID
	update.UserID = userID

	if err := s.db.Save(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update address"})
		return
	}
	c.JSON(http.StatusOK, update)
}

// deleteAddress handles DELETE /user/address/:id.
func (s *Server) deleteAddress(c *gin.Context) {
	userID, _ := currentUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid address id"})
		return
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&AddressRecord{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// listCards handles GET /user/card.
func (s *Server) listCards(c *gin.Context) {
	userID, _ := currentUserID(c)

	var cards []CardRecord
	if err := s.db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// createCard handles POST /user/card.
func (s *Server) createCard(c *gin.Context) {
	userID, _ := currentUserID(c)

	var card CardRecord
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid card payload"})
		return
	}
	if len(card.CardNo) < 16 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Card number must be at least 16 digits"})
		return
	}
	card.ID = 0
	card.UserID = userID

	if err := s.db.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save card"})
		return
	}
	c.JSON(http.StatusCreated, card)
}

// deleteCard handles DELETE /user/card/:id.
func (s *Server) deleteCard(c *gin.Context) {
	userID, _ := currentUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid card id"})
		return
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&CardRecord{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete card"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}
