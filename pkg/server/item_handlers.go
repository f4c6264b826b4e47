package server

import (
	"net/http"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) createItem(c *gin.Context) {
	ownerID, ok := actingUser(c)
	if !ok {
		return
	}
	var in dto.CreateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	item, err := h.items.Create(&in, ownerID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handlers) updateItem(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var in dto.UpdateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	item, err := h.items.Update(itemID, userID, &in)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) getItemByID(c *gin.Context) {
	viewerID, ok := actingUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	item, err := h.items.GetByID(itemID, viewerID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) getItemsByOwner(c *gin.Context) {
	ownerID, ok := actingUser(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	items, err := h.items.ListByOwner(from, size, ownerID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handlers) searchItems(c *gin.Context) {
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	items, err := h.items.Search(from, size, c.DefaultQuery("text", ""))
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handlers) createComment(c *gin.Context) {
	authorID, ok := actingUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var in dto.CreateCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	comment, err := h.comments.Create(&in, itemID, authorID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
