package server

import (
	"net/http"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) createUser(c *gin.Context) {
	var in dto.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := h.users.Create(&in)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handlers) getUserByID(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	user, err := h.users.GetByID(userID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) getAllUsers(c *gin.Context) {
	users, err := h.users.GetAll()
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handlers) updateUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var in dto.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := h.users.Update(userID, &in)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) deleteUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := h.users.Delete(userID); err != nil {
		httperr.Render(c, err)
		return
	}
	c.Status(http.StatusOK)
}
