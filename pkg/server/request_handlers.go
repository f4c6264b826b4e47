package server

import (
	"net/http"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) createRequest(c *gin.Context) {
	requesterID, ok := actingUser(c)
	if !ok {
		return
	}
	var in dto.CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	request, err := h.requests.Create(&in, requesterID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handlers) getOwnRequests(c *gin.Context) {
	requesterID, ok := actingUser(c)
	if !ok {
		return
	}
	requests, err := h.requests.ListByRequester(requesterID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handlers) getAllRequests(c *gin.Context) {
	requesterID, ok := actingUser(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	requests, err := h.requests.ListOfOthers(from, size, requesterID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handlers) getRequestByID(c *gin.Context) {
	viewerID, ok := actingUser(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}
	request, err := h.requests.GetByID(requestID, viewerID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
