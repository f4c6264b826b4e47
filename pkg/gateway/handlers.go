package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"shareit/pkg/dto"
	"shareit/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// The gateway rejects malformed requests before the server sees them. The
// original bytes are forwarded, not a re-serialization.

func (gw *Gateway) requireUser(c *gin.Context) bool {
	raw := c.GetHeader(userHeader)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": userHeader + " header is required"})
		return false
	}
	if _, err := strconv.ParseUint(raw, 10, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": userHeader + " header must be a number"})
		return false
	}
	return true
}

// readBody drains the request body so it can be both validated and
// forwarded.
func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}
	return body, true
}

func decode(c *gin.Context, body []byte, target interface{}) bool {
	if err := json.Unmarshal(body, target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (gw *Gateway) checkPage(c *gin.Context) bool {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a number"})
		return false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a number"})
		return false
	}
	if _, err := pagination.FromSize(from, size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not positive value in pagination"})
		return false
	}
	return true
}

func (gw *Gateway) forwardPlain(c *gin.Context) {
	gw.forward(c, nil)
}

func (gw *Gateway) forwardAsUser(c *gin.Context) {
	if !gw.requireUser(c) {
		return
	}
	gw.forward(c, nil)
}

func (gw *Gateway) forwardPaged(c *gin.Context) {
	if !gw.checkPage(c) {
		return
	}
	gw.forward(c, nil)
}

func (gw *Gateway) forwardPagedAsUser(c *gin.Context) {
	if !gw.requireUser(c) || !gw.checkPage(c) {
		return
	}
	gw.forward(c, nil)
}

func (gw *Gateway) createUser(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	var in dto.CreateUserInput
	if !decode(c, body, &in) {
		return
	}
	if fields := in.Validate(); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	gw.forward(c, body)
}

func (gw *Gateway) updateUser(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	var in dto.UpdateUserInput
	if !decode(c, body, &in) {
		return
	}
	if fields := in.Validate(); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	gw.forward(c, body)
}

func (gw *Gateway) createItem(c *gin.Context) {
	if !gw.requireUser(c) {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	var in dto.CreateItemInput
	if !decode(c, body, &in) {
		return
	}
	if fields := in.Validate(); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	gw.forward(c, body)
}

func (gw *Gateway) createComment(c *gin.Context) {
	if !gw.requireUser(c) {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	var in dto.CreateCommentInput
	if !decode(c, body, &in) {
		return
	}
	if fields := in.Validate(); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	gw.forward(c, body)
}

func (gw *Gateway) createBooking(c *gin.Context) {
	if !gw.requireUser(c) {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	var in dto.CreateBookingInput
	if !decode(c, body, &in) {
		return
	}
	if fields := in.Validate(time.Now()); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	gw.forward(c, body)
}

func (gw *Gateway) approveBooking(c *gin.Context) {
	if !gw.requireUser(c) {
		return
	}
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}
	gw.forward(c, nil)
}

func (gw *Gateway) createRequest(c *gin.Context) {
	if !gw.requireUser(c) {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	var in dto.CreateRequestInput
	if !decode(c, body, &in) {
		return
	}
	if fields := in.Validate(); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	gw.forward(c, body)
}
