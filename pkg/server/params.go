package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const userHeader = "X-Sharer-User-Id"

// actingUser reads the identity header. A missing or malformed header ends
// the request with 400, matching the header contract on every endpoint that
// acts on behalf of a user.
func actingUser(c *gin.Context) (uint, bool) {
	raw := c.GetHeader(userHeader)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": userHeader + " header is required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": userHeader + " header must be a number"})
		return 0, false
	}
	return uint(id), true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// pageParams reads from/size with the standard defaults. Range checks live
// in the pagination package; only syntax is rejected here.
func pageParams(c *gin.Context) (int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a number"})
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a number"})
		return 0, 0, false
	}
	return from, size, true
}
