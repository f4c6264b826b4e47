// Package server wires the HTTP surface of the business service: gin routes,
// request parsing, and the uniform error rendering.
package server

import (
	"net/http"

	"shareit/pkg/metrics"
	"shareit/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handlers struct {
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	comments *service.CommentService
}

func NewHandlers(
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	requests *service.RequestService,
	comments *service.CommentService,
) *Handlers {
	return &Handlers{
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		comments: comments,
	}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handlers, logger zerolog.Logger) *gin.Engine {
	metrics.Register()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	r.Use(metrics.Middleware())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.POST("/users", h.createUser)
	r.GET("/users", h.getAllUsers)
	r.GET("/users/:userId", h.getUserByID)
	r.PATCH("/users/:userId", h.updateUser)
	r.DELETE("/users/:userId", h.deleteUser)

	r.POST("/items", h.createItem)
	r.PATCH("/items/:itemId", h.updateItem)
	r.GET("/items/:itemId", h.getItemByID)
	r.GET("/items", h.getItemsByOwner)
	r.GET("/items/search", h.searchItems)
	r.POST("/items/:itemId/comment", h.createComment)

	r.POST("/bookings", h.createBooking)
	r.PATCH("/bookings/:bookingId", h.approveBooking)
	r.GET("/bookings/owner", h.getBookingsOfOwner)
	r.GET("/bookings/:bookingId", h.getBookingByID)
	r.GET("/bookings", h.getBookingsOfBooker)

	r.POST("/requests", h.createRequest)
	r.GET("/requests", h.getOwnRequests)
	r.GET("/requests/all", h.getAllRequests)
	r.GET("/requests/:requestId", h.getRequestByID)

	r.GET("/manage/health", h.healthCheck)
	r.GET("/metrics", metrics.Handler())

	return r
}

func (h *Handlers) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
