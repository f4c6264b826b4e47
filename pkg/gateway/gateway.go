// Package gateway validates request shape and forwards everything else to
// the server untouched: same method, path, query, body, and identity header,
// with the upstream status and body passed back verbatim.
package gateway

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"shareit/pkg/circuitbreaker"
	"shareit/pkg/config"
	"shareit/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	userHeader      = "X-Sharer-User-Id"
	requestIDHeader = "X-Request-Id"
)

type Gateway struct {
	serverURL string
	client    *http.Client
	breaker   *circuitbreaker.Breaker
	limiter   *rateLimiter
	logger    zerolog.Logger
}

func New(cfg config.GatewayConfig, logger zerolog.Logger) *Gateway {
	return &Gateway{
		serverURL: cfg.ServerURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		breaker: circuitbreaker.New(
			cfg.Breaker.MaxFailures,
			time.Duration(cfg.Breaker.TimeoutSec)*time.Second,
			time.Duration(cfg.Breaker.WindowSec)*time.Second,
		),
		limiter: newRateLimiter(cfg.RateLimit),
		logger:  logger,
	}
}

// NewRouter builds the gateway engine. The route surface mirrors the server.
func NewRouter(gw *Gateway) *gin.Engine {
	metrics.Register()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(gw.limitRequests())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.POST("/users", gw.createUser)
	r.GET("/users", gw.forwardPlain)
	r.GET("/users/:userId", gw.forwardPlain)
	r.PATCH("/users/:userId", gw.updateUser)
	r.DELETE("/users/:userId", gw.forwardPlain)

	r.POST("/items", gw.createItem)
	r.PATCH("/items/:itemId", gw.forwardAsUser)
	r.GET("/items/:itemId", gw.forwardAsUser)
	r.GET("/items", gw.forwardPagedAsUser)
	r.GET("/items/search", gw.forwardPaged)
	r.POST("/items/:itemId/comment", gw.createComment)

	r.POST("/bookings", gw.createBooking)
	r.PATCH("/bookings/:bookingId", gw.approveBooking)
	r.GET("/bookings/owner", gw.forwardPagedAsUser)
	r.GET("/bookings/:bookingId", gw.forwardAsUser)
	r.GET("/bookings", gw.forwardPagedAsUser)

	r.POST("/requests", gw.createRequest)
	r.GET("/requests", gw.forwardAsUser)
	r.GET("/requests/all", gw.forwardPagedAsUser)
	r.GET("/requests/:requestId", gw.forwardAsUser)

	r.GET("/manage/health", gw.healthCheck)
	r.GET("/metrics", metrics.Handler())

	return r
}

// forward replays the inbound request against the server. body may be nil
// for bodyless methods.
func (gw *Gateway) forward(c *gin.Context, body []byte) {
	url := gw.serverURL + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		url += "?" + q
	}

	var status int
	var respBody []byte
	err := gw.breaker.Do(func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, reader)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if user := c.GetHeader(userHeader); user != "" {
			req.Header.Set(userHeader, user)
		}
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		req.Header.Set(requestIDHeader, id)

		resp, err := gw.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		status = resp.StatusCode
		return nil
	})
	if err != nil {
		gw.logger.Error().Err(err).Str("url", url).Msg("forwarding failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "server unavailable"})
		return
	}
	c.Data(status, "application/json", respBody)
}

func (gw *Gateway) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
