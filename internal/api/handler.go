package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bakery-service/config"
	"bakery-service/internal/models"
	"bakery-service/internal/service"
	"bakery-service/internal/store"
	"bakery-service/internal/transport"
	"bakery-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orderService   *service.OrderService
	catalogService *service.CatalogService
	contactService *service.ContactService
	adminCfg       config.AdminConfig
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orderService *service.OrderService,
	catalogService *service.CatalogService,
	contactService *service.ContactService,
	adminCfg config.AdminConfig,
) *Handler {
	return &Handler{
		orderService:   orderService,
		catalogService: catalogService,
		contactService: contactService,
		adminCfg:       adminCfg,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/", h.root)
	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/items", h.listItems)
		apiGroup.GET("/items/:id", h.getItem)
		apiGroup.GET("/info", h.getInfo)
		apiGroup.GET("/categories", h.getCategories)

		apiGroup.POST("/orders", h.createOrder)
		apiGroup.GET("/orders", h.listOrders)
		apiGroup.GET("/orders/stats", h.orderStats)
		apiGroup.GET("/orders/:id", h.getOrder)
		apiGroup.PATCH("/orders/:id/status", h.updateOrderStatus)

		apiGroup.POST("/contact", h.submitContact)

		apiGroup.POST("/admin/login", h.adminLogin)
	}
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "SaeJaeDang API Server",
		"version": "1.0.0",
		"status":  "running",
	})
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listItems returns catalog entries, optionally filtered by category.
func (h *Handler) listItems(c *gin.Context) {
	category := c.Query("category")
	items := h.catalogService.ListProducts(c.Request.Context(), category)
	c.JSON(http.StatusOK, items)
}

// getItem returns one catalog entry by id.
func (h *Handler) getItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) getInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.SiteInfo())
}

func (h *Handler) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories())
}

// createOrder handles checkout submissions.
func (h *Handler) createOrder(c *gin.Context) {
	var sub transport.OrderSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, verrs, err := h.orderService.CreateOrder(c.Request.Context(), &sub)
	if verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  verrs,
		})
		return
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrStoreUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   "Failed to create order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
	})
}

// listOrders returns orders filtered by status, free-text query, and sort.
func (h *Handler) listOrders(c *gin.Context) {
	filter := store.OrderFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		SortBy: c.DefaultQuery("sort", store.SortByCreatedAt),
		Asc:    c.Query("dir") == "asc",
	}
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, s)
			}
		}
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// orderStats returns per-status counts for the admin dashboard.
func (h *Handler) orderStats(c *gin.Context) {
	counts, err := h.orderService.OrderStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order stats"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// getOrder returns one order by database id or order number.
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// updateOrderStatus applies a guarded lifecycle transition.
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// submitContact handles contact-form submissions.
func (h *Handler) submitContact(c *gin.Context) {
	var sub transport.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if verrs := h.contactService.Submit(c.Request.Context(), &sub); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  verrs,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for your message",
	})
}

// adminLogin is a plain credential compare against configuration. Session
// hardening is out of scope; the returned token is opaque and unverified.
func (h *Handler) adminLogin(c *gin.Context) {
	var req transport.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if h.adminCfg.Password == "" ||
		req.Username != h.adminCfg.Username || req.Password != h.adminCfg.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   uuid.New().String(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
