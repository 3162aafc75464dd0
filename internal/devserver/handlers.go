// internal/devserver/handlers.go
package devserver

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/domain/cart"
	"github.com/your-org/agrimart-client/internal/domain/catalog"
	"github.com/your-org/agrimart-client/internal/domain/session"
)

// Handlers implements the backend contract over in-memory state
type Handlers struct {
	log *logrus.Logger

	mu            sync.Mutex
	carts         map[string][]cart.Item // user id -> items
	orderStatuses map[string]int         // order id -> status id
	orderNotes    map[string]string
	products      []catalog.Product
	categories    []string
}

// NewHandlers creates handlers with seeded demo catalog data
func NewHandlers(log *logrus.Logger) *Handlers {
	return &Handlers{
		log:           log,
		carts:         make(map[string][]cart.Item),
		orderStatuses: make(map[string]int),
		orderNotes:    make(map[string]string),
		products:      seedProducts(),
		categories:    seedCategories(),
	}
}

// Register mounts all routes on the given group
func (h *Handlers) Register(rg *gin.RouterGroup) {
	rg.GET("/cart/:userId", h.GetCart)
	rg.POST("/cart/smart", h.SmartCartOperation)
	rg.DELETE("/cart/items/:productId", h.DeleteCartItem)
	rg.PUT("/orders/:id/status", h.UpdateOrderStatus)
	rg.GET("/orders/:id/status", h.GetOrderStatus)
	rg.POST("/translate", h.Translate)
	rg.GET("/products", h.GetProducts)
	rg.GET("/categories", h.GetCategories)
}

// GetCart handles GET /cart/:userId
func (h *Handlers) GetCart(c *gin.Context) {
	userID := c.Param("userId")

	h.mu.Lock()
	items := append([]cart.Item{}, h.carts[userID]...)
	h.mu.Unlock()

	respond(c, gin.H{"items": items})
}

type smartCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	IsNew     bool   `json:"is_new"`
}

// SmartCartOperation handles POST /cart/smart with upsert semantics:
// quantity zero removes the line, is_new appends a fresh one.
func (h *Handlers) SmartCartOperation(c *gin.Context) {
	var req smartCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.Quantity < 0 {
		fail(c, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	userID := h.userFromRequest(c)

	h.mu.Lock()
	defer h.mu.Unlock()

	items := h.carts[userID]
	index := -1
	for i := range items {
		if items[i].ID == req.ProductID {
			index = i
			break
		}
	}

	switch {
	case req.Quantity == 0:
		if index >= 0 {
			items = append(items[:index], items[index+1:]...)
		}
	case index >= 0:
		items[index].Quantity = req.Quantity
	default:
		items = append(items, cart.Item{ID: req.ProductID, Quantity: req.Quantity})
	}

	h.carts[userID] = items
	respond(c, gin.H{"items": items})
}

// DeleteCartItem handles DELETE /cart/items/:productId
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	productID := c.Param("productId")
	userID := h.userFromRequest(c)

	h.mu.Lock()
	defer h.mu.Unlock()

	items := h.carts[userID]
	for i := range items {
		if items[i].ID == productID {
			h.carts[userID] = append(items[:i], items[i+1:]...)
			break
		}
	}

	respond(c, gin.H{"deleted": productID})
}

type updateStatusRequest struct {
	StatusID int    `json:"status_id"`
	Notes    string `json:"notes"`
}

// UpdateOrderStatus handles PUT /orders/:id/status
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	h.mu.Lock()
	h.orderStatuses[orderID] = req.StatusID
	h.orderNotes[orderID] = req.Notes
	h.mu.Unlock()

	respond(c, gin.H{"order_id": orderID, "status_id": req.StatusID})
}

// GetOrderStatus handles GET /orders/:id/status
func (h *Handlers) GetOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	h.mu.Lock()
	statusID, ok := h.orderStatuses[orderID]
	notes := h.orderNotes[orderID]
	h.mu.Unlock()

	if !ok {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	respond(c, gin.H{"order_id": orderID, "status_id": statusID, "notes": notes})
}

type translateRequest struct {
	Text       string `json:"text" binding:"required"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Translate handles POST /translate. The dev backend does not run a
// real translation model; it tags the text with the target language so
// callers can see the round trip worked.
func (h *Handlers) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	respond(c, gin.H{
		"translated_text": "[" + req.TargetLang + "] " + req.Text,
	})
}

// GetProducts handles GET /products
func (h *Handlers) GetProducts(c *gin.Context) {
	category := c.Query("category")

	h.mu.Lock()
	defer h.mu.Unlock()

	if category == "" {
		respond(c, h.products)
		return
	}

	filtered := make([]catalog.Product, 0, len(h.products))
	for _, p := range h.products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	respond(c, filtered)
}

// GetCategories handles GET /categories
func (h *Handlers) GetCategories(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respond(c, h.categories)
}

// userFromRequest reads the user id out of the bearer token's claims.
// The dev backend does not verify signatures; unauthenticated requests
// land in a shared demo cart.
func (h *Handlers) userFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "demo-user"
	}

	claims := &session.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimPrefix(header, "Bearer "), claims); err != nil {
		return "demo-user"
	}
	if claims.UserID == "" {
		return "demo-user"
	}
	return claims.UserID
}

func respond(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}

func seedProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "7f9c3b1a-2d4e-4f60-9a8b-1c2d3e4f5a60", Name: "Tomato Seeds (500g)", Price: 120, Category: "Seeds", Unit: "packet", InStock: true},
		{ID: "8a1b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d", Name: "Organic Compost", Price: 350, Category: "Fertilizers", Unit: "25kg bag", InStock: true},
		{ID: "9b2c3d4e-5f6a-4b7c-9d0e-1f2a3b4c5d6e", Name: "Neem Oil Spray", Price: 240, Category: "Pesticides", Unit: "litre", InStock: true},
		{ID: "0c3d4e5f-6a7b-4c8d-0e1f-2a3b4c5d6e7f", Name: "Rice (Sona Masoori)", Price: 64, Category: "Groceries", Unit: "kg", InStock: true},
		{ID: "1d4e5f6a-7b8c-4d9e-1f2a-3b4c5d6e7f80", Name: "Toor Dal", Price: 145, Category: "Groceries", Unit: "kg", InStock: true},
		{ID: "2e5f6a7b-8c9d-4eaf-2a3b-4c5d6e7f8091", Name: "Drip Irrigation Kit", Price: 1850, Category: "Equipment", Unit: "kit", InStock: false},
	}
}

func seedCategories() []string {
	return []string{"Seeds", "Fertilizers", "Pesticides", "Groceries", "Equipment"}
}
