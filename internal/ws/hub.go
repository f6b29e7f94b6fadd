package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/pkg/jwt"
)

// Hub tracks one realtime connection per customer. A newer connection for
// the same customer replaces the older one. Sends are best effort and at
// most once; there is no retry or buffering for offline customers.
type Hub struct {
	customers map[uuid.UUID]*websocket.Conn
	mu        sync.RWMutex
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{
		customers: make(map[uuid.UUID]*websocket.Conn),
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotifyCustomer sends a booking update to the customer's connection if one
// is open. A failed write drops the connection; the event is not redelivered.
func (h *Hub) NotifyCustomer(customerID uuid.UUID, event models.BookingUpdateEvent) {
	h.mu.RLock()
	conn, ok := h.customers[customerID]
	h.mu.RUnlock()

	if !ok {
		return
	}

	if err := conn.WriteJSON(event); err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"error":       err.Error(),
		}).Warn("websocket write failed, dropping connection")
		h.remove(customerID, conn)
		conn.Close()
	}
}

// HandleCustomer upgrades GET /ws/customers/:id. The token query parameter
// must carry a customer token whose subject matches the path id.
func (h *Hub) HandleCustomer(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
			return
		}

		claims, err := jwtService.ValidateToken(c.Query("token"))
		if err != nil || claims.Role != models.RoleCustomer || claims.AccountID != customerID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade failed")
			return
		}

		h.add(customerID, conn)
		logrus.WithField("customer_id", customerID).Info("customer websocket connected")

		go h.readLoop(customerID, conn)
	}
}

// readLoop drains inbound frames so close and ping control messages are
// processed. Clients are not expected to send data frames.
func (h *Hub) readLoop(customerID uuid.UUID, conn *websocket.Conn) {
	defer func() {
		h.remove(customerID, conn)
		conn.Close()
		logrus.WithField("customer_id", customerID).Info("customer websocket disconnected")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Debug("websocket read ended")
			}
			return
		}
	}
}

func (h *Hub) add(customerID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	if old, ok := h.customers[customerID]; ok {
		old.Close()
	}
	h.customers[customerID] = conn
	h.mu.Unlock()
}

// remove deletes the mapping only if it still points at conn, so a newer
// connection registered for the same customer is left alone.
func (h *Hub) remove(customerID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	if current, ok := h.customers[customerID]; ok && current == conn {
		delete(h.customers, customerID)
	}
	h.mu.Unlock()
}
