package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/chat"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/store"
)

const timestampLayout = "2006-01-02 15:04:05"

type Handler struct {
	store        *store.Pg
	orchestrator *chat.Orchestrator
}

func NewHandler(db *store.Pg, orchestrator *chat.Orchestrator) *Handler {
	return &Handler{
		store:        db,
		orchestrator: orchestrator,
	}
}

func (b *Bot) Run() error {
	r := gin.Default()

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Restaurant Chatbot API is running."})
	})

	r.POST("/chat", b.handler.HandleChat)

	r.GET("/ws/chat", func(ctx *gin.Context) {
		conn, err := b.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		defer conn.Close()

		for {
			var req ChatRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if err := req.Validate(); err != nil {
				if err := conn.WriteJSON(gin.H{"error": err.Error()}); err != nil {
					return
				}
				continue
			}

			answer, err := b.handler.respond(ctx.Request.Context(), req)
			if err != nil {
				slog.Error("failed to answer websocket message", "user_id", req.UserID, "error", err)
				if err := conn.WriteJSON(gin.H{"error": "failed to process message"}); err != nil {
					return
				}
				continue
			}

			if err := conn.WriteJSON(ChatResponse{Response: answer}); err != nil {
				slog.Error("failed to write to ws connection", "error", err)
				return
			}
		}
	})

	r.POST("/users", b.handler.CreateUser)
	r.GET("/menu", b.handler.ListMenu)
	r.POST("/order", b.handler.PlaceOrder)
	r.GET("/chat_history/:user_id", b.handler.ChatHistory)
	r.GET("/order_history/:user_id", b.handler.OrderHistory)
	r.GET("/restaurant/info", b.handler.RestaurantInfo)

	return r.Run(b.config.Server.Address())
}

func (h *Handler) HandleChat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.respond(ctx.Request.Context(), req)
	if err != nil {
		slog.Error("failed to answer chat message", "user_id", req.UserID, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	ctx.JSON(http.StatusOK, ChatResponse{Response: answer})
}

// respond runs one message through the orchestrator and records the
// exchange in chat history.
func (h *Handler) respond(ctx context.Context, req ChatRequest) (string, error) {
	answer, err := h.orchestrator.Respond(ctx, req.UserID, req.Message)
	if err != nil {
		return "", err
	}

	if err := h.store.SaveChat(ctx, req.UserID, req.Message, answer); err != nil {
		slog.Warn("failed to save chat history", "user_id", req.UserID, "error", err)
	}

	return answer, nil
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := req.ToModel()
	created, err := h.store.FindOrCreateUser(ctx.Request.Context(), user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !created {
		ctx.JSON(http.StatusOK, gin.H{"message": "User already exists", "user_id": user.ID})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "User created", "user_id": user.ID})
}

func (h *Handler) ListMenu(ctx *gin.Context) {
	items, err := h.store.ListMenuItems(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *Handler) PlaceOrder(ctx *gin.Context) {
	var req PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, items := req.ToModels()
	if err := h.store.CreateOrder(ctx.Request.Context(), order, items); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order_id": order.ID})
}

func (h *Handler) ChatHistory(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	history, err := h.store.ChatHistoryFor(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries := make([]ChatHistoryEntry, 0, len(history)*2)
	for _, entry := range history {
		ts := entry.Timestamp.Format(timestampLayout)
		entries = append(entries,
			ChatHistoryEntry{Sender: "user", Text: entry.Question, Timestamp: ts},
			ChatHistoryEntry{Sender: "bot", Text: entry.Answer, Timestamp: ts},
		)
	}

	ctx.JSON(http.StatusOK, entries)
}

func (h *Handler) OrderHistory(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	orders, err := h.store.OrderHistory(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	menu, err := h.store.ListMenuItems(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	itemNames := make(map[uint64]string, len(menu))
	for _, item := range menu {
		itemNames[item.ID] = item.Name
	}

	history := make([]OrderHistoryEntry, 0, len(orders))
	for _, order := range orders {
		items := make([]OrderHistoryItem, 0, len(order.Items))
		for _, item := range order.Items {
			name, ok := itemNames[item.MenuItemID]
			if !ok {
				name = "Unknown"
			}
			items = append(items, OrderHistoryItem{
				ItemName:      name,
				Quantity:      item.Quantity,
				PricePerUnit:  item.PricePerUnit,
				Customization: item.Customization,
			})
		}

		history = append(history, OrderHistoryEntry{
			OrderID:             order.ID,
			Status:              order.Status,
			TotalAmount:         order.TotalAmount,
			PaymentMethod:       order.PaymentMethod,
			DeliveryAddress:     order.DeliveryAddress,
			SpecialInstructions: order.SpecialInstructions,
			Timestamp:           order.OrderTime.Format(timestampLayout),
			Items:               items,
		})
	}

	ctx.JSON(http.StatusOK, history)
}

func (h *Handler) RestaurantInfo(ctx *gin.Context) {
	info, err := h.store.RestaurantInfo(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if info == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "No restaurant info found"})
		return
	}

	ctx.JSON(http.StatusOK, info)
}
