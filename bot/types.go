package main

import (
	"fmt"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
)

type ChatRequest struct {
	UserID  uint64 `json:"user_id"`
	Message string `json:"message"`
}

func (c *ChatRequest) Validate() error {
	if c.UserID == 0 || c.Message == "" {
		return fmt.Errorf("user_id and message are required")
	}

	return nil
}

type ChatResponse struct {
	Response string `json:"response"`
}

type CreateUserRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

func (c *CreateUserRequest) Validate() error {
	if c.Name == "" || c.Contact == "" || c.Email == "" {
		return fmt.Errorf("name, contact, and email are required")
	}

	return nil
}

func (c *CreateUserRequest) ToModel() *models.User {
	return &models.User{
		Name:    c.Name,
		Contact: c.Contact,
		Email:   c.Email,
	}
}

type PlaceOrderRequest struct {
	UserID              uint64 `json:"user_id"`
	PaymentMethod       string `json:"payment_method"`
	DeliveryAddress     string `json:"delivery_address"`
	SpecialInstructions string `json:"special_instructions"`
	Items               []struct {
		MenuItemID    uint64  `json:"menu_item_id"`
		Quantity      int     `json:"quantity"`
		PricePerUnit  float64 `json:"price_per_unit"`
		Customization string  `json:"customization"`
	} `json:"items"`
}

func (p *PlaceOrderRequest) Validate() error {
	if p.UserID == 0 {
		return fmt.Errorf("user_id is required")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("no order items provided")
	}
	for _, item := range p.Items {
		if item.MenuItemID == 0 || item.Quantity < 1 {
			return fmt.Errorf("each item needs a menu_item_id and a positive quantity")
		}
	}

	return nil
}

func (p *PlaceOrderRequest) ToModels() (*models.Order, []models.OrderItem) {
	var total float64
	items := make([]models.OrderItem, len(p.Items))
	for i, item := range p.Items {
		total += float64(item.Quantity) * item.PricePerUnit
		items[i] = models.OrderItem{
			MenuItemID:    item.MenuItemID,
			Quantity:      item.Quantity,
			PricePerUnit:  item.PricePerUnit,
			Customization: item.Customization,
		}
	}

	order := &models.Order{
		UserID:              p.UserID,
		Status:              models.OrderStatusPending,
		TotalAmount:         total,
		PaymentMethod:       p.PaymentMethod,
		DeliveryAddress:     p.DeliveryAddress,
		SpecialInstructions: p.SpecialInstructions,
	}

	return order, items
}

type ChatHistoryEntry struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type OrderHistoryItem struct {
	ItemName      string  `json:"item_name"`
	Quantity      int     `json:"quantity"`
	PricePerUnit  float64 `json:"price_per_unit"`
	Customization string  `json:"customization"`
}

type OrderHistoryEntry struct {
	OrderID             uint64             `json:"order_id"`
	Status              string             `json:"status"`
	TotalAmount         float64            `json:"total_amount"`
	PaymentMethod       string             `json:"payment_method"`
	DeliveryAddress     string             `json:"delivery_address"`
	SpecialInstructions string             `json:"special_instructions"`
	Timestamp           string             `json:"timestamp"`
	Items               []OrderHistoryItem `json:"items"`
}
