package models

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Location struct {
	Lon, Lat float64
}

func NewGeoPoint(lng, lat float64) Location {
	return Location{
		Lon: lng,
		Lat: lat,
	}
}

func (g *Location) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case string:
		var err error
		data, err = hex.DecodeString(v)
		if err != nil {
			return err
		}
	case []byte:
		data = v
	default:
		return fmt.Errorf("expected string or []byte, got %T", value)
	}

	t, err := ewkb.Unmarshal(data)
	if err != nil {
		return err
	}

	if point, ok := t.(*geom.Point); ok {
		g.Lon = point.X()
		g.Lat = point.Y()

		return nil
	}

	return fmt.Errorf("expected Point, got %T", t)
}

func (loc Location) GormDataType() string {
	return "geometry"
}

func (loc Location) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	return clause.Expr{
		SQL:  "ST_PointFromText(?)",
		Vars: []interface{}{fmt.Sprintf("POINT(%f %f)", loc.Lon, loc.Lat)},
	}
}

type User struct {
	ID       uint64    `gorm:"primaryKey" json:"id"`
	Name     string    `json:"name"`
	Contact  string    `gorm:"uniqueIndex" json:"contact"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	JoinDate time.Time `gorm:"autoCreateTime" json:"join_date"`
}

func (u *User) TableName() string {
	return "users"
}

// RestaurantInfo is a singleton row holding the facts the template
// resolvers read.
type RestaurantInfo struct {
	ID           uint64   `gorm:"primaryKey" json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Contact      string   `json:"contact"`
	Email        string   `json:"email"`
	Wifi         bool     `json:"wifi"`
	Parking      bool     `json:"parking"`
	OpeningHours string   `json:"opening_hours"`
	ClosingTime  string   `json:"closing_time"`
	WeekendHours string   `json:"weekend_hours"`
	DeliveryTime string   `json:"delivery_time"`
	Capacity     int      `json:"capacity"`
	Location     Location `json:"location"`
}

func (r *RestaurantInfo) TableName() string {
	return "restaurant_info"
}

type MenuItem struct {
	ID          uint64         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex" json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	Dietary     pq.StringArray `gorm:"type:text[]" json:"dietary"`
}

func (m *MenuItem) TableName() string {
	return "menu_items"
}

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
)

type Order struct {
	ID                  uint64      `gorm:"primaryKey" json:"id"`
	UserID              uint64      `json:"user_id"`
	Status              string      `gorm:"default:Pending" json:"status"`
	OrderTime           time.Time   `gorm:"autoCreateTime" json:"order_time"`
	TotalAmount         float64     `json:"total_amount"`
	PaymentMethod       string      `json:"payment_method"`
	DeliveryAddress     string      `json:"delivery_address"`
	SpecialInstructions string      `json:"special_instructions"`
	Items               []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (o *Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID            uint64  `gorm:"primaryKey" json:"id"`
	OrderID       uint64  `json:"order_id"`
	MenuItemID    uint64  `json:"menu_item_id"`
	Quantity      int     `json:"quantity"`
	PricePerUnit  float64 `json:"price_per_unit"`
	Customization string  `json:"customization"`
}

func (o *OrderItem) TableName() string {
	return "order_items"
}

type Service struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"uniqueIndex" json:"name"`
	Enabled bool   `json:"enabled"`
}

func (s *Service) TableName() string {
	return "services"
}

type Platform struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex" json:"name"`
	Available bool   `json:"available"`
}

func (p *Platform) TableName() string {
	return "platforms"
}

type Policy struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex" json:"name"`
	Value string `json:"value"`
}

func (p *Policy) TableName() string {
	return "policies"
}

type Facility struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex" json:"name"`
	Available bool   `json:"available"`
}

func (f *Facility) TableName() string {
	return "facilities"
}

type Staff struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
}

func (s *Staff) TableName() string {
	return "staff"
}

type ChatHistory struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `json:"user_id"`
	Question  string    `gorm:"type:text" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (c *ChatHistory) TableName() string {
	return "chat_history"
}

// QAEntry is one row of the question/answer corpus the semantic index is
// built from. Rows are written only by the indexer and read once at startup.
type QAEntry struct {
	ID        uint64          `gorm:"primaryKey" json:"id"`
	Question  string          `gorm:"type:text" json:"question"`
	Answer    string          `gorm:"type:text" json:"answer"`
	Embedding pgvector.Vector `gorm:"type:vector(384)" json:"-"`
}

func (q *QAEntry) TableName() string {
	return "qa_corpus"
}

// QACorpusMeta records how the corpus was built so the loader can refuse
// to serve vectors produced by a different embedding model.
type QACorpusMeta struct {
	ID      uint64    `gorm:"primaryKey" json:"id"`
	Model   string    `json:"model"`
	Dim     int       `json:"dim"`
	Rows    int       `json:"rows"`
	BuiltAt time.Time `gorm:"autoCreateTime" json:"built_at"`
}

func (q *QACorpusMeta) TableName() string {
	return "qa_corpus_meta"
}
