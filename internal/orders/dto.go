package orders

import (
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
)

const (
	// MessagePlaced confirms a successful checkout.
	MessagePlaced = "Order placed successfully"

	adminDefaultPageSize = 20
)

type OrderItemDTO struct {
	ProductName string `json:"product_name"`
	VariantSKU  string `json:"variant_sku"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	TotalAmount   string              `json:"total_amount"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemDTO      `json:"items"`
}

// AdminOrderDTO adds ownership details for back-office listings.
type AdminOrderDTO struct {
	OrderDTO
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderList = types.CursorList[OrderDTO]

type AdminOrderList = types.PagedList[AdminOrderDTO]

// AdminFilters narrows the back-office order listing.
type AdminFilters struct {
	Status        *enums.OrderStatus
	PaymentMethod *enums.PaymentMethod
	Email         string
	Page          int
	PageSize      int
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func ToOrderDTO(m models.Order) OrderDTO {
	out := OrderDTO{
		ID:            m.ID,
		TotalAmount:   types.Money(m.TotalAmount),
		Status:        m.Status,
		PaymentMethod: m.PaymentMethod,
		CreatedAt:     m.CreatedAt,
		Items:         make([]OrderItemDTO, 0, len(m.Items)),
	}
	for _, item := range m.Items {
		dto := OrderItemDTO{
			Quantity: item.Quantity,
			Price:    types.Money(item.Price),
		}
		if item.Product != nil {
			dto.ProductName = item.Product.Name
		}
		if item.Variant != nil {
			dto.VariantSKU = item.Variant.SKU
		}
		out.Items = append(out.Items, dto)
	}
	return out
}

func ToAdminOrderDTO(m models.Order) AdminOrderDTO {
	out := AdminOrderDTO{
		OrderDTO:  ToOrderDTO(m),
		UserID:    m.UserID,
		UpdatedAt: m.UpdatedAt,
	}
	if m.User != nil {
		out.UserEmail = m.User.Email
	}
	return out
}
