package cart

import (
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
)

const (
	MessageAdded   = "Added to cart"
	MessageUpdated = "Quantity updated"
	MessageRemoved = "Item removed"
)

// AddItemRequest is the body of POST /cart/add. Quantity defaults to 1.
type AddItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Quantity  *int      `json:"quantity" validate:"omitempty,min=1"`
}

func (r AddItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ItemDTO reports the current product price, not a snapshot.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	VariantID   uuid.UUID `json:"variant"`
	VariantSKU  string    `json:"variant_sku"`
	Quantity    int       `json:"quantity"`
	Price       string    `json:"price"`
}

func ToItemDTO(item models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:        item.ID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
	}
	if item.Variant != nil {
		dto.VariantSKU = item.Variant.SKU
		if item.Variant.Product != nil {
			dto.ProductName = item.Variant.Product.Name
			dto.Price = types.Money(item.Variant.Product.BasePrice)
		}
	}
	return dto
}
