package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/vibeoutfit-backend/api/middleware"
	cartsvc "github.com/angelmondragon/vibeoutfit-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubCartService struct {
	added     *cartsvc.AddItemRequest
	updatedTo int
	removed   uuid.UUID
	err       error
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemRequest) (*cartsvc.ItemDTO, error) {
	s.added = &input
	if s.err != nil {
		return nil, s.err
	}
	qty := 1
	if input.Quantity != nil {
		qty = *input.Quantity
	}
	return &cartsvc.ItemDTO{ID: uuid.New(), VariantID: input.VariantID, Quantity: qty, Price: "10.00"}, nil
}

func (s *stubCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	s.updatedTo = quantity
	return s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	s.removed = itemID
	return s.err
}

func (s *stubCartService) ListCart(ctx context.Context, userID uuid.UUID) ([]cartsvc.ItemDTO, error) {
	return []cartsvc.ItemDTO{}, s.err
}

func authed(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func withItemID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type messageEnvelope struct {
	Data struct {
		Message string          `json:"message"`
		Item    cartsvc.ItemDTO `json:"item"`
	} `json:"data"`
}

func TestAddReturnsMessageAndItem(t *testing.T) {
	svc := &stubCartService{}
	variantID := uuid.New()
	body := `{"variant_id":"` + variantID.String() + `","quantity":2}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body)))

	resp := httptest.NewRecorder()
	Add(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var envelope messageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Message != cartsvc.MessageAdded {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
	if envelope.Data.Item.VariantID != variantID || envelope.Data.Item.Quantity != 2 {
		t.Fatalf("unexpected item %+v", envelope.Data.Item)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"non uuid variant": `{"variant_id":"abc","quantity":1}`,
		"zero quantity":    `{"variant_id":"` + uuid.NewString() + `","quantity":0}`,
		"negative":         `{"variant_id":"` + uuid.NewString() + `","quantity":-3}`,
		"missing variant":  `{"quantity":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubCartService{}
			req := authed(httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body)))
			resp := httptest.NewRecorder()
			Add(svc, nil).ServeHTTP(resp, req)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", resp.Code)
			}
			if svc.added != nil {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestUpdateItem(t *testing.T) {
	svc := &stubCartService{}
	req := authed(httptest.NewRequest(http.MethodPatch, "/api/cart_item/x", strings.NewReader(`{"quantity":5}`)))
	req = withItemID(req, uuid.NewString())

	resp := httptest.NewRecorder()
	UpdateItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.updatedTo != 5 {
		t.Fatalf("expected quantity 5, got %d", svc.updatedTo)
	}
	var envelope messageEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	if envelope.Data.Message != cartsvc.MessageUpdated {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
}

func TestUpdateItemNotOwned(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}
	req := authed(httptest.NewRequest(http.MethodPatch, "/api/cart_item/x", strings.NewReader(`{"quantity":5}`)))
	req = withItemID(req, uuid.NewString())

	resp := httptest.NewRecorder()
	UpdateItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestRemoveItemBadID(t *testing.T) {
	svc := &stubCartService{}
	req := withItemID(authed(httptest.NewRequest(http.MethodDelete, "/api/cart_item/nope/delete", nil)), "nope")

	resp := httptest.NewRecorder()
	RemoveItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRemoveItem(t *testing.T) {
	svc := &stubCartService{}
	itemID := uuid.New()
	req := withItemID(authed(httptest.NewRequest(http.MethodDelete, "/api/cart_item/x/delete", nil)), itemID.String())

	resp := httptest.NewRecorder()
	RemoveItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK || svc.removed != itemID {
		t.Fatalf("expected removal of %s, got code=%d removed=%s", itemID, resp.Code, svc.removed)
	}
}

func TestListRequiresUser(t *testing.T) {
	resp := httptest.NewRecorder()
	List(&stubCartService{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
