package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNullableDistinguishesOmittedFromNull(t *testing.T) {
	var payload struct {
		ParentID NullableUUID   `json:"parent_id"`
		Image    NullableString `json:"image"`
	}
	if err := json.Unmarshal([]byte(`{"parent_id":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.ParentID.Set || payload.ParentID.Value != nil {
		t.Fatalf("expected explicit null, got %+v", payload.ParentID)
	}
	if payload.Image.Set {
		t.Fatal("omitted field reported as set")
	}

	id := uuid.New()
	if err := json.Unmarshal([]byte(`{"parent_id":"`+id.String()+`","image":"a.png"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.ParentID.Value == nil || *payload.ParentID.Value != id {
		t.Fatalf("expected %s, got %+v", id, payload.ParentID)
	}
	if payload.Image.Value == nil || *payload.Image.Value != "a.png" {
		t.Fatalf("unexpected image %+v", payload.Image)
	}
}

func TestNullableRejectsBadUUID(t *testing.T) {
	var payload struct {
		ParentID NullableUUID `json:"parent_id"`
	}
	if err := json.Unmarshal([]byte(`{"parent_id":"nope"}`), &payload); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
}

func TestMoneyFormatting(t *testing.T) {
	if got := Money(decimal.RequireFromString("10")); got != "10.00" {
		t.Fatalf("expected 10.00, got %s", got)
	}
	if got := Money(decimal.RequireFromString("45.5")); got != "45.50" {
		t.Fatalf("expected 45.50, got %s", got)
	}
	if NullMoney(decimal.NullDecimal{}) != nil {
		t.Fatal("expected nil for null decimal")
	}
	if got := NullMoney(decimal.NewNullDecimal(decimal.RequireFromString("7.25"))); got == nil || *got != "7.25" {
		t.Fatalf("unexpected null money %v", got)
	}
}
