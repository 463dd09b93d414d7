package enums

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	for _, method := range PaymentMethods() {
		got, err := ParsePaymentMethod(string(method))
		if err != nil || got != method {
			t.Fatalf("expected %s to parse, got %q err=%v", method, got, err)
		}
	}
	if _, err := ParsePaymentMethod("bitcoin"); err == nil {
		t.Fatal("expected unknown payment method to fail")
	}
	if !DefaultPaymentMethod.IsValid() {
		t.Fatal("default payment method must be valid")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusCancelled: true,
		OrderStatusRefunded:  true,
	}
	for _, status := range validOrderStatuses {
		if status.IsTerminal() != terminal[status] {
			t.Fatalf("unexpected terminal flag for %s", status)
		}
	}
	if _, err := ParseOrderStatus("lost"); err == nil {
		t.Fatal("expected invalid status error")
	}
}

func TestUserRoleValidity(t *testing.T) {
	if !UserRoleAdmin.IsValid() || !UserRoleCustomer.IsValid() {
		t.Fatal("known roles must be valid")
	}
	if UserRole("owner").IsValid() {
		t.Fatal("unexpected role accepted")
	}
}
