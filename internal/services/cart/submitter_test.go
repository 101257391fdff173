package cart

import (
	"context"
	"errors"
	"testing"

	"table-orders/internal/client"
	"table-orders/internal/models"
)

type fakeOrderAPI struct {
	calls    int
	gotReq   *models.CreateOrderRequest
	response *models.CreateOrderResponse
	err      error
}

func (f *fakeOrderAPI) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	f.calls++
	f.gotReq = req
	return f.response, f.err
}

func TestSubmit_EmptyTableCodeNeverHitsNetwork(t *testing.T) {
	api := &fakeOrderAPI{}
	s := NewSubmitter(api)

	c := New(testMenu())
	c.AddItem(1)

	for _, code := range []string{"", "   "} {
		_, err := s.Submit(context.Background(), c, code)

		var validationErr *client.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError for table code %q, got %v", code, err)
		}
	}
	if api.calls != 0 {
		t.Fatalf("expected no network calls, got %d", api.calls)
	}
}

func TestSubmit_EmptyCartNeverHitsNetwork(t *testing.T) {
	api := &fakeOrderAPI{}
	s := NewSubmitter(api)

	_, err := s.Submit(context.Background(), New(testMenu()), "A3")

	var validationErr *client.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("expected no network calls, got %d", api.calls)
	}
}

func TestSubmit_Success(t *testing.T) {
	api := &fakeOrderAPI{
		response: &models.CreateOrderResponse{OrderID: 7, Status: models.StatusPending},
	}
	s := NewSubmitter(api)

	c := New(testMenu())
	c.AddItem(1)
	c.AddItem(1)
	c.AddItem(2)
	c.SetComment(1, "no salt")

	if c.Total() != 25.00 {
		t.Fatalf("expected total 25.00 before submit, got %v", c.Total())
	}

	receipt, err := s.Submit(context.Background(), c, "A3")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if receipt.OrderID != 7 || receipt.Status != models.StatusPending {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	if api.gotReq.TableCode != "A3" {
		t.Fatalf("expected table code A3, got %q", api.gotReq.TableCode)
	}
	if len(api.gotReq.Items) != 2 {
		t.Fatalf("expected 2 request items, got %d", len(api.gotReq.Items))
	}
	if api.gotReq.Items[0].ProductID != 1 || api.gotReq.Items[0].Qty != 2 {
		t.Fatalf("unexpected first item: %+v", api.gotReq.Items[0])
	}
	if api.gotReq.Items[1].Comment != "no salt" {
		t.Fatalf("expected comment carried through, got %q", api.gotReq.Items[1].Comment)
	}

	// Clearing after success is the caller's job.
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected cart cleared")
	}
}

func TestSubmit_FailureLeavesCartUntouched(t *testing.T) {
	api := &fakeOrderAPI{err: &client.DomainError{StatusCode: 400, Detail: "Product 9 unavailable"}}
	s := NewSubmitter(api)

	c := New(testMenu())
	c.AddItem(1)
	c.SetComment(0, "rare")

	_, err := s.Submit(context.Background(), c, "A3")

	var domainErr *client.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if c.Len() != 1 || c.Lines()[0].Comment != "rare" {
		t.Fatalf("cart must be untouched after a failed submit: %+v", c.Lines())
	}
}
