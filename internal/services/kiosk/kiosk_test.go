package kiosk

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-orders/internal/client"
	"table-orders/internal/models"
)

type scriptedAPI struct {
	menu      []models.MenuItem
	created   []*models.CreateOrderRequest
	response  *models.CreateOrderResponse
	createErr error
}

func (a *scriptedAPI) Menu(ctx context.Context) ([]models.MenuItem, error) {
	return a.menu, nil
}

func (a *scriptedAPI) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	a.created = append(a.created, req)
	if a.createErr != nil {
		return nil, a.createErr
	}
	return a.response, nil
}

func newScriptedAPI() *scriptedAPI {
	return &scriptedAPI{
		menu: []models.MenuItem{
			{ID: 1, Name: "Burger", Price: 10.00, Category: "Food", IsActive: true},
			{ID: 2, Name: "Fries", Price: 5.00, Category: "Food", IsActive: true},
		},
		response: &models.CreateOrderResponse{OrderID: 107, Status: models.StatusPending},
	}
}

func run(t *testing.T, api *scriptedAPI, script string) string {
	t.Helper()
	var out bytes.Buffer
	k := New(api, strings.NewReader(script), &out)
	require.NoError(t, k.Run(context.Background()))
	return out.String()
}

func TestRun_AddAndSubmit(t *testing.T) {
	api := newScriptedAPI()

	out := run(t, api, "add 1\nadd 1\nadd 2\ncomment 1 no salt\nsubmit A3\nquit\n")

	require.Len(t, api.created, 1)
	req := api.created[0]
	assert.Equal(t, "A3", req.TableCode)
	require.Len(t, req.Items, 2)
	assert.Equal(t, 1, req.Items[0].ProductID)
	assert.Equal(t, 2, req.Items[0].Qty)
	assert.Equal(t, "no salt", req.Items[1].Comment)

	assert.Contains(t, out, "Total: 25.00")
	assert.Contains(t, out, "Order #107 accepted, status pending")
}

func TestRun_SubmitEmptyCartStaysLocal(t *testing.T) {
	api := newScriptedAPI()

	out := run(t, api, "submit A3\nquit\n")

	assert.Empty(t, api.created)
	assert.Contains(t, out, "Cannot submit: cart is empty")
}

func TestRun_SubmitWithoutTableCode(t *testing.T) {
	api := newScriptedAPI()

	out := run(t, api, "add 1\nsubmit\nquit\n")

	assert.Empty(t, api.created)
	assert.Contains(t, out, "Usage: submit <table-code>")
}

func TestRun_RejectedOrderKeepsCart(t *testing.T) {
	api := newScriptedAPI()
	api.createErr = &client.DomainError{StatusCode: 400, Detail: "Product 1 unavailable"}

	out := run(t, api, "add 1\nsubmit A3\ncart\nquit\n")

	assert.Contains(t, out, "Order rejected: Product 1 unavailable")
	// The cart survives a rejected submit so the customer can adjust it.
	assert.Contains(t, strings.Split(out, "Order rejected")[1], "Burger")
}

func TestRun_DecToZeroRemovesLine(t *testing.T) {
	api := newScriptedAPI()

	out := run(t, api, "add 1\ndec 0\ncart\nquit\n")

	assert.Contains(t, out, "Cart is empty")
}

func TestRun_UnknownProduct(t *testing.T) {
	api := newScriptedAPI()

	out := run(t, api, "add 99\nquit\n")

	assert.Contains(t, out, "Product 99 is not on the menu")
}

func TestRun_CommentForcesNoteVisible(t *testing.T) {
	api := newScriptedAPI()

	out := run(t, api, "add 1\ncomment 0 extra cheese\nquit\n")

	assert.Contains(t, out, "note: extra cheese")
}

func TestRun_NoteToggleHidesEmptyNote(t *testing.T) {
	api := newScriptedAPI()

	// Toggled open with no text, the note row renders empty; toggled again it
	// disappears.
	out := run(t, api, "add 1\nnote 0\nnote 0\ncart\nquit\n")

	sections := strings.Split(out, "LINE")
	last := sections[len(sections)-1]
	assert.NotContains(t, last, "note:")
}

func TestRun_NetworkErrorMessage(t *testing.T) {
	api := newScriptedAPI()
	api.createErr = &client.NetworkError{Cause: context.DeadlineExceeded}

	out := run(t, api, "add 1\nsubmit A3\nquit\n")

	assert.Contains(t, out, "Network problem, please try again")
}
