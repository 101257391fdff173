package dashboard

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-orders/internal/models"
)

func runREPL(t *testing.T, api *fakeAPI, script string) string {
	t.Helper()

	var out bytes.Buffer
	view := NewConsoleView(&out)
	s := New(api, view, time.Minute, time.Millisecond)
	repl := NewREPL(s, view, strings.NewReader(script), &out)

	require.NoError(t, repl.Run(context.Background()))
	return out.String()
}

func TestREPL_SetAcceptsDashboardTargetsOnly(t *testing.T) {
	for _, status := range []string{"pending", "ready", "done"} {
		api := &fakeAPI{}
		out := runREPL(t, api, "set 101 "+status+"\nquit\n")

		assert.Equal(t, 0, api.updateCalls, "status %q must be rejected locally", status)
		assert.Contains(t, out, "cooking or canceled")
	}

	for _, status := range []string{"cooking", "canceled"} {
		api := &fakeAPI{}
		runREPL(t, api, "set 101 "+status+"\nquit\n")

		assert.Equal(t, 1, api.updateCalls, "status %q must reach the server", status)
	}
}

func TestREPL_NoteTogglesItemComment(t *testing.T) {
	api := &fakeAPI{
		kitchenFn: func(call int, status string) ([]models.Order, error) {
			return boardOrders(), nil
		},
	}

	out := runREPL(t, api, "note 102 0\nquit\n")

	// Order 102's only item arrives without a comment; the toggle opens its
	// (empty) note row in addition to order 101's arriving one.
	assert.GreaterOrEqual(t, strings.Count(out, "note:"), 2)
}

func TestREPL_UnknownCommand(t *testing.T) {
	api := &fakeAPI{}

	out := runREPL(t, api, "bogus\nquit\n")

	assert.Contains(t, out, `Unknown command "bogus"`)
}
