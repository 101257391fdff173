package dashboard

import (
	"fmt"
	"io"
	"sync"

	"table-orders/internal/models"
	"table-orders/internal/ui"
)

// ConsoleView renders the dashboard to a terminal. Note visibility is
// tracked per (order, line), so the crew can open and close item notes on
// one card without affecting any other.
type ConsoleView struct {
	mu    sync.Mutex
	out   io.Writer
	notes *ui.CommentState
	last  []models.Order
}

// NewConsoleView creates a view writing to out.
func NewConsoleView(out io.Writer) *ConsoleView {
	return &ConsoleView{
		out:   out,
		notes: ui.NewCommentState(),
	}
}

// RenderOrders prints the full order list, replacing whatever was shown.
// Items that arrive with a comment have their note opened up front; a
// toggle can close it until the next data refresh.
func (v *ConsoleView) RenderOrders(orders []models.Order) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.last = orders
	for _, order := range orders {
		for i, item := range order.Items {
			v.notes.ForceExpandIfNonEmpty(ui.Key{ContainerID: order.ID, LineIndex: i}, item.Comment)
		}
	}
	v.renderLocked()
}

// ToggleNote flips one item's note visibility and redraws the board from
// the last rendered list. No network round trip happens.
func (v *ConsoleView) ToggleNote(orderID, lineIndex int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notes.Toggle(ui.Key{ContainerID: orderID, LineIndex: lineIndex})
	v.renderLocked()
}

// ShowError prints a message without touching the rendered list.
func (v *ConsoleView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "Error: %s\n", message)
}

func (v *ConsoleView) renderLocked() {
	if len(v.last) == 0 {
		fmt.Fprintln(v.out, "\nNo orders to show")
		return
	}

	fmt.Fprintf(v.out, "\n%-7s %-10s %-10s %s\n", "ORDER", "TABLE", "STATUS", "PLACED")
	for _, order := range v.last {
		fmt.Fprintf(v.out, "#%-6d %-10s %-10s %s\n",
			order.ID,
			order.TableCode,
			order.Status,
			order.CreatedAt.Format("2006-01-02 15:04:05"))

		for i, item := range order.Items {
			fmt.Fprintf(v.out, "  %d) %dx %s\n", i, item.Qty, item.Name)

			if v.notes.IsExpanded(ui.Key{ContainerID: order.ID, LineIndex: i}) {
				fmt.Fprintf(v.out, "     note: %s\n", item.Comment)
			}
		}
	}
}
