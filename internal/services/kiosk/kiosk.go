package kiosk

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"table-orders/internal/client"
	"table-orders/internal/models"
	"table-orders/internal/services/cart"
	"table-orders/internal/ui"
)

// API is the slice of the HTTP client the kiosk needs.
type API interface {
	Menu(ctx context.Context) ([]models.MenuItem, error)
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error)
}

// Kiosk is the table-side ordering loop: it shows the menu, builds a cart
// and submits it as an order. One kiosk serves one table at a time.
type Kiosk struct {
	api API
	in  io.Reader
	out io.Writer

	menu      []models.MenuItem
	cart      *cart.Cart
	submitter *cart.Submitter
	comments  *ui.CommentState
}

// New creates a kiosk reading commands from in and writing to out.
func New(api API, in io.Reader, out io.Writer) *Kiosk {
	return &Kiosk{
		api:       api,
		in:        in,
		out:       out,
		submitter: cart.NewSubmitter(api),
	}
}

// Run fetches the menu and processes commands until quit, EOF or context
// cancellation.
func (k *Kiosk) Run(ctx context.Context) error {
	menu, err := k.api.Menu(ctx)
	if err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}
	k.menu = menu
	k.cart = cart.New(menu)
	k.comments = ui.NewCommentState()

	k.printHelp()
	k.renderMenu()

	scanner := bufio.NewScanner(k.in)
	for {
		fmt.Fprint(k.out, "table> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "menu":
			k.renderMenu()
		case "add":
			k.handleAdd(fields[1:])
		case "inc":
			k.handleQty(fields[1:], k.cart.IncrementQty)
		case "dec":
			k.handleQty(fields[1:], k.cart.DecrementQty)
		case "comment":
			k.handleComment(fields[1:])
		case "note":
			k.handleNoteToggle(fields[1:])
		case "cart":
			k.renderCart()
		case "submit":
			k.handleSubmit(ctx, fields[1:])
		case "clear":
			k.cart.Clear()
			k.comments = ui.NewCommentState()
			fmt.Fprintln(k.out, "Cart cleared")
		case "help":
			k.printHelp()
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(k.out, "Unknown command %q, try help\n", fields[0])
		}
	}
}

func (k *Kiosk) handleAdd(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(k.out, "Usage: add <product-id>")
		return
	}

	productID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(k.out, "Invalid product id %q\n", args[0])
		return
	}

	before := k.cart.Len()
	k.cart.AddItem(productID)
	if k.cart.Len() == before && !k.inCart(productID) {
		fmt.Fprintf(k.out, "Product %d is not on the menu\n", productID)
		return
	}
	k.renderCart()
}

func (k *Kiosk) handleQty(args []string, apply func(int)) {
	if len(args) != 1 {
		fmt.Fprintln(k.out, "Usage: inc|dec <line>")
		return
	}

	index, ok := k.lineIndex(args[0])
	if !ok {
		return
	}
	apply(index)
	k.renderCart()
}

func (k *Kiosk) handleComment(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(k.out, "Usage: comment <line> [text]")
		return
	}

	index, ok := k.lineIndex(args[0])
	if !ok {
		return
	}
	k.cart.SetComment(index, strings.Join(args[1:], " "))
	k.renderCart()
}

func (k *Kiosk) handleNoteToggle(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(k.out, "Usage: note <line>")
		return
	}

	index, ok := k.lineIndex(args[0])
	if !ok {
		return
	}
	k.comments.Toggle(ui.Key{LineIndex: index})
	k.renderCart()
}

func (k *Kiosk) handleSubmit(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(k.out, "Usage: submit <table-code>")
		return
	}

	receipt, err := k.submitter.Submit(ctx, k.cart, args[0])
	if err != nil {
		k.showError(err)
		return
	}

	fmt.Fprintf(k.out, "Order #%d accepted, status %s\n", receipt.OrderID, receipt.Status)
	k.cart.Clear()
	k.comments = ui.NewCommentState()
}

// showError translates the client error taxonomy into customer-facing text.
func (k *Kiosk) showError(err error) {
	var (
		validationErr *client.ValidationError
		networkErr    *client.NetworkError
		domainErr     *client.DomainError
	)
	switch {
	case errors.As(err, &validationErr):
		fmt.Fprintf(k.out, "Cannot submit: %s\n", validationErr.Reason)
	case errors.As(err, &networkErr):
		fmt.Fprintln(k.out, "Network problem, please try again")
	case errors.As(err, &domainErr):
		fmt.Fprintf(k.out, "Order rejected: %s\n", domainErr.Error())
	default:
		fmt.Fprintf(k.out, "Unexpected error: %s\n", err)
	}
}

func (k *Kiosk) renderMenu() {
	fmt.Fprintf(k.out, "\n%-4s %-20s %-10s %s\n", "ID", "NAME", "CATEGORY", "PRICE")
	for _, item := range k.menu {
		fmt.Fprintf(k.out, "%-4d %-20s %-10s %.2f\n", item.ID, item.Name, item.Category, item.Price)
	}
}

func (k *Kiosk) renderCart() {
	lines := k.cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(k.out, "\nCart is empty")
		return
	}

	fmt.Fprintf(k.out, "\n%-5s %-20s %-4s %s\n", "LINE", "NAME", "QTY", "PRICE")
	for i, line := range lines {
		fmt.Fprintf(k.out, "%-5d %-20s %-4d %.2f\n", i, line.Name, line.Qty, line.Price*float64(line.Qty))

		key := ui.Key{LineIndex: i}
		k.comments.ForceExpandIfNonEmpty(key, line.Comment)
		if k.comments.IsExpanded(key) {
			fmt.Fprintf(k.out, "      note: %s\n", line.Comment)
		}
	}
	fmt.Fprintf(k.out, "Total: %.2f\n", k.cart.Total())
}

func (k *Kiosk) lineIndex(arg string) (int, bool) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 || index >= k.cart.Len() {
		fmt.Fprintf(k.out, "Invalid line %q\n", arg)
		return 0, false
	}
	return index, true
}

func (k *Kiosk) inCart(productID int) bool {
	for _, line := range k.cart.Lines() {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

func (k *Kiosk) printHelp() {
	fmt.Fprintln(k.out, `Table kiosk commands:
  menu                     show the menu
  add <product-id>         add one unit of a product
  inc <line>               add one unit to a cart line
  dec <line>               remove one unit (removes the line at zero)
  comment <line> [text]    set or clear a line note
  note <line>              show or hide a line note
  cart                     show the cart
  submit <table-code>      place the order
  clear                    empty the cart
  help                     show this help
  quit                     exit`)
}
