package dashboard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"table-orders/internal/models"
)

// NoteToggler flips the visibility of one item note on the board.
type NoteToggler interface {
	ToggleNote(orderID, lineIndex int)
}

// REPL is the interactive command loop of the kitchen dashboard.
type REPL struct {
	sync  *Sync
	notes NoteToggler
	in    io.Reader
	out   io.Writer
}

// NewREPL creates the dashboard command loop.
func NewREPL(s *Sync, notes NoteToggler, in io.Reader, out io.Writer) *REPL {
	return &REPL{sync: s, notes: notes, in: in, out: out}
}

// Run loads the board, starts auto-refresh and processes commands until
// quit, EOF or context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	r.printHelp()
	r.sync.Load(ctx)
	r.sync.SetAuto(ctx, true)
	defer r.sync.Stop()

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "kitchen> ")
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
		case "refresh":
			r.sync.Load(ctx)
		case "filter":
			r.handleFilter(ctx, fields[1:])
		case "search":
			r.sync.SetTableQuery(ctx, strings.Join(fields[1:], " "))
		case "set":
			r.handleSet(ctx, fields[1:])
		case "note":
			r.handleNote(fields[1:])
		case "auto":
			r.handleAuto(ctx, fields[1:])
		case "help":
			r.printHelp()
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(r.out, "Unknown command %q, try help\n", fields[0])
		}
	}
}

func (r *REPL) handleFilter(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: filter <status|all>")
		return
	}

	status := args[0]
	if status == "all" {
		r.sync.SetStatusFilter(ctx, "")
		return
	}
	if !models.ValidStatus(status) {
		fmt.Fprintf(r.out, "Unknown status %q\n", status)
		return
	}
	r.sync.SetStatusFilter(ctx, status)
}

// handleSet issues a transition. The dashboard only ever initiates cooking
// and canceled; the remaining statuses move through other flows.
func (r *REPL) handleSet(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "Usage: set <order-id> <cooking|canceled>")
		return
	}

	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Invalid order id %q\n", args[0])
		return
	}

	status := models.OrderStatus(args[1])
	if status != models.StatusCooking && status != models.StatusCancelled {
		fmt.Fprintf(r.out, "The dashboard can only set cooking or canceled, not %q\n", args[1])
		return
	}

	r.sync.SetStatus(ctx, orderID, status)
}

func (r *REPL) handleNote(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "Usage: note <order-id> <line>")
		return
	}

	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Invalid order id %q\n", args[0])
		return
	}
	lineIndex, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(r.out, "Invalid line %q\n", args[1])
		return
	}

	r.notes.ToggleNote(orderID, lineIndex)
}

func (r *REPL) handleAuto(ctx context.Context, args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(r.out, "Usage: auto <on|off>")
		return
	}
	r.sync.SetAuto(ctx, args[0] == "on")
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `Kitchen dashboard commands:
  refresh                    reload the order list
  filter <status|all>        show only orders with the given status
  search <text>              filter shown orders by table code
  set <id> <cooking|canceled>  move an order to a new status
  note <order-id> <line>     show or hide an item note
  auto <on|off>              toggle auto-refresh
  help                       show this help
  quit                       exit`)
}
