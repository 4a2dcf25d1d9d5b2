package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/akaufmanis/shoestore/internal/domain/models"
	repo "github.com/akaufmanis/shoestore/internal/repository/file"
	"github.com/akaufmanis/shoestore/internal/service/inventory"
)

const cancelSentinel = -1

// Shell drives the numbered menu loop over an injected reader and writer, so
// the whole interaction can run against a scripted input in tests.
type Shell struct {
	svc    *inventory.Service
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

// NewShell constructs a console shell around the inventory service.
func NewShell(svc *inventory.Service, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run displays the menu and dispatches one operation per cycle until the
// operator chooses to exit or the input stream ends.
func (sh *Shell) Run(ctx context.Context) {
	fmt.Fprintln(sh.out, "\nWelcome to the Shoe Inventory Management System!")

	for {
		sh.printMenu()

		choice, ok := sh.promptMenuChoice()
		if !ok {
			return
		}

		if choice == 8 {
			fmt.Fprintln(sh.out, "\nThank you for using the Shoe Inventory Management System. Goodbye!")
			return
		}

		switch choice {
		case 1:
			sh.handleLoad(ctx)
		case 2:
			sh.handleAdd(ctx)
		case 3:
			sh.handleList()
		case 4:
			sh.handleRestock(ctx)
		case 5:
			sh.handleSearch()
		case 6:
			sh.handleValuation()
		case 7:
			sh.handleHighest()
		}

		if !sh.pause() {
			return
		}
	}
}

func (sh *Shell) printMenu() {
	fmt.Fprintln(sh.out, "\n==================================================")
	fmt.Fprintln(sh.out, "SHOE INVENTORY MANAGEMENT SYSTEM")
	fmt.Fprintln(sh.out, "==================================================")
	fmt.Fprintln(sh.out, "1. Read Shoes Data from File")
	fmt.Fprintln(sh.out, "2. Add New Shoe")
	fmt.Fprintln(sh.out, "3. View All Shoes")
	fmt.Fprintln(sh.out, "4. Re-stock Shoes")
	fmt.Fprintln(sh.out, "5. Search for a Shoe")
	fmt.Fprintln(sh.out, "6. Calculate Value Per Item")
	fmt.Fprintln(sh.out, "7. Find Highest Quantity Shoe")
	fmt.Fprintln(sh.out, "8. Exit")
	fmt.Fprintln(sh.out, "==================================================")
}

func (sh *Shell) handleLoad(ctx context.Context) {
	count, err := sh.svc.Load(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(sh.out, "\nSuccessfully loaded %d shoes.\n", count)
	case errors.Is(err, repo.ErrFileNotFound):
		fmt.Fprintln(sh.out, "\nError: inventory file not found.")
	case errors.Is(err, repo.ErrEmptyFile):
		fmt.Fprintln(sh.out, "\nError: inventory file is empty.")
	case errors.Is(err, repo.ErrNoRecords):
		fmt.Fprintln(sh.out, "\nError: no valid shoe entries found in the file.")
	default:
		fmt.Fprintf(sh.out, "\nError loading inventory: %v\n", err)
	}
}

func (sh *Shell) handleAdd(ctx context.Context) {
	fmt.Fprintln(sh.out, "\n=== Add New Shoe ===")

	country, ok := sh.promptNonEmpty("Enter the country: ", "Country")
	if !ok {
		return
	}

	code, ok := sh.promptNonEmpty("Enter the code: ", "Code")
	if !ok {
		return
	}
	if sh.svc.HasCode(code) {
		fmt.Fprintf(sh.out, "Error: A shoe with code '%s' already exists\n", code)
		return
	}

	product, ok := sh.promptNonEmpty("Enter the product name: ", "Product name")
	if !ok {
		return
	}

	cost, ok := sh.promptCost("Enter the cost (numeric value): ")
	if !ok {
		return
	}

	quantity, ok := sh.promptQuantity("Enter the quantity (whole number): ")
	if !ok {
		return
	}

	shoe := models.Shoe{
		Country:  country,
		Code:     code,
		Product:  product,
		Cost:     cost,
		Quantity: quantity,
	}

	if err := sh.svc.Add(ctx, shoe); err != nil {
		if errors.Is(err, inventory.ErrDuplicateCode) {
			fmt.Fprintf(sh.out, "Error: A shoe with code '%s' already exists\n", code)
			return
		}
		sh.logger.Error("add failed", zap.Error(err))
		fmt.Fprintln(sh.out, "Error: Failed to save shoe data to file")
		return
	}

	fmt.Fprintln(sh.out, "Shoe added successfully!")
}

func (sh *Shell) handleList() {
	shoes := sh.svc.All()
	if len(shoes) == 0 {
		fmt.Fprintln(sh.out, "\nNo shoes in inventory. Use option 1 to load data or option 2 to add shoes.")
		return
	}

	fmt.Fprintln(sh.out, "\n=== Shoe Inventory ===")
	renderTable(sh.out, shoes, false)
	fmt.Fprintf(sh.out, "\nTotal number of shoes: %d\n", len(shoes))
}

func (sh *Shell) handleRestock(ctx context.Context) {
	positions := sh.svc.LowestStocked()
	if len(positions) == 0 {
		fmt.Fprintln(sh.out, "\nNo shoes in inventory to re-stock.")
		return
	}

	lowest := make([]models.Shoe, 0, len(positions))
	for _, pos := range positions {
		shoe, err := sh.svc.At(pos)
		if err != nil {
			continue
		}
		lowest = append(lowest, shoe)
	}

	fmt.Fprintln(sh.out, "\n=== Shoes with Lowest Quantity ===")
	renderTable(sh.out, lowest, true)

	selected := 0
	if len(lowest) > 1 {
		idx, ok := sh.promptInt(fmt.Sprintf("\nEnter the index number of the shoe to restock (0-%d, or -1 to cancel): ", len(lowest)-1))
		if !ok {
			return
		}
		if idx == cancelSentinel {
			fmt.Fprintln(sh.out, "Restock operation cancelled.")
			return
		}
		if idx < 0 || idx >= len(lowest) {
			fmt.Fprintln(sh.out, "Invalid index. Restock operation cancelled.")
			return
		}
		selected = idx
	}

	shoe := lowest[selected]
	fmt.Fprintf(sh.out, "\nSelected shoe for restocking: %s (Code: %s), quantity %d\n", shoe.Product, shoe.Code, shoe.Quantity)

	answer, ok := sh.readLine("Do you want to add more quantity to this shoe? (yes/no): ")
	if !ok || !isYes(answer) {
		return
	}

	add, ok := sh.promptQuantity("Enter the quantity to add: ")
	if !ok {
		return
	}

	updated, err := sh.svc.Restock(ctx, positions[selected], add)
	if err != nil {
		sh.logger.Error("restock failed", zap.Error(err))
		fmt.Fprintln(sh.out, "Error: Failed to save updated inventory")
		return
	}

	fmt.Fprintf(sh.out, "Shoe restocked successfully! New quantity: %d\n", updated.Quantity)
}

func (sh *Shell) handleSearch() {
	code, ok := sh.readLine("\nEnter the shoe code to search: ")
	if !ok {
		return
	}
	if code == "" {
		fmt.Fprintln(sh.out, "Search code cannot be empty")
		return
	}

	found, err := sh.svc.Search(code)
	switch {
	case errors.Is(err, inventory.ErrEmptyInventory):
		fmt.Fprintln(sh.out, "No shoes in inventory to search.")
	case errors.Is(err, inventory.ErrNoMatch):
		fmt.Fprintf(sh.out, "No shoes found with code '%s'\n", code)
	case err == nil:
		fmt.Fprintln(sh.out, "\n=== Search Results ===")
		renderTable(sh.out, found, false)
	}
}

func (sh *Shell) handleValuation() {
	shoes, total := sh.svc.Valuation()
	if len(shoes) == 0 {
		fmt.Fprintln(sh.out, "\nNo shoes in inventory.")
		return
	}

	fmt.Fprintln(sh.out, "\n=== Inventory Value Analysis ===")
	renderTable(sh.out, shoes, false)
	fmt.Fprintf(sh.out, "\nTotal inventory value: $%s\n", total.StringFixed(2))

	if len(shoes) >= 3 {
		renderValueChart(sh.out, shoes)
	}
}

func (sh *Shell) handleHighest() {
	shoe, err := sh.svc.HighestStocked()
	if err != nil {
		fmt.Fprintln(sh.out, "\nNo shoes in inventory.")
		return
	}

	fmt.Fprintln(sh.out, "\n=== Shoe with Highest Quantity ===")
	renderTable(sh.out, []models.Shoe{shoe}, false)
	fmt.Fprintf(sh.out, "%s (Code: %s) is for sale!\n", shoe.Product, shoe.Code)
}

func (sh *Shell) pause() bool {
	fmt.Fprint(sh.out, "\nPress Enter to continue...")
	return sh.in.Scan()
}
