package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akaufmanis/shoestore/internal/domain/models"
)

// readLine prints the prompt and returns the next trimmed input line. The
// second return is false once the input stream has ended.
func (sh *Shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(sh.out, prompt)
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

// promptMenuChoice keeps asking until the operator enters a number between 1
// and 8.
func (sh *Shell) promptMenuChoice() (int, bool) {
	for {
		line, ok := sh.readLine("Enter your choice (1-8): ")
		if !ok {
			return 0, false
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(sh.out, "Invalid input. Please enter a number.")
			continue
		}
		if choice < 1 || choice > 8 {
			fmt.Fprintln(sh.out, "Please enter a number between 1 and 8.")
			continue
		}
		return choice, true
	}
}

// promptNonEmpty asks once for a required text field; an empty answer rejects
// the whole flow, matching the add-flow contract.
func (sh *Shell) promptNonEmpty(prompt, field string) (string, bool) {
	line, ok := sh.readLine(prompt)
	if !ok {
		return "", false
	}
	if line == "" {
		fmt.Fprintf(sh.out, "Error: %s cannot be empty\n", field)
		return "", false
	}
	return line, true
}

// promptCost re-prompts until the input parses to a non-negative decimal.
func (sh *Shell) promptCost(prompt string) (decimal.Decimal, bool) {
	for {
		line, ok := sh.readLine(prompt)
		if !ok {
			return decimal.Decimal{}, false
		}

		cost, err := models.ParseCost(line)
		if err != nil {
			fmt.Fprintln(sh.out, "Error: Cost must be a valid non-negative number. Try again.")
			continue
		}
		return cost, true
	}
}

// promptQuantity re-prompts until the input parses to a non-negative integer.
func (sh *Shell) promptQuantity(prompt string) (int, bool) {
	for {
		line, ok := sh.readLine(prompt)
		if !ok {
			return 0, false
		}

		qty, err := models.ParseQuantity(line)
		if err != nil {
			fmt.Fprintln(sh.out, "Error: Quantity must be a valid non-negative whole number. Try again.")
			continue
		}
		return qty, true
	}
}

// promptInt re-prompts until the input parses to an integer of any sign.
func (sh *Shell) promptInt(prompt string) (int, bool) {
	for {
		line, ok := sh.readLine(prompt)
		if !ok {
			return 0, false
		}

		value, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(sh.out, "Please enter a valid number.")
			continue
		}
		return value, true
	}
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
