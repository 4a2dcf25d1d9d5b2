package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	repo "github.com/akaufmanis/shoestore/internal/repository/file"
	"github.com/akaufmanis/shoestore/internal/service/inventory"
)

func newTestShell(t *testing.T, fileContent, input string) (*Shell, *bytes.Buffer, *inventory.Service) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.txt")
	if fileContent != "" {
		if err := os.WriteFile(path, []byte(fileContent), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	fileRepo := repo.NewFileRepository(path, filepath.Join(dir, "inventory_backup.txt"), nil)
	svc := inventory.NewService(fileRepo, nil)

	var out bytes.Buffer
	sh := NewShell(svc, strings.NewReader(input), &out, nil)
	return sh, &out, svc
}

const tiedFile = "Country,Code,Product,Cost,Quantity\n" +
	"US,A1,Runner,50.00,3\n" +
	"CN,B2,Walker,30.00,3\n"

func TestRun_ExitImmediately(t *testing.T) {
	sh, out, _ := newTestShell(t, "", "8\n")
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("missing goodbye message in output:\n%s", out.String())
	}
}

func TestRun_ListEmptyInventory(t *testing.T) {
	sh, out, _ := newTestShell(t, "", "3\n\n8\n")
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "No shoes in inventory") {
		t.Errorf("missing empty inventory message:\n%s", out.String())
	}
}

func TestRun_LoadThenList(t *testing.T) {
	sh, out, _ := newTestShell(t, tiedFile, "1\n\n3\n\n8\n")
	sh.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, "Successfully loaded 2 shoes.") {
		t.Errorf("missing load confirmation:\n%s", text)
	}
	if !strings.Contains(text, "Runner") || !strings.Contains(text, "Walker") {
		t.Errorf("listing missing records:\n%s", text)
	}
	if !strings.Contains(text, "Total number of shoes: 2") {
		t.Errorf("missing total count:\n%s", text)
	}
}

func TestRun_InvalidMenuChoiceReprompts(t *testing.T) {
	sh, out, _ := newTestShell(t, "", "abc\n9\n8\n")
	sh.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, "Invalid input. Please enter a number.") {
		t.Errorf("missing non-numeric reprompt:\n%s", text)
	}
	if !strings.Contains(text, "Please enter a number between 1 and 8.") {
		t.Errorf("missing out-of-range reprompt:\n%s", text)
	}
}

func TestRun_AddFlowRepromptsBadCostAndQuantity(t *testing.T) {
	// Cost "abc" and "-5" rejected before "20"; quantity "1.5" rejected before "4".
	input := "1\n\n2\nUK\nD4\nLoafer\nabc\n-5\n20\n1.5\n4\n\n8\n"
	sh, out, svc := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "Shoe added successfully!") {
		t.Fatalf("add did not succeed:\n%s", out.String())
	}
	if svc.Count() != 3 {
		t.Errorf("Count() = %d, want 3", svc.Count())
	}
}

func TestRun_AddRejectsDuplicateCodeAtEntry(t *testing.T) {
	input := "1\n\n2\nUK\na1\n\n8\n"
	sh, out, svc := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("missing duplicate code message:\n%s", out.String())
	}
	if svc.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (unchanged)", svc.Count())
	}
}

func TestRun_RestockPresentsBothTiedRecords(t *testing.T) {
	// Select index 1, confirm, add 5.
	input := "1\n\n4\n1\nyes\n5\n\n8\n"
	sh, out, svc := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, "Runner") || !strings.Contains(text, "Walker") {
		t.Fatalf("both tied records should be shown:\n%s", text)
	}
	if !strings.Contains(text, "New quantity: 8") {
		t.Errorf("missing restock confirmation:\n%s", text)
	}

	all := svc.All()
	if all[1].Quantity != 8 || all[0].Quantity != 3 {
		t.Errorf("quantities = %d, %d; want 3, 8", all[0].Quantity, all[1].Quantity)
	}
}

func TestRun_RestockCancelSentinelLeavesStoreUntouched(t *testing.T) {
	input := "1\n\n4\n-1\n\n8\n"
	sh, out, svc := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "Restock operation cancelled.") {
		t.Errorf("missing cancel message:\n%s", out.String())
	}
	for _, shoe := range svc.All() {
		if shoe.Quantity != 3 {
			t.Errorf("quantity mutated on cancel: %+v", shoe)
		}
	}
}

func TestRun_RestockDecliningConfirmationAborts(t *testing.T) {
	input := "1\n\n4\n0\nno\n\n8\n"
	sh, _, svc := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	for _, shoe := range svc.All() {
		if shoe.Quantity != 3 {
			t.Errorf("quantity mutated after declined confirmation: %+v", shoe)
		}
	}
}

func TestRun_RestockSingleCandidateAutoSelected(t *testing.T) {
	content := "Country,Code,Product,Cost,Quantity\n" +
		"US,A1,Runner,50,9\n" +
		"CN,B2,Walker,30,2\n"
	// No index prompt expected; straight to confirmation.
	input := "1\n\n4\nyes\n3\n\n8\n"
	sh, out, svc := newTestShell(t, content, input)
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "New quantity: 5") {
		t.Errorf("missing restock confirmation:\n%s", out.String())
	}
	if svc.All()[1].Quantity != 5 {
		t.Errorf("Walker quantity = %d, want 5", svc.All()[1].Quantity)
	}
}

func TestRun_SearchLowercaseMatchesUppercaseCode(t *testing.T) {
	input := "1\n\n5\na1\n\n8\n"
	sh, out, _ := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, "=== Search Results ===") || !strings.Contains(text, "Runner") {
		t.Errorf("search for a1 should find the A1 record:\n%s", text)
	}
}

func TestRun_SearchNoMatchReported(t *testing.T) {
	input := "1\n\n5\nZZ\n\n8\n"
	sh, out, _ := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "No shoes found with code 'ZZ'") {
		t.Errorf("missing no-match message:\n%s", out.String())
	}
}

func TestRun_ValuationShowsTotalAndChart(t *testing.T) {
	content := "Country,Code,Product,Cost,Quantity\n" +
		"US,A1,Runner,50.00,3\n" + // 150
		"CN,B2,Walker,30.00,7\n" + // 210
		"UK,D4,Loafer,20.00,2\n" // 40
	input := "1\n\n6\n\n8\n"
	sh, out, _ := newTestShell(t, content, input)
	sh.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, "Total inventory value: $400.00") {
		t.Errorf("missing total:\n%s", text)
	}
	if !strings.Contains(text, "Items by Value") || !strings.Contains(text, "█") {
		t.Errorf("chart expected with 3 records:\n%s", text)
	}
}

func TestRun_ValuationNoChartBelowThreeRecords(t *testing.T) {
	input := "1\n\n6\n\n8\n"
	sh, out, _ := newTestShell(t, tiedFile, input)
	sh.Run(context.Background())

	if strings.Contains(out.String(), "Items by Value") {
		t.Errorf("chart should not render for fewer than 3 records:\n%s", out.String())
	}
}

func TestRun_HighestQuantity(t *testing.T) {
	content := "Country,Code,Product,Cost,Quantity\n" +
		"US,A1,Runner,50,7\n" +
		"CN,B2,Walker,30,7\n"
	input := "1\n\n7\n\n8\n"
	sh, out, _ := newTestShell(t, content, input)
	sh.Run(context.Background())

	if !strings.Contains(out.String(), "Runner (Code: A1) is for sale!") {
		t.Errorf("first max should win the tie:\n%s", out.String())
	}
}
