package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/akaufmanis/shoestore/internal/domain/models"
	repo "github.com/akaufmanis/shoestore/internal/repository/file"
)

// ErrDuplicateCode indicates an add would reuse an existing code.
var ErrDuplicateCode = errors.New("a shoe with this code already exists")

// ErrEmptyInventory indicates the operation needs at least one record.
var ErrEmptyInventory = errors.New("no shoes in inventory")

// ErrNoMatch indicates a search found no record with the given code.
var ErrNoMatch = errors.New("no shoe found with this code")

// ErrInvalidSelection indicates a restock position outside the sequence.
var ErrInvalidSelection = errors.New("selection is out of range")

// Service owns the ordered in-memory record sequence and implements the
// user-facing inventory operations over it.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger

	header string
	shoes  []models.Shoe
}

// NewService constructs an inventory service backed by the given repository.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repository,
		logger: logger,
		header: repo.DefaultHeader,
	}
}

// Load replaces the in-memory sequence with the file contents. The sequence
// is cleared even when the load fails, so a failed load never leaves stale
// records behind. Returns the number of records loaded.
func (s *Service) Load(ctx context.Context) (int, error) {
	s.shoes = nil

	snapshot, err := s.repo.Load(ctx)
	if snapshot.Header != "" {
		s.header = snapshot.Header
	}
	if err != nil {
		s.logger.Warn("inventory not loaded", zap.Error(err))
		return 0, err
	}

	s.shoes = snapshot.Shoes
	return len(s.shoes), nil
}

// HasCode reports whether any record already uses the code, ignoring case.
func (s *Service) HasCode(code string) bool {
	for _, shoe := range s.shoes {
		if shoe.MatchesCode(code) {
			return true
		}
	}
	return false
}

// Add appends a new record and persists the inventory. A duplicate code is
// rejected before anything changes. When the save fails the record stays in
// memory and the failure is returned.
func (s *Service) Add(ctx context.Context, shoe models.Shoe) error {
	if s.HasCode(shoe.Code) {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, shoe.Code)
	}

	s.shoes = append(s.shoes, shoe)

	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Info("shoe added",
		zap.String("code", shoe.Code),
		zap.String("product", shoe.Product),
		zap.Int("quantity", shoe.Quantity))
	return nil
}

// All returns a copy of the record sequence in presentation order.
func (s *Service) All() []models.Shoe {
	out := make([]models.Shoe, len(s.shoes))
	copy(out, s.shoes)
	return out
}

// Count returns the number of records currently held.
func (s *Service) Count() int {
	return len(s.shoes)
}

// At returns the record at the given sequence position.
func (s *Service) At(position int) (models.Shoe, error) {
	if position < 0 || position >= len(s.shoes) {
		return models.Shoe{}, ErrInvalidSelection
	}
	return s.shoes[position], nil
}

// LowestStocked returns the positions of every record tied at the minimum
// quantity, in sequence order. An empty inventory yields an empty slice.
func (s *Service) LowestStocked() []int {
	if len(s.shoes) == 0 {
		return nil
	}

	min := s.shoes[0].Quantity
	for _, shoe := range s.shoes[1:] {
		if shoe.Quantity < min {
			min = shoe.Quantity
		}
	}

	var positions []int
	for i, shoe := range s.shoes {
		if shoe.Quantity == min {
			positions = append(positions, i)
		}
	}
	return positions
}

// Restock adds quantity to the record at the given sequence position and
// persists the inventory.
func (s *Service) Restock(ctx context.Context, position, add int) (models.Shoe, error) {
	if position < 0 || position >= len(s.shoes) {
		return models.Shoe{}, ErrInvalidSelection
	}
	if add < 0 {
		return models.Shoe{}, models.ErrInvalidQuantity
	}

	s.shoes[position].Quantity += add
	shoe := s.shoes[position]

	if err := s.save(ctx); err != nil {
		return shoe, err
	}

	s.logger.Info("shoe restocked",
		zap.String("code", shoe.Code),
		zap.Int("added", add),
		zap.Int("quantity", shoe.Quantity))
	return shoe, nil
}

// Search returns every record whose code matches, ignoring case. Duplicate
// codes tolerated during a bulk load can yield more than one match.
func (s *Service) Search(code string) ([]models.Shoe, error) {
	if len(s.shoes) == 0 {
		return nil, ErrEmptyInventory
	}

	var found []models.Shoe
	for _, shoe := range s.shoes {
		if shoe.MatchesCode(code) {
			found = append(found, shoe)
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, code)
	}
	return found, nil
}

// Valuation returns the records sorted by value in non-increasing order
// (equal values keep their presentation order) and the total inventory value.
func (s *Service) Valuation() ([]models.Shoe, decimal.Decimal) {
	sorted := s.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value().GreaterThan(sorted[j].Value())
	})

	total := decimal.Zero
	for _, shoe := range sorted {
		total = total.Add(shoe.Value())
	}
	return sorted, total
}

// HighestStocked returns the record with the maximum quantity, first match
// winning on ties.
func (s *Service) HighestStocked() (models.Shoe, error) {
	if len(s.shoes) == 0 {
		return models.Shoe{}, ErrEmptyInventory
	}

	best := 0
	for i, shoe := range s.shoes {
		if shoe.Quantity > s.shoes[best].Quantity {
			best = i
		}
	}
	return s.shoes[best], nil
}

func (s *Service) save(ctx context.Context) error {
	snapshot := repo.Snapshot{Header: s.header, Shoes: s.shoes}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.logger.Error("failed to save inventory", zap.Error(err))
		return err
	}
	return nil
}
