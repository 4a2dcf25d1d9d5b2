package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/akaufmanis/shoestore/internal/domain/models"
)

// ErrFileNotFound indicates the inventory file does not exist yet.
var ErrFileNotFound = errors.New("inventory file not found")

// ErrEmptyFile indicates the inventory file exists but contains nothing.
var ErrEmptyFile = errors.New("inventory file is empty")

// ErrNoRecords indicates no line in the file survived parsing.
var ErrNoRecords = errors.New("no valid records in inventory file")

// ErrMalformedLine indicates a line did not split into the expected fields.
var ErrMalformedLine = errors.New("malformed inventory line")

const (
	// DefaultHeader is written when no file has ever been loaded.
	DefaultHeader = "Country,Code,Product,Cost,Quantity"

	delimiter  = ","
	fieldCount = 5
)

// Snapshot is the unit of a file round-trip: the verbatim header line plus
// the ordered record sequence.
type Snapshot struct {
	Header string
	Shoes  []models.Shoe
}

// Repository defines the persistence operations supported by the delimited
// file adapter.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// FileRepository implements Repository over a comma-delimited text file, with
// a best-effort backup copy taken before every overwrite.
type FileRepository struct {
	path       string
	backupPath string
	logger     *zap.Logger
}

// NewFileRepository builds a file backed repository instance.
func NewFileRepository(path, backupPath string, logger *zap.Logger) *FileRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileRepository{
		path:       path,
		backupPath: backupPath,
		logger:     logger,
	}
}

// Load reads the whole inventory file and parses every record line. Lines of
// the wrong shape or with invalid values are skipped with a warning; the load
// fails only when the file is missing, empty, or yields zero records.
func (r *FileRepository) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrFileNotFound, r.path)
		}
		return Snapshot{}, fmt.Errorf("read inventory file %s: %w", r.path, err)
	}

	lines := strings.Split(string(raw), "\n")
	if len(raw) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrEmptyFile, r.path)
	}

	snapshot := Snapshot{Header: strings.TrimSpace(lines[0])}

	for i, line := range lines[1:] {
		lineNumber := i + 2
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, delimiter)
		if len(parts) != fieldCount {
			r.logger.Warn("skipping malformed line",
				zap.Int("line", lineNumber),
				zap.String("content", line),
				zap.Error(ErrMalformedLine))
			continue
		}

		shoe, err := models.NewShoe(parts[0], parts[1], parts[2], parts[3], parts[4])
		if err != nil {
			r.logger.Warn("skipping invalid line",
				zap.Int("line", lineNumber),
				zap.String("content", line),
				zap.Error(err))
			continue
		}

		snapshot.Shoes = append(snapshot.Shoes, shoe)
	}

	if len(snapshot.Shoes) == 0 {
		return snapshot, fmt.Errorf("%w: %s", ErrNoRecords, r.path)
	}

	r.logger.Info("inventory loaded",
		zap.Int("records", len(snapshot.Shoes)),
		zap.String("path", r.path))
	return snapshot, nil
}

// Save copies the current file to the backup path (best effort, a failure is
// only a warning) and then overwrites the file with the snapshot.
func (r *FileRepository) Save(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.backup()

	header := snapshot.Header
	if header == "" {
		header = DefaultHeader
	}

	var builder strings.Builder
	builder.WriteString(header)
	builder.WriteByte('\n')
	for _, shoe := range snapshot.Shoes {
		fields := []string{
			shoe.Country,
			shoe.Code,
			shoe.Product,
			shoe.Cost.String(),
			strconv.Itoa(shoe.Quantity),
		}
		builder.WriteString(strings.Join(fields, delimiter))
		builder.WriteByte('\n')
	}

	if err := os.WriteFile(r.path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write inventory file %s: %w", r.path, err)
	}

	r.logger.Info("inventory saved",
		zap.Int("records", len(snapshot.Shoes)),
		zap.String("path", r.path))
	return nil
}

func (r *FileRepository) backup() {
	current, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn("could not read file for backup", zap.String("path", r.path), zap.Error(err))
		}
		return
	}

	if err := os.WriteFile(r.backupPath, current, 0o644); err != nil {
		r.logger.Warn("could not create backup file", zap.String("path", r.backupPath), zap.Error(err))
		return
	}

	r.logger.Info("backup created", zap.String("path", r.backupPath))
}
