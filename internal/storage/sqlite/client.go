package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/ai-bridge/backend/internal/storage/models"
	"github.com/ai-bridge/backend/pkg/logger"
	"github.com/ai-bridge/backend/pkg/utils"
)

var ErrVendorNotFound = errors.New("vendor not found")

// Client is the sqlite-backed vendor catalog. The catalog is read-only
// input to the matching engine; writes happen only at seed time.
type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite catalog initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vendors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		industries TEXT NOT NULL,
		specialties TEXT NOT NULL,
		price_min INTEGER NOT NULL,
		price_max INTEGER NOT NULL,
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_vendors_rating ON vendors(rating);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// ListVendors returns the whole catalog ordered by id so downstream scoring
// sees a stable input order.
func (c *Client) ListVendors(ctx context.Context) ([]models.VendorRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, industries, specialties, price_min, price_max,
		       rating, review_count, description, created_at, updated_at
		FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.VendorRecord
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vendors: %w", err)
	}

	return vendors, nil
}

func (c *Client) GetVendor(ctx context.Context, id string) (*models.VendorRecord, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, name, industries, specialties, price_min, price_max,
		       rating, review_count, description, created_at, updated_at
		FROM vendors WHERE id = ?`, id)

	vendor, err := scanVendor(row)
	if err == sql.ErrNoRows {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (c *Client) CountVendors(ctx context.Context) (int, error) {
	var count int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vendors").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return count, nil
}

// Fingerprint hashes the catalog's ids and update times, used as an ETag on
// the vendor list endpoint.
func (c *Client) Fingerprint(ctx context.Context) (string, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT id, updated_at FROM vendors ORDER BY id")
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint catalog: %w", err)
	}
	defer rows.Close()

	var sb strings.Builder
	for rows.Next() {
		var id string
		var updatedAt int64
		if err := rows.Scan(&id, &updatedAt); err != nil {
			return "", fmt.Errorf("failed to scan vendor row: %w", err)
		}
		fmt.Fprintf(&sb, "%s:%d;", id, updatedAt)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to iterate vendors: %w", err)
	}

	return utils.HashString(sb.String()), nil
}

// SeedVendors inserts the given vendors when the catalog is empty.
// Idempotent across restarts.
func (c *Client) SeedVendors(ctx context.Context, vendors []models.VendorRecord) error {
	count, err := c.CountVendors(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Catalog already seeded", zap.Int("vendors", count))
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, v := range vendors {
		industries, err := json.Marshal(v.Industries)
		if err != nil {
			return fmt.Errorf("failed to marshal industries: %w", err)
		}
		specialties, err := json.Marshal(v.Specialties)
		if err != nil {
			return fmt.Errorf("failed to marshal specialties: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO vendors (id, name, industries, specialties, price_min, price_max,
			                     rating, review_count, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Name, string(industries), string(specialties), v.PriceMin, v.PriceMax,
			v.Rating, v.ReviewCount, v.Description, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert vendor %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.Info("Vendor catalog seeded", zap.Int("vendors", len(vendors)))
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVendor(row rowScanner) (models.VendorRecord, error) {
	var v models.VendorRecord
	var industries, specialties string
	var description sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&v.ID, &v.Name, &industries, &specialties, &v.PriceMin, &v.PriceMax,
		&v.Rating, &v.ReviewCount, &description, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return v, err
	}
	if err != nil {
		return v, fmt.Errorf("failed to scan vendor: %w", err)
	}

	if err := json.Unmarshal([]byte(industries), &v.Industries); err != nil {
		return v, fmt.Errorf("failed to unmarshal industries: %w", err)
	}
	if err := json.Unmarshal([]byte(specialties), &v.Specialties); err != nil {
		return v, fmt.Errorf("failed to unmarshal specialties: %w", err)
	}
	v.Description = description.String
	v.CreatedAt = time.Unix(createdAt, 0).UTC()
	v.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return v, nil
}
