package devledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

//go:embed schema.sql
var schemaSQL string

const Network = "dev"

type Config struct {
	// Path is a file path or ":memory:".
	Path   string
	Logger *zap.Logger
	Now    func() time.Time
}

// Entry is one anchored fingerprint.
type Entry struct {
	Reference   string             `json:"reference"`
	Fingerprint rating.Fingerprint `json:"fingerprint"`
	Description string             `json:"description"`
	EntryID     string             `json:"entryId"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type Ledger struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

var (
	_ anchor.LedgerWriter = (*Ledger)(nil)
	_ anchor.LedgerReader = (*Ledger)(nil)
)

// Open creates or opens the ledger database and applies the schema.
func Open(config Config) (*Ledger, error) {
	path := strings.TrimSpace(config.Path)
	if path == "" {
		return nil, fmt.Errorf("ledger path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger database: %w", err)
	}

	// SQLite has a single writer; one connection also keeps :memory: alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply ledger schema: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Ledger{db: db, logger: logger.Named("devledger"), now: now}, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Submit stores fingerprint and returns its new reference.
func (l *Ledger) Submit(ctx context.Context, fingerprint rating.Fingerprint, description string) (string, error) {
	entryID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate entry ID: %w", err)
	}
	reference := entryReference(entryID, fingerprint)
	createdAt := l.now().UTC()

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO anchors (reference, fingerprint, description, entry_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		reference,
		fingerprint.Hex(),
		description,
		entryID.String(),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert anchor: %w", err)
	}

	l.logger.Debug("anchor stored", zap.String("reference", reference), zap.String("entry", entryID.String()))
	return reference, nil
}

// Resolve returns the fingerprint stored under reference.
func (l *Ledger) Resolve(ctx context.Context, reference string) (rating.Fingerprint, error) {
	entry, err := l.Get(ctx, reference)
	if err != nil {
		return rating.Fingerprint{}, err
	}
	return entry.Fingerprint, nil
}

// Get returns the full entry stored under reference.
func (l *Ledger) Get(ctx context.Context, reference string) (Entry, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT reference, fingerprint, description, entry_id, created_at FROM anchors WHERE reference = ?`,
		strings.ToLower(strings.TrimSpace(reference)),
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", anchor.ErrNotFound, reference)
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// FindByFingerprint lists every entry anchoring fingerprint, oldest first.
func (l *Ledger) FindByFingerprint(ctx context.Context, fingerprint rating.Fingerprint) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT reference, fingerprint, description, entry_id, created_at FROM anchors WHERE fingerprint = ? ORDER BY entry_id`,
		fingerprint.Hex(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query anchors: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read anchors: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		entry          Entry
		fingerprintHex string
		createdAt      string
	)
	if err := row.Scan(&entry.Reference, &fingerprintHex, &entry.Description, &entry.EntryID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("failed to scan anchor: %w", err)
	}

	fingerprint, err := rating.ParseFingerprint(fingerprintHex)
	if err != nil {
		return Entry{}, fmt.Errorf("corrupt anchor %s: %w", entry.Reference, err)
	}
	entry.Fingerprint = fingerprint

	entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("corrupt anchor %s: %w", entry.Reference, err)
	}

	return entry, nil
}

func entryReference(entryID uuid.UUID, fingerprint rating.Fingerprint) string {
	hash := sha256.New()
	hash.Write(entryID[:])
	hash.Write(fingerprint.Bytes())
	return hex.EncodeToString(hash.Sum(nil))
}
