package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/ifacedoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ifacedoc.InterfaceService = (*InterfaceService)(nil)

// InterfaceService implements ifacedoc.InterfaceService using SQLite.
type InterfaceService struct {
	db *DB
}

// NewInterfaceService creates a new InterfaceService.
func NewInterfaceService(db *DB) *InterfaceService {
	return &InterfaceService{db: db}
}

// UpsertInterface creates or replaces an interface keyed by name. The old
// row is deleted inside the same transaction, which cascades to its
// properties and methods, so a re-crawl replaces rather than duplicates.
func (s *InterfaceService) UpsertInterface(ctx context.Context, iface *ifacedoc.Interface) error {
	if err := iface.Validate(); err != nil {
		return err
	}

	iface.ID = uuid.New().String()
	if iface.FetchedAt.IsZero() {
		iface.FetchedAt = time.Now().UTC()
	}

	hierarchy, err := json.Marshal(emptyAsSlice(iface.Hierarchy))
	if err != nil {
		return fmt.Errorf("failed to encode hierarchy: %w", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM interfaces WHERE name = ?", iface.Name); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO interfaces (id, name, category, description, role, hierarchy, is_collection, source_url, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, iface.ID, iface.Name, iface.Category, iface.Description, iface.Role, string(hierarchy),
		iface.IsCollection, iface.SourceURL, iface.ContentHash, iface.FetchedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, p := range iface.Properties {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO properties (id, interface_id, name, type, access, description, anchor, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), iface.ID, p.Name, p.Type, p.Access, p.Description, p.Anchor, i); err != nil {
			return err
		}
	}

	for i, m := range iface.Methods {
		params, err := json.Marshal(emptyAsSlice(m.Params))
		if err != nil {
			return fmt.Errorf("failed to encode params of %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO methods (id, interface_id, name, signature, description, return_type, params, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), iface.ID, m.Name, m.Signature, m.Description, m.ReturnType, string(params), i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindInterfaceByName retrieves a complete interface record with its
// properties and methods.
func (s *InterfaceService) FindInterfaceByName(ctx context.Context, name string) (*ifacedoc.Interface, error) {
	iface, err := s.scanInterface(s.db.QueryRowContext(ctx, `
		SELECT id, name, category, description, role, hierarchy, is_collection, source_url, content_hash, fetched_at
		FROM interfaces
		WHERE name = ?
	`, name))
	if err != nil {
		return nil, err
	}

	if err := s.attachMembers(ctx, iface); err != nil {
		return nil, err
	}

	return iface, nil
}

// FindInterfaces retrieves interfaces matching the filter, ordered by name.
func (s *InterfaceService) FindInterfaces(ctx context.Context, filter ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, category, description, role, hierarchy, is_collection, source_url, content_hash, fetched_at FROM interfaces WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Query != nil {
		query.WriteString(" AND (name LIKE ? OR description LIKE ? OR role LIKE ?)")
		pattern := "%" + *filter.Query + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Collection != nil {
		query.WriteString(" AND is_collection = ?")
		args = append(args, *filter.Collection)
	}

	query.WriteString(" ORDER BY name ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ifaces []*ifacedoc.Interface
	for rows.Next() {
		iface, err := s.scanInterface(rows)
		if err != nil {
			return nil, err
		}
		ifaces = append(ifaces, iface)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if err := s.attachMembers(ctx, iface); err != nil {
			return nil, err
		}
	}

	return ifaces, nil
}

// DeleteInterface permanently removes an interface and, via the foreign key
// cascade, everything it owns.
func (s *InterfaceService) DeleteInterface(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM interfaces WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ifacedoc.Errorf(ifacedoc.ENOTFOUND, "interface not found")
	}

	return nil
}

// DeleteAllInterfaces clears the store.
func (s *InterfaceService) DeleteAllInterfaces(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM interfaces")
	return err
}

// Stats returns record counts.
func (s *InterfaceService) Stats(ctx context.Context) (*ifacedoc.Stats, error) {
	var stats ifacedoc.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM interfaces),
			(SELECT COUNT(*) FROM properties),
			(SELECT COUNT(*) FROM methods),
			(SELECT COUNT(*) FROM interfaces WHERE is_collection)
	`).Scan(&stats.Interfaces, &stats.Properties, &stats.Methods, &stats.Collections)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *InterfaceService) scanInterface(row scanner) (*ifacedoc.Interface, error) {
	var iface ifacedoc.Interface
	var hierarchy, fetchedAt string

	err := row.Scan(&iface.ID, &iface.Name, &iface.Category, &iface.Description, &iface.Role,
		&hierarchy, &iface.IsCollection, &iface.SourceURL, &iface.ContentHash, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, ifacedoc.Errorf(ifacedoc.ENOTFOUND, "interface not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(hierarchy), &iface.Hierarchy); err != nil {
		return nil, fmt.Errorf("failed to decode hierarchy: %w", err)
	}
	if len(iface.Hierarchy) == 0 {
		iface.Hierarchy = nil
	}

	iface.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &iface, nil
}

// attachMembers loads the owned properties and methods in stored order.
func (s *InterfaceService) attachMembers(ctx context.Context, iface *ifacedoc.Interface) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, type, access, description, anchor
		FROM properties
		WHERE interface_id = ?
		ORDER BY position ASC
	`, iface.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ifacedoc.Property
		if err := rows.Scan(&p.Name, &p.Type, &p.Access, &p.Description, &p.Anchor); err != nil {
			return err
		}
		iface.Properties = append(iface.Properties, &p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT name, signature, description, return_type, params
		FROM methods
		WHERE interface_id = ?
		ORDER BY position ASC
	`, iface.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m ifacedoc.Method
		var params string
		if err := rows.Scan(&m.Name, &m.Signature, &m.Description, &m.ReturnType, &params); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(params), &m.Params); err != nil {
			return fmt.Errorf("failed to decode params of %s: %w", m.Name, err)
		}
		if len(m.Params) == 0 {
			m.Params = nil
		}
		iface.Methods = append(iface.Methods, &m)
	}
	return rows.Err()
}

// emptyAsSlice keeps nil slices encoding as [] rather than null.
func emptyAsSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
