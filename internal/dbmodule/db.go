// Package dbmodule exposes SQL database connectivity as native builtin
// functions a host program registers with internal/refdispatch, wiring
// the driver stack the teacher carries for its own database module:
// sqlite (both cgo and pure-Go), PostgreSQL, MySQL, and SQL Server.
//
// Grounded on internal/database/db_manager.go's DBManager: same
// id-keyed connection map, same driver-name resolution switch, same
// connection-pool tuning on Open. Query/Execute/Close/CloseAll follow
// db_manager.go's method bodies, adapted to speak code.Value instead of
// interface{} so results can be pushed straight onto a Frame's operand
// stack.
package dbmodule

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"pkvm/internal/code"
	"pkvm/internal/value"
)

// Conn is an active database connection tracked by id.
type Conn struct {
	ID       string
	Type     string
	DB       *sql.DB
	DSN      string
	Created  time.Time
	LastUsed time.Time
}

// Manager owns a set of named database connections.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*Conn
}

// NewManager constructs an empty connection manager.
func NewManager() *Manager {
	return &Manager{connections: make(map[string]*Conn)}
}

// driverFor resolves a short type name to a registered database/sql
// driver name. "sqlite" picks the pure-Go modernc.org/sqlite driver;
// "sqlite3" picks the cgo mattn/go-sqlite3 driver. Both are wired so an
// embedder can choose based on its CGO_ENABLED constraints.
func driverFor(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlserver", "mssql":
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("dbmodule: unsupported database type %q", dbType)
	}
}

// Connect opens a new connection registered under id.
func (m *Manager) Connect(id, dbType, dsn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.connections[id]; exists {
		return fmt.Errorf("dbmodule: connection %q already exists", id)
	}

	driverName, err := driverFor(dbType)
	if err != nil {
		return err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("dbmodule: failed to open %q: %w", dbType, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("dbmodule: failed to ping %q: %w", dbType, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	now := time.Now()
	m.connections[id] = &Conn{ID: id, Type: dbType, DB: db, DSN: dsn, Created: now, LastUsed: now}
	return nil
}

func (m *Manager) get(id string) (*Conn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conn, ok := m.connections[id]
	if !ok {
		return nil, fmt.Errorf("dbmodule: connection %q not found", id)
	}
	return conn, nil
}

// Execute runs a statement that doesn't return rows, returning the
// number of rows affected as a value.Int.
func (m *Manager) Execute(id, query string, args ...interface{}) (code.Value, error) {
	conn, err := m.get(id)
	if err != nil {
		return nil, err
	}
	conn.LastUsed = time.Now()

	result, err := conn.DB.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("dbmodule: exec failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	return value.Int(affected), nil
}

// Query runs a query and returns each row as a map of column name to
// value.Value.
func (m *Manager) Query(id, query string, args ...interface{}) ([]map[string]code.Value, error) {
	conn, err := m.get(id)
	if err != nil {
		return nil, err
	}
	conn.LastUsed = time.Now()

	rows, err := conn.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("dbmodule: query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]code.Value
	scanned := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range scanned {
		ptrs[i] = &scanned[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]code.Value, len(columns))
		for i, col := range columns {
			row[col] = toValue(scanned[i])
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// QueryOne runs a query and returns its first row, or an error if it
// returned no rows. Rows after the first are ignored.
func (m *Manager) QueryOne(id, query string, args ...interface{}) (map[string]code.Value, error) {
	rows, err := m.Query(id, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dbmodule: query returned no rows")
	}
	return rows[0], nil
}

// Close closes and forgets the connection registered under id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.connections[id]
	if !ok {
		return fmt.Errorf("dbmodule: connection %q not found", id)
	}
	delete(m.connections, id)
	return conn.DB.Close()
}

// CloseAll closes every tracked connection, continuing past individual
// close errors (matching db_manager.go's CloseAll behavior).
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var firstErr error
	for id, conn := range m.connections {
		if err := conn.DB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("dbmodule: closing %q: %w", id, err)
		}
	}
	m.connections = make(map[string]*Conn)
	return firstErr
}

// toValue converts a database/sql scan result into a core value.Value.
func toValue(v interface{}) code.Value {
	switch t := v.(type) {
	case nil:
		return value.None
	case []byte:
		return value.NewStr(string(t))
	case string:
		return value.NewStr(t)
	case int64:
		return value.Int(t)
	case float64:
		return value.Float(t)
	case bool:
		return value.Bool(t)
	case time.Time:
		return value.NewStr(t.Format(time.RFC3339))
	default:
		return value.NewStr(fmt.Sprintf("%v", t))
	}
}
