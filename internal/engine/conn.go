package engine

import "database/sql"

// Conn and Tx narrow database/sql to what the apply engine needs, so tests
// can substitute a recording fake. Exactly one transaction is open on the
// target connection at a time.
type Conn interface {
	Begin() (Tx, error)
}

type Tx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Commit() error
	Rollback() error
}

type sqlConn struct {
	db *sql.DB
}

func (c *sqlConn) Begin() (Tx, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// NewConn wraps a *sql.DB as a Conn.
func NewConn(db *sql.DB) Conn {
	return &sqlConn{db: db}
}
