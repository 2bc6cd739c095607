package render

import (
	"fmt"
	"io"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"capc/media"
)

// key addresses one cached word rendition. letters is zero for full words,
// size entries ignore it.
type key struct {
	style     string
	word      string
	tags      string
	lineState int
	wordState int
	letters   int
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS bitmaps (
	style      TEXT    NOT NULL,
	word       TEXT    NOT NULL,
	tags       TEXT    NOT NULL,
	line_state INTEGER NOT NULL,
	word_state INTEGER NOT NULL,
	letters    INTEGER NOT NULL,
	data       BLOB    NOT NULL,
	PRIMARY KEY (style, word, tags, line_state, word_state, letters)
);
CREATE TABLE IF NOT EXISTS sizes (
	style      TEXT    NOT NULL,
	word       TEXT    NOT NULL,
	tags       TEXT    NOT NULL,
	line_state INTEGER NOT NULL,
	word_state INTEGER NOT NULL,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	PRIMARY KEY (style, word, tags, line_state, word_state)
);
`

// store is the sqlite backing of the cache. A single connection, callers
// serialize access (each render worker owns its own Cache).
type store struct {
	conn *sqlite.Conn
}

func openStore(path string) (*store, error) {
	var (
		conn *sqlite.Conn
		err  error
	)
	if path == "" {
		conn, err = sqlite.OpenConn(":memory:", sqlite.OpenReadWrite, sqlite.OpenMemory)
	} else {
		conn, err = sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open render cache: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, cacheSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare render cache: %w", err)
	}
	return &store{conn: conn}, nil
}

func (s *store) close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("unable to close render cache: %w", err)
	}
	return nil
}

func (s *store) getBitmap(k key) (data []byte, found bool, err error) {
	err = sqlitex.Execute(s.conn,
		`SELECT data FROM bitmaps WHERE style=? AND word=? AND tags=? AND line_state=? AND word_state=? AND letters=?`,
		&sqlitex.ExecOptions{
			Args: []any{k.style, k.word, k.tags, k.lineState, k.wordState, k.letters},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				var err error
				data, err = io.ReadAll(stmt.ColumnReader(0))
				return err
			},
		})
	if err != nil {
		return nil, false, fmt.Errorf("unable to read cached bitmap: %w", err)
	}
	return data, found, nil
}

func (s *store) putBitmap(k key, data []byte) error {
	if data == nil {
		data = []byte{} // present but empty marks "no visual in this state"
	}
	err := sqlitex.Execute(s.conn,
		`INSERT OR REPLACE INTO bitmaps (style, word, tags, line_state, word_state, letters, data) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{k.style, k.word, k.tags, k.lineState, k.wordState, k.letters, data},
		})
	if err != nil {
		return fmt.Errorf("unable to store bitmap: %w", err)
	}
	return nil
}

func (s *store) getSize(k key) (size media.Size, found bool, err error) {
	err = sqlitex.Execute(s.conn,
		`SELECT width, height FROM sizes WHERE style=? AND word=? AND tags=? AND line_state=? AND word_state=?`,
		&sqlitex.ExecOptions{
			Args: []any{k.style, k.word, k.tags, k.lineState, k.wordState},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				size.Width = stmt.ColumnInt(0)
				size.Height = stmt.ColumnInt(1)
				return nil
			},
		})
	if err != nil {
		return media.Size{}, false, fmt.Errorf("unable to read cached size: %w", err)
	}
	return size, found, nil
}

func (s *store) putSize(k key, size media.Size) error {
	err := sqlitex.Execute(s.conn,
		`INSERT OR REPLACE INTO sizes (style, word, tags, line_state, word_state, width, height) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{k.style, k.word, k.tags, k.lineState, k.wordState, size.Width, size.Height},
		})
	if err != nil {
		return fmt.Errorf("unable to store size: %w", err)
	}
	return nil
}

// deleteStyle drops every entry recorded under the given digest. Used by the
// refresh policy before re-rendering.
func (s *store) deleteStyle(style string) error {
	for _, table := range []string{"bitmaps", "sizes"} {
		err := sqlitex.Execute(s.conn, `DELETE FROM `+table+` WHERE style=?`,
			&sqlitex.ExecOptions{Args: []any{style}})
		if err != nil {
			return fmt.Errorf("unable to clear %s: %w", table, err)
		}
	}
	return nil
}
