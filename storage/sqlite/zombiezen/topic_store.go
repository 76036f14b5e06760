package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/annot/storage"
	"github.com/revelaction/annot/topic"
)

type TopicStore struct {
	pool *sqlitex.Pool
}

var _ storage.TopicRepository = (*TopicStore)(nil)

func NewTopicStore(pool *sqlitex.Pool) *TopicStore {
	return &TopicStore{pool: pool}
}

func (h *TopicStore) All() (topic.Library, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	topics := topic.Library{}
	err = sqlitex.Execute(conn, "SELECT name, exprs FROM topics ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var exprs []topic.TopicExpr
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &exprs); err != nil {
				return err
			}

			topics = append(topics, topic.Assemble(stmt.ColumnText(0), exprs))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return topics, nil
}

func (h *TopicStore) Names() ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	names := []string{}
	err = sqlitex.Execute(conn, "SELECT name FROM topics ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (h *TopicStore) Topic(name string) (topic.Topic, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return topic.Topic{}, err
	}
	defer h.pool.Put(conn)

	var t topic.Topic
	found := false
	err = sqlitex.Execute(conn, "SELECT exprs FROM topics WHERE name = ?", &sqlitex.ExecOptions{
		Args: []any{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var exprs []topic.TopicExpr
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &exprs); err != nil {
				return err
			}

			t = topic.Assemble(name, exprs)
			found = true
			return nil
		},
	})
	if err != nil {
		return topic.Topic{}, err
	}

	if !found {
		return topic.Topic{}, fmt.Errorf("topic %s: %w", name, storage.ErrNotFound)
	}

	return t, nil
}

func (h *TopicStore) Write(tp topic.Topic) error {
	if tp.Name == "" {
		return fmt.Errorf("invalid topic name %q", tp.Name)
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	exprsJSON, err := json.Marshal(tp.Exprs)
	if err != nil {
		return err
	}

	return sqlitex.Execute(conn, `
		INSERT INTO topics (name, exprs, updated)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		ON CONFLICT(name) DO UPDATE SET
			exprs = excluded.exprs,
			updated = excluded.updated
	`, &sqlitex.ExecOptions{
		Args: []any{tp.Name, string(exprsJSON)},
	})
}
