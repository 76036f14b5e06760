package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/storage"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := "SELECT id, title, labels FROM docs ORDER BY id"
	var args []any
	if labelMatch != "" {
		query = `SELECT id, title, labels FROM docs
			WHERE EXISTS (SELECT 1 FROM doc_labels l WHERE l.doc_id = docs.id AND instr(l.label, ?) > 0)
			ORDER BY id`
		args = append(args, labelMatch)
	}

	var docs []sent.Doc
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: splitLabels(stmt.ColumnText(2)),
			}
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels, text FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			doc.Labels = splitLabels(stmt.ColumnText(1))
			doc.Text = stmt.ColumnText(2)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY sent_id", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var s sent.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &s); err != nil {
				return err
			}
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// FindCandidates uses the lemma index. The cursor is the sentence rowid.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onCandidate func(storage.Candidate) error) (storage.Cursor, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	// Build query dynamically based on number of lemmas and labels.
	// INTERSECT ensures that we only get sentence rowids that contain ALL lemmas.
	var queryBuilder strings.Builder
	args := []any{int64(after)}

	queryBuilder.WriteString("SELECT s.id, s.doc_id, s.data, d.title FROM sentences s JOIN docs d ON s.doc_id = d.id WHERE s.id > ?")

	if len(lemmas) > 0 {
		queryBuilder.WriteString(" AND s.id IN (")
		for i, lemma := range lemmas {
			if i > 0 {
				queryBuilder.WriteString(" INTERSECT ")
			}
			queryBuilder.WriteString("SELECT sentence_rowid FROM sentence_lemmas WHERE lemma = ?")
			args = append(args, lemma)
		}
		queryBuilder.WriteString(")")
	}

	for _, label := range labels {
		queryBuilder.WriteString(" AND s.doc_id IN (SELECT doc_id FROM doc_labels WHERE label = ?)")
		args = append(args, label)
	}

	if limit <= 0 {
		limit = -1
	}
	queryBuilder.WriteString(" ORDER BY s.id LIMIT ?")
	args = append(args, limit)

	newCursor := after
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowID := stmt.ColumnInt64(0)
			docID, err := safecast.Conv[int](stmt.ColumnInt64(1))
			if err != nil {
				return err
			}

			c := storage.Candidate{Pos: storage.Cursor(rowID), DocTitle: stmt.ColumnText(3)}
			if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &c.Sentence); err != nil {
				return err
			}
			c.Sentence.DocId = docID

			if err := onCandidate(c); err != nil {
				return err
			}
			newCursor = c.Pos
			return nil
		},
	})
	if err != nil {
		return newCursor, err
	}

	return newCursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := "SELECT DISTINCT label FROM doc_labels ORDER BY label"
	var args []any
	if pattern != "" {
		query = "SELECT DISTINCT label FROM doc_labels WHERE instr(label, ?) > 0 ORDER BY label"
		args = append(args, pattern)
	}

	labels := []string{}
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			labels = append(labels, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (h *DocStore) Write(doc sent.Doc) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	// Insert Doc
	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels, text) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []any{doc.Title, labels, doc.Text},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc: %w", err)
	}
	id, err = safecast.Conv[int](conn.LastInsertRowID())
	if err != nil {
		return 0, err
	}

	for _, label := range doc.Labels {
		err = sqlitex.Execute(conn, "INSERT OR IGNORE INTO doc_labels (label, doc_id) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []any{label, id},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert label: %w", err)
		}
	}

	for _, sentence := range doc.Sentences {
		sentence.DocId = id
		data, marshalErr := json.Marshal(sentence)
		if marshalErr != nil {
			return 0, marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{id, sentence.Id, string(data)},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		for _, lemma := range storage.Lemmas(sentence) {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []any{lemma, sentRowID},
			})
			if err != nil {
				return 0, fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return id, nil
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
