// Package graphexport turns the relational catalog into an ordered list of
// Cypher statements that recreate it in the graph database.
package graphexport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/libgraph/libgraph/pkg/graphdb"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

// Statement is one step of the export. Query and Params are what gets sent to
// Neo4j; Text is the same statement with the values inlined, as written to
// the script.
type Statement struct {
	Kind   models.Kind
	Query  string
	Params map[string]any
	Text   string

	// Creates is the node this statement creates, Requires the nodes it
	// matches. Both use Ref.
	Creates  string
	Requires []string
}

// Ref identifies a node by label and relational id.
func Ref(kind models.Kind, id any) string {
	return fmt.Sprintf("%s:%v", kind, id)
}

const entityQuery = `CREATE (%s%d:%s {id: $id, name: $name, description: $description});`

const borrowerQuery = `CREATE (borrower%d:Borrower {id: $id, name: $name});`

const bookQuery = `
MATCH (author%[2]d:Author {id: $author_id})
MATCH (genre%[3]d:Genre {id: $genre_id})
MATCH (publisher%[4]d:Publisher {id: $publisher_id})
CREATE (book%[1]d:Book {id: $id, title: $title, description: $description, present: $present})
CREATE (book%[1]d)-[:WRITTEN_BY]->(author%[2]d)
CREATE (book%[1]d)-[:PUBLISHED_BY]->(publisher%[4]d)
CREATE (book%[1]d)-[:OF_GENRE]->(genre%[3]d);`

// sequence hands out graph ids for migrated borrowers, starting at zero.
type sequence struct {
	next int
}

func (s *sequence) take() int {
	id := s.next
	s.next++
	return id
}

type Exporter struct {
	db bun.IDB
}

func NewExporter(db bun.IDB) *Exporter {
	return &Exporter{db}
}

// Statements reads the relational tables and returns the statements in load
// order: genres, publishers, authors, borrowers, then books. Foreign keys are
// not checked here; a book pointing at a missing node fails at load time.
func (e *Exporter) Statements(ctx context.Context) ([]*Statement, error) {
	var stmts []*Statement

	var genres []*models.Genre
	if err := e.db.NewSelect().Model(&genres).Order("g.id ASC").Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, g := range genres {
		stmts = append(stmts, entityStatement(models.KindGenre, g.ID, g.Name, g.Description))
	}

	var publishers []*models.Publisher
	if err := e.db.NewSelect().Model(&publishers).Order("pub.id ASC").Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, p := range publishers {
		stmts = append(stmts, entityStatement(models.KindPublisher, p.ID, p.Name, p.Description))
	}

	var authors []*models.Author
	if err := e.db.NewSelect().Model(&authors).Order("a.id ASC").Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, a := range authors {
		stmts = append(stmts, entityStatement(models.KindAuthor, a.ID, a.Name, a.Description))
	}

	var borrowers []*models.Borrower
	if err := e.db.NewSelect().Model(&borrowers).Order("br.id ASC").Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	seq := &sequence{}
	for _, b := range borrowers {
		stmts = append(stmts, borrowerStatement(seq.take(), b.Name))
	}

	var books []*models.Book
	if err := e.db.NewSelect().Model(&books).Order("b.id ASC").Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, b := range books {
		stmts = append(stmts, bookStatement(b))
	}

	logger.FromContext(ctx).Info("export prepared", logger.Data{
		"genres":     len(genres),
		"publishers": len(publishers),
		"authors":    len(authors),
		"borrowers":  len(borrowers),
		"books":      len(books),
	})

	return stmts, nil
}

func entityStatement(kind models.Kind, id int, name string, description *string) *Statement {
	params := map[string]any{
		"id":          id,
		"name":        name,
		"description": nil,
	}
	if description != nil {
		params["description"] = *description
	}
	query := fmt.Sprintf(entityQuery, strings.ToLower(string(kind)), id, kind)
	return &Statement{
		Kind:    kind,
		Query:   query,
		Params:  params,
		Text:    render(query, params),
		Creates: Ref(kind, id),
	}
}

func borrowerStatement(id int, name string) *Statement {
	params := map[string]any{
		"id":   id,
		"name": name,
	}
	query := fmt.Sprintf(borrowerQuery, id)
	return &Statement{
		Kind:    models.KindBorrower,
		Query:   query,
		Params:  params,
		Text:    render(query, params),
		Creates: Ref(models.KindBorrower, id),
	}
}

func bookStatement(b *models.Book) *Statement {
	params := map[string]any{
		"id":           b.ID,
		"title":        b.Title,
		"description":  nil,
		"present":      b.Present,
		"author_id":    b.AuthorID,
		"genre_id":     b.GenreID,
		"publisher_id": b.PublisherID,
	}
	if b.Description != nil {
		params["description"] = *b.Description
	}
	query := fmt.Sprintf(bookQuery, b.ID, b.AuthorID, b.GenreID, b.PublisherID)
	return &Statement{
		Kind:    models.KindBook,
		Query:   query,
		Params:  params,
		Text:    render(query, params),
		Creates: Ref(models.KindBook, b.ID),
		Requires: []string{
			Ref(models.KindAuthor, b.AuthorID),
			Ref(models.KindGenre, b.GenreID),
			Ref(models.KindPublisher, b.PublisherID),
		},
	}
}

// WriteScript writes the rendered statements, one after another, to w.
func WriteScript(w io.Writer, stmts []*Statement) error {
	for _, s := range stmts {
		if _, err := io.WriteString(w, strings.TrimSpace(s.Text)+"\n"); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// WriteFile writes the script to path, creating its directory.
func WriteFile(path string, stmts []*Statement) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := WriteScript(f, stmts); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

// Load runs every statement against the graph in a single write
// transaction, so a failing statement leaves the graph untouched.
func Load(ctx context.Context, runner graphdb.Runner, stmts []*Statement) error {
	return runner.Write(ctx, func(tx graphdb.Tx) error {
		for i, s := range stmts {
			query := strings.TrimSuffix(strings.TrimSpace(s.Query), ";")
			if _, err := tx.Run(ctx, query, s.Params); err != nil {
				return errors.Wrapf(err, "statement %d (%s) failed", i+1, s.Creates)
			}
		}
		return nil
	})
}
