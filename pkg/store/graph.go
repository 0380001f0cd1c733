package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/graphdb"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/pkg/errors"
)

// Graph keeps the catalog in Neo4j. The borrower link is a BORROWED_BY edge.
// Labels are spliced into queries only from the closed models.Kind set; every
// value is passed as a parameter.
type Graph struct {
	db graphdb.Runner
}

func NewGraph(db graphdb.Runner) *Graph {
	return &Graph{db}
}

const booksQuery = `
MATCH (book:Book)
%s
OPTIONAL MATCH (book)-[:WRITTEN_BY]->(author:Author)
OPTIONAL MATCH (book)-[:PUBLISHED_BY]->(publisher:Publisher)
OPTIONAL MATCH (book)-[:OF_GENRE]->(genre:Genre)
OPTIONAL MATCH (book)-[:BORROWED_BY]->(borrower:Borrower)
RETURN book.id AS id,
	book.title AS title,
	book.description AS description,
	book.present AS present,
	book.borrowdate AS borrowdate,
	book.returndate AS returndate,
	book.borrower AS borrower,
	author.id AS author,
	author.name AS author_name,
	publisher.id AS publisher,
	publisher.name AS publisher_name,
	genre.id AS genre,
	genre.name AS genre_name,
	borrower.name AS borrower_name
ORDER BY book.id`

const mergeBorrowerQuery = `
MERGE (b:Borrower {name: $name})
ON CREATE SET b.id = $id
RETURN b.id AS id, b.name AS name`

const borrowBookQuery = `
MATCH (book:Book {id: $book_id})
MATCH (borrower:Borrower {name: $name})
OPTIONAL MATCH (book)-[old:BORROWED_BY]->(:Borrower)
DELETE old
WITH DISTINCT book, borrower
SET book.present = false,
	book.borrowdate = $borrow_date,
	book.returndate = $return_date,
	book.borrower = $name
CREATE (book)-[:BORROWED_BY]->(borrower)
RETURN book.id AS id`

const unlinkBookQuery = `
MATCH (book:Book {id: $book_id})-[r:BORROWED_BY]->(:Borrower)
DELETE r
RETURN count(r) AS deleted_count`

const resetBookQuery = `
MATCH (book:Book {id: $book_id})
SET book.present = true,
	book.borrowdate = null,
	book.returndate = null,
	book.borrower = null`

const unlinkAllQuery = `
MATCH (:Book)-[r:BORROWED_BY]->(:Borrower)
DELETE r
RETURN count(r) AS deleted_count`

func (g *Graph) ListBorrowers(ctx context.Context, filter Filter) ([]*models.BorrowerRef, error) {
	filter = filter.normalize()
	where, params := whereClause("borrower", filter)
	query := "MATCH (borrower:Borrower) " + where +
		" RETURN borrower.id AS id, borrower.name AS name ORDER BY borrower.name"

	records, err := g.db.Read(ctx, query, params)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	borrowers := make([]*models.BorrowerRef, 0, len(records))
	for _, rec := range records {
		borrowers = append(borrowers, borrowerFromRecord(rec))
	}
	return borrowers, nil
}

func (g *Graph) ListEntities(ctx context.Context, kind models.Kind, filter Filter) ([]*models.Entity, error) {
	filter = filter.normalize()
	if err := checkEntityKind(kind); err != nil {
		return nil, err
	}

	where, params := whereClause("e", filter)
	query := fmt.Sprintf("MATCH (e:%s) %s RETURN e.id AS id, e.name AS name, e.description AS description ORDER BY e.id", kind, where)

	records, err := g.db.Read(ctx, query, params)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	entities := make([]*models.Entity, 0, len(records))
	for _, rec := range records {
		entity := &models.Entity{Description: rec.String("description")}
		if id := rec.Int("id"); id != nil {
			entity.ID = *id
		}
		if name := rec.String("name"); name != nil {
			entity.Name = *name
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (g *Graph) GetBooks(ctx context.Context, filter Filter) ([]*models.BookRecord, error) {
	filter = filter.normalize()
	var where string
	params := map[string]any{}
	if filter.ID != nil {
		where = "WHERE book.id = $book_id"
		params["book_id"] = *filter.ID
	} else if filter.Name != nil {
		where = "WHERE book.title = $title"
		params["title"] = *filter.Name
	}

	records, err := g.db.Read(ctx, fmt.Sprintf(booksQuery, where), params)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	books := make([]*models.BookRecord, 0, len(records))
	for _, rec := range records {
		books = append(books, bookFromRecord(rec))
	}
	return books, nil
}

func (g *Graph) UpsertBorrower(ctx context.Context, name string) (*models.BorrowerRef, error) {
	var borrower *models.BorrowerRef
	err := g.db.Write(ctx, func(tx graphdb.Tx) error {
		var err error
		borrower, err = mergeBorrower(ctx, tx, name)
		return err
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return borrower, nil
}

func mergeBorrower(ctx context.Context, tx graphdb.Tx, name string) (*models.BorrowerRef, error) {
	records, err := tx.Run(ctx, mergeBorrowerQuery, map[string]any{
		"name": name,
		"id":   uuid.NewString(),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("borrower %q was not merged", name)
	}
	return borrowerFromRecord(records[0]), nil
}

func (g *Graph) SetBookBorrowed(ctx context.Context, params BorrowParams) error {
	return g.db.Write(ctx, func(tx graphdb.Tx) error {
		if _, err := mergeBorrower(ctx, tx, params.Name); err != nil {
			return err
		}

		records, err := tx.Run(ctx, borrowBookQuery, map[string]any{
			"book_id":     params.BookID,
			"name":        params.Name,
			"borrow_date": params.BorrowDate,
			"return_date": params.ReturnDate,
		})
		if err != nil {
			return errors.WithStack(err)
		}
		if len(records) == 0 {
			return errcodes.NotFound("Book")
		}
		return nil
	})
}

func (g *Graph) ClearBookBorrow(ctx context.Context, bookID int) (bool, error) {
	var deleted int64
	err := g.db.Write(ctx, func(tx graphdb.Tx) error {
		params := map[string]any{"book_id": bookID}

		records, err := tx.Run(ctx, unlinkBookQuery, params)
		if err != nil {
			return errors.WithStack(err)
		}
		if len(records) > 0 {
			deleted = records[0].Int64("deleted_count")
		}

		_, err = tx.Run(ctx, resetBookQuery, params)
		return errors.WithStack(err)
	})
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (g *Graph) DeleteAllBorrowerLinks(ctx context.Context) (int, error) {
	var deleted int64
	err := g.db.Write(ctx, func(tx graphdb.Tx) error {
		records, err := tx.Run(ctx, unlinkAllQuery, nil)
		if err != nil {
			return errors.WithStack(err)
		}
		if len(records) > 0 {
			deleted = records[0].Int64("deleted_count")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

func (g *Graph) LookupDescription(ctx context.Context, kind models.Kind, name string) (*string, error) {
	if err := checkDescribable(kind); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("MATCH (e:%s) WHERE e.%s = $name RETURN e.description AS description LIMIT 1", kind, kind.NameField())
	records, err := g.db.Read(ctx, query, map[string]any{"name": name})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(records) == 0 {
		return nil, errcodes.NotFound(string(kind))
	}
	return records[0].String("description"), nil
}

func (g *Graph) SaveDescription(ctx context.Context, kind models.Kind, name, description string) error {
	if err := checkDescribable(kind); err != nil {
		return err
	}

	query := fmt.Sprintf("MATCH (e:%s) WHERE e.%s = $name SET e.description = $description", kind, kind.NameField())
	return g.db.Write(ctx, func(tx graphdb.Tx) error {
		_, err := tx.Run(ctx, query, map[string]any{"name": name, "description": description})
		return errors.WithStack(err)
	})
}

func whereClause(variable string, filter Filter) (string, map[string]any) {
	params := map[string]any{}
	var conds []string
	if filter.ID != nil {
		conds = append(conds, variable+".id = $id")
		params["id"] = *filter.ID
	}
	if filter.Name != nil {
		conds = append(conds, variable+".name = $name")
		params["name"] = *filter.Name
	}

	switch len(conds) {
	case 0:
		return "", params
	case 1:
		return "WHERE " + conds[0], params
	default:
		return "WHERE " + conds[0] + " AND " + conds[1], params
	}
}

func borrowerFromRecord(rec graphdb.Record) *models.BorrowerRef {
	ref := &models.BorrowerRef{}
	if id := rec.String("id"); id != nil {
		ref.ID = *id
	}
	if name := rec.String("name"); name != nil {
		ref.Name = *name
	}
	return ref
}

func bookFromRecord(rec graphdb.Record) *models.BookRecord {
	book := &models.BookRecord{
		Description:   rec.String("description"),
		Present:       rec.Bool("present"),
		BorrowDate:    rec.String("borrowdate"),
		ReturnDate:    rec.String("returndate"),
		Borrower:      rec.String("borrower"),
		Author:        rec.Int("author"),
		AuthorName:    rec.String("author_name"),
		Publisher:     rec.Int("publisher"),
		PublisherName: rec.String("publisher_name"),
		Genre:         rec.Int("genre"),
		GenreName:     rec.String("genre_name"),
		BorrowerName:  rec.String("borrower_name"),
	}
	if id := rec.Int("id"); id != nil {
		book.ID = *id
	}
	if title := rec.String("title"); title != nil {
		book.Title = *title
	}
	return book
}
