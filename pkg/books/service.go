package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/hondanabooks/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID    *int
	Title *string
}

type CreateBookOptions struct {
	Title       string
	Description string
	AuthorName  string
	TotalCopies int
}

type UpdateBookOptions struct {
	Title           string
	Description     string
	AuthorName      string
	TotalCopies     *int
	AvailableCopies *int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// RetrieveBook loads a single book with its author and copy rows. Title
// lookups are case-insensitive.
func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Relation("Copies")

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.Title != nil {
		q = q.Where("LOWER(b.title) = LOWER(?)", *opts.Title)
	}

	err := q.Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ListBooks returns every book with its author and copy rows, ordered by id.
func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book

	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Relation("Copies").
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// CreateBook reconciles a create request against the catalogue. A title that
// already exists (case-insensitive) is treated as a restock: both counters on
// the existing copy record are incremented by the requested amount. A new
// title creates the author (unless one matches case-insensitively), the book,
// and its copy record in one transaction.
func (svc *Service) CreateBook(ctx context.Context, opts CreateBookOptions) (*models.Book, error) {
	existing, err := svc.RetrieveBook(ctx, RetrieveBookOptions{Title: &opts.Title})
	if err == nil {
		return svc.restockBook(ctx, existing, opts.TotalCopies)
	}
	if !errors.Is(err, errcodes.NotFound("Book")) {
		return nil, err
	}

	book := &models.Book{
		Title:       opts.Title,
		Description: opts.Description,
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		author, err := findOrCreateAuthor(ctx, tx, opts.AuthorName)
		if err != nil {
			return err
		}
		book.AuthorID = author.ID
		book.Author = author

		now := time.Now()
		book.CreatedAt = now
		book.UpdatedAt = now
		_, err = tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		bookCopy := &models.BookCopy{
			BookID:          book.ID,
			TotalCopies:     opts.TotalCopies,
			AvailableCopies: opts.TotalCopies,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		_, err = tx.
			NewInsert().
			Model(bookCopy).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		book.Copies = []*models.BookCopy{bookCopy}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return book, nil
}

// restockBook increments the existing copy record by the requested amount. A
// matched book without an author or copy record signals corrupted state and
// is reported rather than repaired.
func (svc *Service) restockBook(ctx context.Context, book *models.Book, amount int) (*models.Book, error) {
	if book.Author == nil {
		return nil, errcodes.DataIntegrity("Book exists but has no author record.")
	}
	if len(book.Copies) == 0 {
		return nil, errcodes.DataIntegrity("Book exists but has no copy record.")
	}

	bookCopy := book.Copies[0]
	bookCopy.TotalCopies += amount
	bookCopy.AvailableCopies += amount
	bookCopy.UpdatedAt = time.Now()

	_, err := svc.db.
		NewUpdate().
		Model(bookCopy).
		Column("total_copies", "available_copies", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// UpdateBook overwrites title/description/author and applies any supplied copy
// counters to the book's copy record. A book without a copy record gets one
// only when both counters are supplied.
func (svc *Service) UpdateBook(ctx context.Context, id int, opts UpdateBookOptions) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return nil, err
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		author, err := findOrCreateAuthor(ctx, tx, opts.AuthorName)
		if err != nil {
			return err
		}

		book.Title = opts.Title
		book.Description = opts.Description
		book.AuthorID = author.ID
		book.Author = author
		book.UpdatedAt = time.Now()

		_, err = tx.
			NewUpdate().
			Model(book).
			Column("title", "description", "author_id", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if len(book.Copies) > 0 {
			bookCopy := book.Copies[0]
			if opts.TotalCopies == nil && opts.AvailableCopies == nil {
				return nil
			}
			if opts.TotalCopies != nil {
				bookCopy.TotalCopies = *opts.TotalCopies
			}
			if opts.AvailableCopies != nil {
				bookCopy.AvailableCopies = *opts.AvailableCopies
			}
			bookCopy.UpdatedAt = book.UpdatedAt
			_, err = tx.
				NewUpdate().
				Model(bookCopy).
				Column("total_copies", "available_copies", "updated_at").
				WherePK().
				Exec(ctx)
			return errors.WithStack(err)
		}

		if opts.TotalCopies != nil && opts.AvailableCopies != nil {
			bookCopy := &models.BookCopy{
				BookID:          book.ID,
				TotalCopies:     *opts.TotalCopies,
				AvailableCopies: *opts.AvailableCopies,
				CreatedAt:       book.UpdatedAt,
				UpdatedAt:       book.UpdatedAt,
			}
			_, err = tx.
				NewInsert().
				Model(bookCopy).
				Returning("*").
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			book.Copies = []*models.BookCopy{bookCopy}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return book, nil
}

// SoftDelete zeroes the counters on every copy record the book owns. The book
// and author rows stay in place.
func (svc *Service) SoftDelete(ctx context.Context, id int) error {
	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return err
	}

	_, err = svc.db.
		NewUpdate().
		Model((*models.BookCopy)(nil)).
		Set("total_copies = 0").
		Set("available_copies = 0").
		Set("updated_at = ?", time.Now()).
		Where("book_id = ?", book.ID).
		Exec(ctx)
	return errors.WithStack(err)
}

// findOrCreateAuthor resolves an author by case-insensitive name match inside
// the caller's transaction, creating the row if no match exists.
func findOrCreateAuthor(ctx context.Context, tx bun.Tx, name string) (*models.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errcodes.ValidationError(`"authorName" is required`)
	}

	author := &models.Author{}
	err := tx.
		NewSelect().
		Model(author).
		Where("LOWER(a.name) = LOWER(?)", name).
		Limit(1).
		Scan(ctx)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	now := time.Now()
	author = &models.Author{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = tx.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return author, nil
}
