package loans

import (
	"context"
	"database/sql"
	"time"

	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/hondanabooks/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type BorrowBookOptions struct {
	BookID   int
	MemberID int
}

type ListLoansOptions struct {
	MemberID *int
	Open     *bool
}

type Service struct {
	db         *bun.DB
	loanPeriod time.Duration
}

func NewService(db *bun.DB, loanPeriod time.Duration) *Service {
	return &Service{db, loanPeriod}
}

func (svc *Service) RetrieveLoan(ctx context.Context, id int) (*models.Loan, error) {
	loan := &models.Loan{}

	err := svc.db.
		NewSelect().
		Model(loan).
		Relation("Member").
		Relation("BookCopy").
		Relation("BookCopy.Book").
		Where("l.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Loan")
		}
		return nil, errors.WithStack(err)
	}

	return loan, nil
}

func (svc *Service) ListLoans(ctx context.Context, opts ListLoansOptions) ([]*models.Loan, error) {
	var loans []*models.Loan

	q := svc.db.
		NewSelect().
		Model(&loans).
		Relation("Member").
		Relation("BookCopy").
		Relation("BookCopy.Book").
		Order("l.borrow_date DESC")

	if opts.MemberID != nil {
		q = q.Where("l.member_id = ?", *opts.MemberID)
	}
	if opts.Open != nil {
		q = q.Where("l.returned = ?", !*opts.Open)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return loans, nil
}

// BorrowBook checks out one available copy of a book for a member. The copy's
// available counter and the new loan row move together in one transaction.
func (svc *Service) BorrowBook(ctx context.Context, opts BorrowBookOptions) (*models.Loan, error) {
	member := &models.Member{}
	err := svc.db.
		NewSelect().
		Model(member).
		Where("m.id = ?", opts.MemberID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Member")
		}
		return nil, errors.WithStack(err)
	}

	loan := &models.Loan{}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &models.Book{}
		err := tx.
			NewSelect().
			Model(book).
			Relation("Copies").
			Where("b.id = ?", opts.BookID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		var available *models.BookCopy
		for _, bookCopy := range book.Copies {
			if bookCopy.CanBorrow() {
				available = bookCopy
				break
			}
		}
		if available == nil {
			return errcodes.Conflict("No copies of this book are available to borrow.")
		}

		now := time.Now()
		available.AvailableCopies--
		available.UpdatedAt = now
		_, err = tx.
			NewUpdate().
			Model(available).
			Column("available_copies", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		loan.MemberID = member.ID
		loan.BookCopyID = available.ID
		loan.BorrowDate = now
		loan.DueDate = now.Add(svc.loanPeriod)
		loan.CreatedAt = now
		loan.UpdatedAt = now
		_, err = tx.
			NewInsert().
			Model(loan).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		loan.Member = member
		available.Book = book
		loan.BookCopy = available

		return nil
	})
	if err != nil {
		return nil, err
	}

	return loan, nil
}

// ReturnLoan closes an open loan and puts the copy back on the shelf.
func (svc *Service) ReturnLoan(ctx context.Context, id int) (*models.Loan, error) {
	loan, err := svc.RetrieveLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Returned {
		return nil, errcodes.Conflict("Loan has already been returned.")
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		loan.Returned = true
		loan.ReturnedDate = &now
		loan.UpdatedAt = now
		_, err := tx.
			NewUpdate().
			Model(loan).
			Column("returned", "returned_date", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.
			NewUpdate().
			Model((*models.BookCopy)(nil)).
			Set("available_copies = available_copies + 1").
			Set("updated_at = ?", now).
			Where("id = ?", loan.BookCopyID).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	if loan.BookCopy != nil {
		loan.BookCopy.AvailableCopies++
	}

	return loan, nil
}
