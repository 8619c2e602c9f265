package members

import (
	"context"
	"database/sql"
	"time"

	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/hondanabooks/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type UpdateMemberOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateMember(ctx context.Context, member *models.Member) error {
	now := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = member.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(member).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveMember(ctx context.Context, id int) (*models.Member, error) {
	member := &models.Member{}

	err := svc.db.
		NewSelect().
		Model(member).
		Where("m.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Member")
		}
		return nil, errors.WithStack(err)
	}

	return member, nil
}

func (svc *Service) ListMembers(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member

	err := svc.db.
		NewSelect().
		Model(&members).
		Order("m.full_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return members, nil
}

func (svc *Service) UpdateMember(ctx context.Context, member *models.Member, opts UpdateMemberOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	member.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(member).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Member")
		}
		return errors.WithStack(err)
	}
	return nil
}

// DeleteMember removes a member. Members with an open loan can't be deleted.
func (svc *Service) DeleteMember(ctx context.Context, memberID int) error {
	count, err := svc.db.NewSelect().
		Model((*models.Loan)(nil)).
		Where("member_id = ? AND returned = FALSE", memberID).
		Count(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if count > 0 {
		return errcodes.Conflict("Member has open loans and can't be deleted.")
	}

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.Loan)(nil)).
			Where("member_id = ?", memberID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Member)(nil)).
			Where("id = ?", memberID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// GetLoanCount returns the count of loans this member has ever taken out.
func (svc *Service) GetLoanCount(ctx context.Context, memberID int) (int, error) {
	count, err := svc.db.NewSelect().
		Model((*models.Loan)(nil)).
		Where("member_id = ?", memberID).
		Count(ctx)
	return count, errors.WithStack(err)
}
