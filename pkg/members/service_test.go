package members

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/hondanabooks/hondana/pkg/migrations"
	"github.com/hondanabooks/hondana/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestServiceCreateMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member := &models.Member{
		FullName: "Ursula Franklin",
		Email:    "ursula@example.com",
	}
	err := svc.CreateMember(ctx, member)
	require.NoError(t, err)
	assert.NotZero(t, member.ID)

	fetched, err := svc.RetrieveMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ursula Franklin", fetched.FullName)
	assert.Equal(t, "ursula@example.com", fetched.Email)
}

func TestServiceRetrieveMember_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveMember(context.Background(), 999)
	require.ErrorIs(t, err, errcodes.NotFound("Member"))
}

func TestServiceListMembers_OrderedByName(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	members, err := svc.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice Walker", members[0].FullName)
	assert.Equal(t, "John Carter", members[1].FullName)
}

func TestServiceUpdateMember_OnlySuppliedColumns(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member, err := svc.RetrieveMember(ctx, 2)
	require.NoError(t, err)

	member.FullName = "John A. Carter"
	err = svc.UpdateMember(ctx, member, UpdateMemberOptions{Columns: []string{"full_name"}})
	require.NoError(t, err)

	fetched, err := svc.RetrieveMember(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "John A. Carter", fetched.FullName)
	assert.Equal(t, "john@example.com", fetched.Email)
}

func TestServiceDeleteMember_BlockedByOpenLoan(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.DeleteMember(ctx, 1)
	require.ErrorIs(t, err, errcodes.Conflict("Member has open loans and can't be deleted."))

	_, err = svc.RetrieveMember(ctx, 1)
	require.NoError(t, err)
}

func TestServiceDeleteMember_RemovesMemberAndLoanHistory(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.DeleteMember(ctx, 2)
	require.NoError(t, err)

	_, err = svc.RetrieveMember(ctx, 2)
	require.ErrorIs(t, err, errcodes.NotFound("Member"))
}

func TestServiceGetLoanCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	count, err := svc.GetLoanCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.GetLoanCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
