package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Seeds the starter catalogue: three books with their authors and copy
// counts, two members, and one open loan against the first copy record
// (which is why it has 4 of 5 copies available).
func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			INSERT INTO authors (id, name) VALUES
				(1, 'Jon Skeet'),
				(2, 'Robert C. Martin'),
				(3, 'Microsoft Docs Team')
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			INSERT INTO books (id, title, description, author_id) VALUES
				(1, 'C# in Depth', 'Deep dive into C#', 1),
				(2, 'Clean Code', 'Code quality and best practices', 2),
				(3, 'ASP.NET Core Guide', 'Learn ASP.NET Core fundamentals', 3)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			INSERT INTO book_copies (id, book_id, total_copies, available_copies) VALUES
				(1, 1, 5, 4),
				(2, 2, 3, 3),
				(3, 3, 4, 4)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			INSERT INTO members (id, full_name, email) VALUES
				(1, 'Alice Walker', 'alice@example.com'),
				(2, 'John Carter', 'john@example.com')
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			INSERT INTO loans (id, borrow_date, due_date, returned, member_id, book_copy_id)
			VALUES (1, '2025-01-10 00:00:00+00:00', '2025-01-20 00:00:00+00:00', FALSE, 1, 1)
`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DELETE FROM loans WHERE id = 1`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`DELETE FROM members WHERE id IN (1, 2)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`DELETE FROM book_copies WHERE id IN (1, 2, 3)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`DELETE FROM books WHERE id IN (1, 2, 3)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`DELETE FROM authors WHERE id IN (1, 2, 3)`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
