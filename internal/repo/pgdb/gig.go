package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"
	"gig-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type GigRepo struct {
	*postgres.Postgres
}

func NewGigRepo(pgdb *postgres.Postgres) *GigRepo {
	return &GigRepo{pgdb}
}

const gigColumns = "gigs.id, gigs.title, gigs.description, gigs.budget, gigs.owner_id, " +
	"users.name, users.email, gigs.status, gigs.selected_bid_id, gigs.bid_count, " +
	"gigs.created_at, gigs.updated_at"

func scanGig(row squirrel.RowScanner) (*entity.Gig, error) {
	var gig entity.Gig
	var createdAt, updatedAt time.Time
	err := row.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.OwnerId,
		&gig.OwnerName, &gig.OwnerEmail, &gig.Status, &gig.SelectedBidId, &gig.BidCount,
		&createdAt, &updatedAt)
	if err != nil {
		return &gig, err
	}
	gig.CreatedAt = createdAt.Format(time.RFC3339)
	gig.UpdatedAt = updatedAt.Format(time.RFC3339)

	return &gig, nil
}

func (r *GigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	ownerId, err := uuid.Parse(input.OwnerId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	createGigSql, args, _ := r.SqlBuilder.
		Insert("gigs").
		Columns("title", "description", "budget", "owner_id", "status", "bid_count").
		Values(input.Title, input.Description, input.Budget, ownerId, common.GigOpen, 0).
		Suffix("RETURNING id").
		ToSql()

	var gigId uuid.UUID
	if err := r.Database.QueryRowContext(ctx, createGigSql, args...).Scan(&gigId); err != nil {
		return uuid.Nil, err
	}

	return gigId, nil
}

func (r *GigRepo) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getGigSql, args, _ := r.SqlBuilder.
		Select(gigColumns).
		From("gigs").
		InnerJoin("users on users.id = gigs.owner_id").
		Where("gigs.id = ?", uuidForm).
		ToSql()

	gig, err := scanGig(r.Database.QueryRowContext(ctx, getGigSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return gig, nil
}

func (r *GigRepo) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	builder := r.SqlBuilder.
		Select(gigColumns).
		From("gigs").
		InnerJoin("users on users.id = gigs.owner_id").
		Where("gigs.status = ?", common.GigOpen)

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"gigs.title": pattern},
			squirrel.ILike{"gigs.description": pattern},
		})
	}

	getOpenGigsSql, args, _ := builder.
		OrderBy("gigs.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryGigs(ctx, getOpenGigsSql, args)
}

func (r *GigRepo) GetGigsByOwnerId(ctx context.Context, ownerId string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	uuidForm, err := uuid.Parse(ownerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getUserGigsSql, args, _ := r.SqlBuilder.
		Select(gigColumns).
		From("gigs").
		InnerJoin("users on users.id = gigs.owner_id").
		Where("gigs.owner_id = ?", uuidForm).
		OrderBy("gigs.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryGigs(ctx, getUserGigsSql, args)
}

func (r *GigRepo) queryGigs(ctx context.Context, sqlReq string, args []interface{}) ([]entity.Gig, error) {
	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gigs := make([]entity.Gig, 0)
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return gigs, err
		}
		gigs = append(gigs, *gig)
	}
	if err = rows.Err(); err != nil {
		return gigs, err
	}

	return gigs, nil
}

// UpdateGigById mutates title/description/budget while the gig is still
// open. The status guard makes a concurrent hire win cleanly: a gig
// assigned between the service's precondition read and this write is
// reported as ErrConflict, never silently overwritten.
func (r *GigRepo) UpdateGigById(ctx context.Context, id string, input *entity.UpdateGigInput) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	builder := r.SqlBuilder.
		Update("gigs").
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", uuidForm).
		Where("status = ?", common.GigOpen)

	if input.Title != "" {
		builder = builder.Set("title", input.Title)
	}
	if input.Description != "" {
		builder = builder.Set("description", input.Description)
	}
	if input.Budget > 0 {
		builder = builder.Set("budget", input.Budget)
	}

	updateGigSql, args, _ := builder.ToSql()
	result, err := r.Database.ExecContext(ctx, updateGigSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrConflict
	}

	return nil
}

// DeleteGigById removes an open gig and every bid referencing it in one
// transaction, so an interrupted delete never strands orphaned bids.
func (r *GigRepo) DeleteGigById(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	deleteBidsSql, args, _ := r.SqlBuilder.
		Delete("bids").
		Where("gig_id = ?", uuidForm).
		ToSql()

	if _, err := tx.ExecContext(ctx, deleteBidsSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	deleteGigSql, args, _ := r.SqlBuilder.
		Delete("gigs").
		Where("id = ?", uuidForm).
		Where("status = ?", common.GigOpen).
		ToSql()

	result, err := tx.ExecContext(ctx, deleteGigSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	return tx.Commit()
}
