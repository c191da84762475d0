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
	"github.com/lib/pq"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

const bidColumns = "bids.id, bids.gig_id, bids.freelancer_id, bids.message, bids.bid_price, " +
	"bids.status, bids.created_at, bids.updated_at, " +
	"users.name, users.email, gigs.title, gigs.budget, gigs.status"

func scanBid(row squirrel.RowScanner) (*entity.Bid, error) {
	var bid entity.Bid
	var createdAt, updatedAt time.Time
	err := row.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.Message, &bid.BidPrice,
		&bid.Status, &createdAt, &updatedAt,
		&bid.FreelancerName, &bid.FreelancerEmail, &bid.GigTitle, &bid.GigBudget, &bid.GigStatus)
	if err != nil {
		return &bid, err
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)
	bid.UpdatedAt = updatedAt.Format(time.RFC3339)

	return &bid, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}

// CreateBid inserts the bid and bumps the gig's counter in one
// transaction. The counter update is a single SQL increment guarded by
// status = open, so bid_count stays exact under concurrent bidders and a
// gig assigned after the service's precondition read refuses the bid.
func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	gigId, err := uuid.Parse(input.GigId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	freelancerId, err := uuid.Parse(input.FreelancerId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	incrementCountSql, args, _ := r.SqlBuilder.
		Update("gigs").
		Set("bid_count", squirrel.Expr("bid_count + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", gigId).
		Where("status = ?", common.GigOpen).
		ToSql()

	result, err := tx.ExecContext(ctx, incrementCountSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, repo_errors.ErrConflict
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bids").
		Columns("gig_id", "freelancer_id", "message", "bid_price", "status").
		Values(gigId, freelancerId, input.Message, input.BidPrice, common.BidPending).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	if err := tx.QueryRowContext(ctx, createBidSql, args...).Scan(&bidId); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		if isUniqueViolation(err) {
			return uuid.Nil, repo_errors.ErrDuplicate
		}

		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bids").
		InnerJoin("users on users.id = bids.freelancer_id").
		InnerJoin("gigs on gigs.id = bids.gig_id").
		Where("bids.id = ?", uuidForm).
		ToSql()

	bid, err := scanBid(r.Database.QueryRowContext(ctx, getBidSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return bid, nil
}

func (r *BidRepo) GetGigBids(ctx context.Context, gigId string) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(gigId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getGigBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bids").
		InnerJoin("users on users.id = bids.freelancer_id").
		InnerJoin("gigs on gigs.id = bids.gig_id").
		Where("bids.gig_id = ?", uuidForm).
		OrderBy("bids.created_at DESC").
		ToSql()

	return r.queryBids(ctx, getGigBidsSql, args)
}

func (r *BidRepo) GetUserBids(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(freelancerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getUserBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bids").
		InnerJoin("users on users.id = bids.freelancer_id").
		InnerJoin("gigs on gigs.id = bids.gig_id").
		Where("bids.freelancer_id = ?", uuidForm).
		OrderBy("bids.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryBids(ctx, getUserBidsSql, args)
}

func (r *BidRepo) queryBids(ctx context.Context, sqlReq string, args []interface{}) ([]entity.Bid, error) {
	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, *bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

// DeleteBidById withdraws a still-pending bid. Delete and counter
// decrement share a transaction so a reader never sees one without the
// other, and a second withdrawal of the same bid matches zero rows
// instead of double-decrementing.
func (r *BidRepo) DeleteBidById(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	deleteBidSql, args, _ := r.SqlBuilder.
		Delete("bids").
		Where("id = ?", uuidForm).
		Where("status = ?", common.BidPending).
		Suffix("RETURNING gig_id").
		ToSql()

	var gigId uuid.UUID
	if err := tx.QueryRowContext(ctx, deleteBidSql, args...).Scan(&gigId); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrConflict
		}

		return err
	}

	decrementCountSql, args, _ := r.SqlBuilder.
		Update("gigs").
		Set("bid_count", squirrel.Expr("bid_count - 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", gigId).
		ToSql()

	if _, err := tx.ExecContext(ctx, decrementCountSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

// HireBid is the serialization point of the hiring transition. The
// gig's open→assigned write is conditional on it still being open: of
// two concurrent hires on the same gig exactly one update matches a row
// and commits, the other sees zero rows and gets ErrConflict.
func (r *BidRepo) HireBid(ctx context.Context, gigId string, bidId string) error {
	gigUuid, err := uuid.Parse(gigId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	bidUuid, err := uuid.Parse(bidId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	assignGigSql, args, _ := r.SqlBuilder.
		Update("gigs").
		Set("status", common.GigAssigned).
		Set("selected_bid_id", bidUuid).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", gigUuid).
		Where("status = ?", common.GigOpen).
		ToSql()

	if err := execExpectingRow(ctx, tx, assignGigSql, args); err != nil {
		return err
	}

	hireBidSql, args, _ := r.SqlBuilder.
		Update("bids").
		Set("status", common.BidHired).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", bidUuid).
		Where("gig_id = ?", gigUuid).
		Where("status = ?", common.BidPending).
		ToSql()

	if err := execExpectingRow(ctx, tx, hireBidSql, args); err != nil {
		return err
	}

	return tx.Commit()
}

// execExpectingRow runs a conditional update inside tx and rolls the
// transaction back with ErrConflict when it matched nothing.
func execExpectingRow(ctx context.Context, tx *sql.Tx, sqlReq string, args []interface{}) error {
	result, err := tx.ExecContext(ctx, sqlReq, args...)
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

	return nil
}

// RejectCompetingBids finishes the hire: every other pending bid on the
// gig becomes rejected. Already-settled bids match nothing, so re-running
// after a partial failure converges on the same end state.
func (r *BidRepo) RejectCompetingBids(ctx context.Context, gigId string, winnerBidId string) (int64, error) {
	gigUuid, err := uuid.Parse(gigId)
	if err != nil {
		return 0, repo_errors.ErrNotFound
	}

	winnerUuid, err := uuid.Parse(winnerBidId)
	if err != nil {
		return 0, repo_errors.ErrNotFound
	}

	rejectSql, args, _ := r.SqlBuilder.
		Update("bids").
		Set("status", common.BidRejected).
		Set("updated_at", squirrel.Expr("now()")).
		Where("gig_id = ?", gigUuid).
		Where("id <> ?", winnerUuid).
		Where("status = ?", common.BidPending).
		ToSql()

	result, err := r.Database.ExecContext(ctx, rejectSql, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *BidRepo) GetUnsettledGigIds(ctx context.Context) ([]uuid.UUID, error) {
	unsettledSql, args, _ := r.SqlBuilder.
		Select("gigs.id").
		Distinct().
		From("gigs").
		InnerJoin("bids on bids.gig_id = gigs.id").
		Where("gigs.status = ?", common.GigAssigned).
		Where("bids.status = ?", common.BidPending).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, unsettledSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return ids, err
	}

	return ids, nil
}
