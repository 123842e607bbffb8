package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/models"
)

type outboxRepository struct {
	*DB
	logger *logger.Logger
}

func NewOutboxRepository(db *DB, logger *logger.Logger) OutboxRepository {
	return &outboxRepository{
		DB:     db,
		logger: logger,
	}
}

func (o *outboxRepository) Append(ctx context.Context, req models.PendingRequest) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertPendingRequestQuery(req)
	if err != nil {
		return fmt.Errorf("failed to build insert pending request query: %w", err)
	}

	if _, err = o.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Append").
			Str("id", req.ID).
			Str("endpoint", req.Endpoint).
			Msg("failed to append pending request")
		return fmt.Errorf("failed to append pending request (id=%s): %w", req.ID, err)
	}

	return nil
}

func (o *outboxRepository) NextPending(ctx context.Context, limit int) ([]models.PendingRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildNextPendingQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build next pending query: %w", err)
	}

	rows, err := o.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.NextPending").
			Msg("failed to query pending requests")
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	var items []models.PendingRequest
	for rows.Next() {
		item, scanErr := scanPendingRequest(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "outboxRepository.NextPending").
				Msg("failed to scan pending request row")
			return nil, fmt.Errorf("failed to scan pending request row: %w", scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending requests: %w", err)
	}

	return items, nil
}

func (o *outboxRepository) Remove(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRemovePendingQuery(id)
	if err != nil {
		return fmt.Errorf("failed to build remove pending query: %w", err)
	}

	res, err := o.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Remove").
			Str("id", id).
			Msg("failed to remove pending request")
		return fmt.Errorf("failed to remove pending request (id=%s): %w", id, err)
	}

	return checkAffected(res, id)
}

func (o *outboxRepository) MarkFailed(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkFailedQuery(id)
	if err != nil {
		return fmt.Errorf("failed to build mark failed query: %w", err)
	}

	res, err := o.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.MarkFailed").
			Str("id", id).
			Msg("failed to mark pending request as failed")
		return fmt.Errorf("failed to mark pending request failed (id=%s): %w", id, err)
	}

	return checkAffected(res, id)
}

func (o *outboxRepository) IncrementRetry(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildIncrementRetryQuery(id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to build increment retry query: %w", err)
	}

	res, err := o.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.IncrementRetry").
			Str("id", id).
			Msg("failed to increment retry count")
		return fmt.Errorf("failed to increment retry count (id=%s): %w", id, err)
	}

	return checkAffected(res, id)
}

func (o *outboxRepository) ListFailed(ctx context.Context) ([]models.PendingRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFailedQuery()
	if err != nil {
		return nil, fmt.Errorf("failed to build list failed query: %w", err)
	}

	rows, err := o.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.ListFailed").
			Msg("failed to query failed requests")
		return nil, fmt.Errorf("failed to query failed requests: %w", err)
	}
	defer rows.Close()

	var items []models.PendingRequest
	for rows.Next() {
		item, scanErr := scanPendingRequest(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan failed request row: %w", scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate failed requests: %w", err)
	}

	return items, nil
}

func (o *outboxRepository) CountPending(ctx context.Context) (int, error) {
	query, args, err := buildCountPendingQuery()
	if err != nil {
		return 0, fmt.Errorf("failed to build count pending query: %w", err)
	}

	var count int
	if err = o.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		o.logger.Err(err).
			Str("func", "outboxRepository.CountPending").
			Msg("failed to count pending requests")
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}

	return count, nil
}

func scanPendingRequest(rows *sql.Rows) (models.PendingRequest, error) {
	var (
		item   models.PendingRequest
		body   []byte
		status string
	)

	if err := rows.Scan(
		&item.ID,
		&item.Method,
		&item.Endpoint,
		&body,
		&item.CreatedAt,
		&item.RetryCount,
		&status,
		&item.LastRetryAt,
	); err != nil {
		return models.PendingRequest{}, err
	}

	if len(body) > 0 {
		item.Body = json.RawMessage(body)
	}
	item.Status = models.RequestStatus(status)

	return item, nil
}

func checkAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows (id=%s): %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("pending request (id=%s): %w", id, ErrNotFound)
	}
	return nil
}
