package db

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/mapcore/internal/model"
)

// SCDataRepository хранит статус-эффекты персонажей между сессиями (таблица sc_data).
// Реализует status.Persister.
type SCDataRepository struct {
	db *pgxpool.Pool
}

// NewSCDataRepository создаёт новый SCDataRepository.
func NewSCDataRepository(db *pgxpool.Pool) *SCDataRepository {
	return &SCDataRepository{db: db}
}

// SaveSC сохраняет эффекты персонажа (полная перезапись).
// Удаляет старые строки и вставляет новые в одной транзакции.
func (r *SCDataRepository) SaveSC(ctx context.Context, accountID, charID int64, rows []model.SCData) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// после Commit откат вернёт ErrTxClosed
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM sc_data WHERE account_id = $1 AND char_id = $2`,
		accountID, charID,
	); err != nil {
		return fmt.Errorf("deleting status changes of char %d: %w", charID, err)
	}

	for _, row := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sc_data (account_id, char_id, type, tick, val1, val2, val3, val4)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			accountID, charID, int16(row.Type), row.Tick, row.Val1, row.Val2, row.Val3, row.Val4,
		); err != nil {
			return fmt.Errorf("inserting status change %s of char %d: %w", row.Type, charID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing status changes of char %d: %w", charID, err)
	}
	return nil
}

// LoadSC читает и удаляет сохранённые эффекты персонажа.
// Строки отдаются по возрастанию типа; повторная загрузка вернёт пустой список.
func (r *SCDataRepository) LoadSC(ctx context.Context, accountID, charID int64) ([]model.SCData, error) {
	query := `
		DELETE FROM sc_data
		WHERE account_id = $1 AND char_id = $2
		RETURNING type, tick, val1, val2, val3, val4
	`

	rows, err := r.db.Query(ctx, query, accountID, charID)
	if err != nil {
		return nil, fmt.Errorf("loading status changes of char %d: %w", charID, err)
	}
	defer rows.Close()

	var out []model.SCData
	for rows.Next() {
		var (
			typ int16
			row model.SCData
		)
		if err := rows.Scan(&typ, &row.Tick, &row.Val1, &row.Val2, &row.Val3, &row.Val4); err != nil {
			return nil, fmt.Errorf("scanning status change row: %w", err)
		}
		row.Type = model.SCType(typ)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status change rows: %w", err)
	}

	slices.SortFunc(out, func(a, b model.SCData) int { return int(a.Type) - int(b.Type) })
	return out, nil
}
