package db

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/udisondev/mapcore/internal/config"
	"github.com/udisondev/mapcore/internal/model"
)

// NewRedisClient подключается к Redis и проверяет соединение.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RedisSCDataRepository хранит статус-эффекты в Redis.
// Один hash на персонажа: sc_data:{account}:{char}, поле — тип эффекта,
// значение — JSON строки. Реализует status.Persister.
type RedisSCDataRepository struct {
	rdb *redis.Client
}

// NewRedisSCDataRepository создаёт новый RedisSCDataRepository.
func NewRedisSCDataRepository(rdb *redis.Client) *RedisSCDataRepository {
	return &RedisSCDataRepository{rdb: rdb}
}

type redisSCRow struct {
	Tick int64 `json:"tick"`
	Val1 int32 `json:"val1"`
	Val2 int32 `json:"val2"`
	Val3 int32 `json:"val3"`
	Val4 int32 `json:"val4"`
}

func scDataKey(accountID, charID int64) string {
	return fmt.Sprintf("sc_data:%d:%d", accountID, charID)
}

// SaveSC перезаписывает эффекты персонажа атомарно (MULTI/EXEC).
func (r *RedisSCDataRepository) SaveSC(ctx context.Context, accountID, charID int64, rows []model.SCData) error {
	fields := make([]any, 0, 2*len(rows))
	for _, row := range rows {
		data, err := json.Marshal(redisSCRow{
			Tick: row.Tick,
			Val1: row.Val1,
			Val2: row.Val2,
			Val3: row.Val3,
			Val4: row.Val4,
		})
		if err != nil {
			return fmt.Errorf("encoding status change %s: %w", row.Type, err)
		}
		fields = append(fields, strconv.Itoa(int(row.Type)), data)
	}

	key := scDataKey(accountID, charID)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving status changes of char %d: %w", charID, err)
	}
	return nil
}

// LoadSC читает и удаляет сохранённые эффекты персонажа одной транзакцией.
// Строки отдаются по возрастанию типа.
func (r *RedisSCDataRepository) LoadSC(ctx context.Context, accountID, charID int64) ([]model.SCData, error) {
	key := scDataKey(accountID, charID)

	var get *redis.MapStringStringCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGetAll(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading status changes of char %d: %w", charID, err)
	}

	var out []model.SCData
	for field, value := range get.Val() {
		typ, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("parsing status change type %q: %w", field, err)
		}
		var row redisSCRow
		if err := json.Unmarshal([]byte(value), &row); err != nil {
			return nil, fmt.Errorf("decoding status change %d: %w", typ, err)
		}
		out = append(out, model.SCData{
			Type: model.SCType(typ),
			Tick: row.Tick,
			Val1: row.Val1,
			Val2: row.Val2,
			Val3: row.Val3,
			Val4: row.Val4,
		})
	}

	slices.SortFunc(out, func(a, b model.SCData) int { return int(a.Type) - int(b.Type) })
	return out, nil
}
