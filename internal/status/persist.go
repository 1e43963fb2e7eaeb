package status

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/mapcore/internal/data"
	"github.com/udisondev/mapcore/internal/model"
)

// SnapshotSC returns the rows SaveSC would store: every active entry not
// flagged no_save, with the remaining duration of its timer.
func (e *Engine) SnapshotSC(target *model.Entity) []model.SCData {
	if target == nil {
		return nil
	}
	var rows []model.SCData
	for _, t := range target.SC.Types() {
		if e.conf(t).Has(data.SCConfNoSave) {
			continue
		}
		sce := target.SC.Get(t)
		tick := model.InfiniteTick
		if !sce.Infinite {
			left, ok := e.timers.Remaining(sce.Timer)
			if !ok || left <= 0 {
				continue
			}
			tick = left
		}
		rows = append(rows, model.SCData{
			Type: t,
			Tick: tick,
			Val1: sce.Val1,
			Val2: sce.Val2,
			Val3: sce.Val3,
			Val4: sce.Val4,
		})
	}
	return rows
}

// SaveSC stores a player's effects. Other kinds are not persisted.
func (e *Engine) SaveSC(ctx context.Context, target *model.Entity) error {
	if target == nil || !target.IsPlayer() || e.persister == nil {
		return nil
	}
	rows := e.SnapshotSC(target)
	if err := e.persister.SaveSC(ctx, target.AccountID(), target.CharID(), rows); err != nil {
		return fmt.Errorf("save status of char %d: %w", target.CharID(), err)
	}
	slog.Debug("status saved", "char_id", target.CharID(), "rows", len(rows))
	return nil
}

// LoadSC restores a player's stored effects and returns how many started.
// Rows are deleted by the store once read. The entity must already be in the world.
func (e *Engine) LoadSC(ctx context.Context, target *model.Entity) (int, error) {
	if target == nil || !target.IsPlayer() || e.persister == nil {
		return 0, nil
	}
	rows, err := e.persister.LoadSC(ctx, target.AccountID(), target.CharID())
	if err != nil {
		return 0, fmt.Errorf("load status of char %d: %w", target.CharID(), err)
	}
	return e.RestoreSC(target, rows), nil
}

// RestoreSC starts stored rows with restore flags: no resistance, no
// duration reduction, values taken as stored.
func (e *Engine) RestoreSC(target *model.Entity, rows []model.SCData) int {
	n := 0
	for _, row := range rows {
		if _, ok := registry[row.Type]; !ok {
			slog.Warn("stored status of unknown type skipped", "type", row.Type, "target", target.ObjectID())
			continue
		}
		err := e.Start(nil, target, Request{
			Type:  row.Type,
			Rate:  RateAlways,
			Val1:  row.Val1,
			Val2:  row.Val2,
			Val3:  row.Val3,
			Val4:  row.Val4,
			Tick:  row.Tick,
			Flags: FlagsRestore,
		})
		if err != nil {
			slog.Warn("stored status not restored", "type", row.Type, "target", target.ObjectID(), "error", err)
			continue
		}
		n++
	}
	return n
}
