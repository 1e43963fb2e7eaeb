package main

import (
	"log/slog"

	"github.com/udisondev/mapcore/internal/model"
)

// logNotifier stands in for the client broadcast layer.
type logNotifier struct{}

func (logNotifier) StatusChanged(target *model.Entity, t model.SCType, icon int32, active bool, remaining int64, val1, _, _ int32) {
	slog.Debug("status changed",
		"target", target.ObjectID(),
		"type", t,
		"icon", icon,
		"active", active,
		"remaining", remaining,
		"val1", val1)
}

func (logNotifier) DisplayChanged(target *model.Entity, d model.Display) {
	slog.Debug("display changed",
		"target", target.ObjectID(),
		"opt1", d.Opt1,
		"opt2", d.Opt2,
		"opt3", d.Opt3,
		"option", d.Option)
}

func (logNotifier) Died(target, killer *model.Entity) {
	var killerID uint32
	if killer != nil {
		killerID = killer.ObjectID()
	}
	slog.Info("entity died", "target", target.ObjectID(), "killer", killerID)
}
