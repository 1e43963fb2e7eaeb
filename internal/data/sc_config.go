package data

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/mapcore/internal/model"
)

// SCConf — флаги конфигурации статус-эффекта (sc_config).
type SCConf uint16

const (
	SCConfNoRemDeath  SCConf = 1 << iota // не снимается при смерти
	SCConfNoSave                         // не сохраняется при выходе
	SCConfNoDispel                       // иммунен к Dispell
	SCConfNoClearance                    // иммунен к Clearance
	SCConfBuff                           // категория: бафф
	SCConfDebuff                         // категория: дебафф
	SCConfNoClear                        // переживает любой clear, кроме удаления существа
	SCConfVisible                        // виден другим игрокам
	SCConfNoWar                          // нельзя наложить в зоне войны
)

var scConfNames = map[string]SCConf{
	"no_rem_death": SCConfNoRemDeath,
	"no_save":      SCConfNoSave,
	"no_dispel":    SCConfNoDispel,
	"no_clearance": SCConfNoClearance,
	"buff":         SCConfBuff,
	"debuff":       SCConfDebuff,
	"no_clear":     SCConfNoClear,
	"visible":      SCConfVisible,
	"no_war":       SCConfNoWar,
}

// Has проверяет флаг.
func (c SCConf) Has(f SCConf) bool {
	return c&f != 0
}

func (c SCConf) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for name, f := range scConfNames {
		if c&f != 0 {
			parts = append(parts, name)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// SCConfig — флаги по типам эффектов. Неизменяема после загрузки.
type SCConfig map[model.SCType]SCConf

// Get возвращает флаги типа (0, если тип не сконфигурирован).
func (c SCConfig) Get(t model.SCType) SCConf {
	return c[t]
}

// LoadSCConfig загружает sc_config. Пустой path — встроенная таблица.
// Вызывается при старте сервера (cmd/mapserver/main.go).
func LoadSCConfig(path string) (SCConfig, error) {
	raw, err := readTable(path, "tables/sc_config.yaml")
	if err != nil {
		return nil, err
	}

	var rows map[string][]string
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parsing sc_config: %w", err)
	}

	cfg := make(SCConfig, len(rows))
	for name, flags := range rows {
		t, err := model.ParseSCType(name)
		if err != nil {
			return nil, fmt.Errorf("sc_config: %w", err)
		}

		var conf SCConf
		for _, f := range flags {
			bit, ok := scConfNames[strings.ToLower(f)]
			if !ok {
				return nil, fmt.Errorf("sc_config: %s: unknown flag %q", name, f)
			}
			conf |= bit
		}
		if conf.Has(SCConfBuff) && conf.Has(SCConfDebuff) {
			return nil, fmt.Errorf("sc_config: %s: both buff and debuff", name)
		}
		cfg[t] = conf
	}

	slog.Info("loaded sc_config", "count", len(cfg))
	return cfg, nil
}
