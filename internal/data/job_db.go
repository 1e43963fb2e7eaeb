package data

import (
	"embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// Job — строка job_db: факторы роста HP/SP и базовая скорость атаки.
type Job struct {
	ID              int32  `yaml:"id"`
	Name            string `yaml:"name"`
	HPFactor        int32  `yaml:"hp_factor"`        // 1/100
	HPMultiplicator int32  `yaml:"hp_multiplicator"` // 1/100
	SPFactor        int32  `yaml:"sp_factor"`        // 1/100
	BaseAmotion     int32  `yaml:"base_amotion"`     // мс, без оружия

	// hpSigma[lv] — накопленный бонус HP за уровни 2..lv.
	hpSigma []int32
}

// JobDB — неизменяемая после загрузки таблица профессий.
type JobDB map[int32]*Job

// LoadJobDB загружает таблицу профессий. Пустой path — встроенная таблица.
// Вызывается при старте сервера (cmd/mapserver/main.go).
func LoadJobDB(path string) (JobDB, error) {
	raw, err := readTable(path, "tables/job_db.yaml")
	if err != nil {
		return nil, err
	}

	var rows []*Job
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parsing job_db: %w", err)
	}

	db := make(JobDB, len(rows))
	for _, j := range rows {
		if _, dup := db[j.ID]; dup {
			return nil, fmt.Errorf("job_db: duplicate job id %d", j.ID)
		}
		if j.BaseAmotion <= 0 {
			return nil, fmt.Errorf("job_db: job %d (%s): base_amotion must be positive", j.ID, j.Name)
		}
		j.buildSigma()
		db[j.ID] = j
	}

	slog.Info("loaded job table", "count", len(db))
	return db, nil
}

func (j *Job) buildSigma() {
	j.hpSigma = make([]int32, maxJobLevel+1)
	var acc int32
	for lv := int32(2); lv <= maxJobLevel; lv++ {
		acc += (j.HPFactor*lv + 50) / 100
		j.hpSigma[lv] = acc
	}
}

const maxJobLevel = 99

// BaseMaxHP — MaxHP персонажа до эффектов: 35 + lv*mult/100 + sigma, +1% за VIT.
func (j *Job) BaseMaxHP(level, vit int32) int32 {
	level = clampJobLevel(level)
	hp := int64(35) + int64(level)*int64(j.HPMultiplicator)/100
	if j.hpSigma != nil {
		hp += int64(j.hpSigma[level])
	}
	hp += hp * int64(vit) / 100
	return int32(hp)
}

// BaseMaxSP — MaxSP персонажа до эффектов: 10 + lv*factor/100, +1% за INT.
func (j *Job) BaseMaxSP(level, intel int32) int32 {
	level = clampJobLevel(level)
	sp := int64(10) + int64(level)*int64(j.SPFactor)/100
	sp += sp * int64(intel) / 100
	return int32(sp)
}

func clampJobLevel(level int32) int32 {
	if level < 1 {
		return 1
	}
	if level > maxJobLevel {
		return maxJobLevel
	}
	return level
}

// readTable читает файл-override или встроенную таблицу.
func readTable(path, embedded string) ([]byte, error) {
	if path == "" {
		raw, err := tablesFS.ReadFile(embedded)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", embedded, err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", path, err)
	}
	return raw, nil
}
