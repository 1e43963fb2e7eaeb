package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mapcore/internal/model"
)

func TestLoadJobDB_Embedded(t *testing.T) {
	db, err := LoadJobDB("")
	require.NoError(t, err)

	novice, ok := db[0]
	require.True(t, ok, "novice must be present")
	assert.Equal(t, "Novice", novice.Name)

	knight := db[7]
	require.NotNil(t, knight)
	assert.Greater(t, knight.BaseMaxHP(50, 50), novice.BaseMaxHP(50, 50),
		"knight grows HP faster than novice")
}

func TestJob_BaseMaxHP(t *testing.T) {
	t.Parallel()

	j := &Job{ID: 1, HPFactor: 70, HPMultiplicator: 500, SPFactor: 200, BaseAmotion: 400}
	j.buildSigma()

	tests := []struct {
		name  string
		level int32
		vit   int32
		want  int32
	}{
		// 35 + 1*500/100 = 40
		{"level 1 no vit", 1, 0, 40},
		// 35 + 10 + sigma(2) where sigma(2) = (140+50)/100 = 1 → 46
		{"level 2", 2, 0, 46},
		// 40 + 40*10/100 = 44
		{"level 1 vit 10", 1, 10, 44},
		{"level clamped low", 0, 0, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, j.BaseMaxHP(tt.level, tt.vit))
		})
	}
}

func TestJob_BaseMaxSP(t *testing.T) {
	j := &Job{SPFactor: 600}
	// 10 + 10*600/100 = 70; +70*20/100 = 84
	assert.Equal(t, int32(84), j.BaseMaxSP(10, 20))
}

func TestLoadJobDB_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job_db.yaml")
	yml := `
- id: 0
  name: Novice
  hp_factor: 0
  hp_multiplicator: 500
  sp_factor: 100
  base_amotion: 500
- id: 0
  name: Dup
  base_amotion: 500
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	_, err := LoadJobDB(path)
	assert.ErrorContains(t, err, "duplicate job id 0")

	_, err = LoadJobDB(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSCConfig_Embedded(t *testing.T) {
	cfg, err := LoadSCConfig("")
	require.NoError(t, err)

	assert.True(t, cfg.Get(model.SCStone).Has(SCConfDebuff))
	assert.True(t, cfg.Get(model.SCBlessing).Has(SCConfBuff))
	assert.True(t, cfg.Get(model.SCNoChat).Has(SCConfNoRemDeath))
	assert.True(t, cfg.Get(model.SCBerserk).Has(SCConfNoSave))
	assert.True(t, cfg.Get(model.SCTrickDead).Has(SCConfNoWar))
	assert.False(t, cfg.Get(model.SCIncAgi).Has(SCConfNoDispel))

	for typ := range cfg {
		assert.True(t, typ.Valid(), "configured type %v must be valid", typ)
	}
}

func TestLoadSCConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
		want string
	}{
		{"unknown type", "SC_NOPE: [buff]\n", "SC_NOPE"},
		{"unknown flag", "SC_STUN: [sparkly]\n", "unknown flag"},
		{"buff and debuff", "SC_STUN: [buff, debuff]\n", "both buff and debuff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sc_config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yml), 0o600))

			_, err := LoadSCConfig(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSCConf_String(t *testing.T) {
	assert.Equal(t, "none", SCConf(0).String())
	assert.Equal(t, "buff|no_dispel", (SCConfBuff | SCConfNoDispel).String())
}
