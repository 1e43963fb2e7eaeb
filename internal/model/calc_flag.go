package model

import "strings"

// CalcFlag — битовая маска групп производных статов, которые нужно
// пересчитать (dirty mask). Значения совпадают с SCB_* оригинального сервера.
type CalcFlag uint32

const (
	CalcNone   CalcFlag = 0
	CalcBase   CalcFlag = 0x00000001
	CalcMaxHP  CalcFlag = 0x00000002
	CalcMaxSP  CalcFlag = 0x00000004
	CalcStr    CalcFlag = 0x00000008
	CalcAgi    CalcFlag = 0x00000010
	CalcVit    CalcFlag = 0x00000020
	CalcInt    CalcFlag = 0x00000040
	CalcDex    CalcFlag = 0x00000080
	CalcLuk    CalcFlag = 0x00000100
	CalcBatk   CalcFlag = 0x00000200
	CalcWatk   CalcFlag = 0x00000400
	CalcMatk   CalcFlag = 0x00000800
	CalcHit    CalcFlag = 0x00001000
	CalcFlee   CalcFlag = 0x00002000
	CalcDef    CalcFlag = 0x00004000
	CalcDef2   CalcFlag = 0x00008000
	CalcMdef   CalcFlag = 0x00010000
	CalcMdef2  CalcFlag = 0x00020000
	CalcSpeed  CalcFlag = 0x00040000
	CalcAspd   CalcFlag = 0x00080000
	CalcDspd   CalcFlag = 0x00100000
	CalcCri    CalcFlag = 0x00200000
	CalcFlee2  CalcFlag = 0x00400000
	CalcAtkEle CalcFlag = 0x00800000
	CalcDefEle CalcFlag = 0x01000000
	CalcMode   CalcFlag = 0x02000000
	CalcSize   CalcFlag = 0x04000000
	CalcRace   CalcFlag = 0x08000000
	CalcRange  CalcFlag = 0x10000000
	CalcRegen  CalcFlag = 0x20000000

	// CalcBattle — всё, кроме CalcBase.
	CalcBattle CalcFlag = 0x3FFFFFFE
	CalcAll    CalcFlag = 0x3FFFFFFF
)

var calcFlagNames = []struct {
	f    CalcFlag
	name string
}{
	{CalcBase, "base"}, {CalcMaxHP, "maxhp"}, {CalcMaxSP, "maxsp"},
	{CalcStr, "str"}, {CalcAgi, "agi"}, {CalcVit, "vit"}, {CalcInt, "int"}, {CalcDex, "dex"}, {CalcLuk, "luk"},
	{CalcBatk, "batk"}, {CalcWatk, "watk"}, {CalcMatk, "matk"}, {CalcHit, "hit"}, {CalcFlee, "flee"},
	{CalcDef, "def"}, {CalcDef2, "def2"}, {CalcMdef, "mdef"}, {CalcMdef2, "mdef2"},
	{CalcSpeed, "speed"}, {CalcAspd, "aspd"}, {CalcDspd, "dspd"}, {CalcCri, "cri"}, {CalcFlee2, "flee2"},
	{CalcAtkEle, "atk_ele"}, {CalcDefEle, "def_ele"}, {CalcMode, "mode"}, {CalcSize, "size"},
	{CalcRace, "race"}, {CalcRange, "range"}, {CalcRegen, "regen"},
}

// Has проверяет, что установлен хотя бы один бит из f.
func (c CalcFlag) Has(f CalcFlag) bool {
	return c&f != 0
}

// String печатает маску как список групп через "|" (для логов).
func (c CalcFlag) String() string {
	if c == CalcNone {
		return "none"
	}
	if c == CalcAll {
		return "all"
	}
	var b strings.Builder
	for _, n := range calcFlagNames {
		if c&n.f == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n.name)
	}
	return b.String()
}
