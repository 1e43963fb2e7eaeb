package model

// RegenFlag — что существу разрешено регенерировать.
type RegenFlag uint8

const (
	RegenHP RegenFlag = 0x01
	RegenSP RegenFlag = 0x02
)

// RegenData — состояние естественной регенерации.
// HP/SP — сколько восстанавливается за интервал, Rate — множитель
// в процентах (100 = обычная скорость), Tick — накопленное время до следующего восстановления.
type RegenData struct {
	Flag RegenFlag

	HP int32
	SP int32

	RateHP int32
	RateSP int32

	TickHP int64
	TickSP int64
}

// SCData — сохранённый статус-эффект (строка sc_data).
// Tick — оставшаяся длительность в мс, InfiniteTick для бесконечных.
type SCData struct {
	Type SCType
	Tick int64
	Val1 int32
	Val2 int32
	Val3 int32
	Val4 int32
}

// InfiniteTick — маркер бесконечной длительности.
const InfiniteTick int64 = -1
