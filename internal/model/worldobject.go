package model

// WorldObject — базовый класс для всех объектов карты.
// Все объекты имеют ObjectID и Name.
//
// Объекты принадлежат горутине игрового цикла (timer.Loop) и не защищены
// мьютексом: вся логика карты выполняется в одном логическом потоке.
type WorldObject struct {
	objectID uint32
	name     string
	mapID    int32
}

// NewWorldObject создаёт новый объект на карте.
func NewWorldObject(objectID uint32, name string) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	return w.name
}

// MapID возвращает карту, на которой находится объект.
func (w *WorldObject) MapID() int32 {
	return w.mapID
}

// SetMapID перемещает объект на другую карту.
func (w *WorldObject) SetMapID(id int32) {
	w.mapID = id
}
