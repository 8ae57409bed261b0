package emit

import (
	"fmt"

	"fortio.org/safecast"
)

type arena[T any] struct {
	data []T
}

func newArena[T any](capHint uint) *arena[T] {
	return &arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based).
func (a *arena[T]) allocate(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("buffer arena overflow: %w", err))
	}
	return idx
}

func (a *arena[T]) get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}
