package projection

// Guard проверяет, что все поверхности, нужные обработчику, существуют.
//
// Если хотя бы одной нет, событие отбрасывается без ошибки и без повтора:
// после создания поверхности состояние восстановится по следующему
// изменению или по TriggerAll.
type Guard struct {
	surfaces Surfaces
}

func NewGuard(surfaces Surfaces) Guard {
	return Guard{surfaces: surfaces}
}

func (g Guard) Allow(required ...Surface) bool {
	if g.surfaces == nil {
		return false
	}
	for _, s := range required {
		if !g.surfaces.Has(s) {
			return false
		}
	}
	return true
}
