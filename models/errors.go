package models

import "github.com/pkg/errors"

// Классы ошибок движка, контроллер сопоставляет их с HTTP статусами
var (
	ErrNotFound  = errors.New("запись не найдена")
	ErrForbidden = errors.New("операция недоступна")
	ErrConflict  = errors.New("недопустимый статус записи")
	ErrNoTenant  = errors.New("тенант не определён")
)
