package repository

import "errors"

// Единые типизированные ошибки для всех операций "по id".
// Хендлеры сопоставляют их через errors.Is и выбирают HTTP-статус.
var (
	ErrNotFound           = errors.New("не найдено")
	ErrAlreadyExists      = errors.New("уже существует")
	ErrInvalidCredentials = errors.New("неверные учетные данные")
)
