package world

import (
	"errors"
	"fmt"
)

// ErrDisposeTimeout возвращается из Dispose, когда фоновый генератор
// не завершился за отведённое время. Мир при этом не освобождён —
// вызывающий видит проблему явно, а не молчаливое продолжение.
var ErrDisposeTimeout = errors.New("фоновый генератор мира не завершился за отведённое время")

// FormatError означает, что поток не начинается с ожидаемой сигнатуры
// и вовсе не является файлом мира.
type FormatError struct {
	Magic uint32
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("неверная сигнатура файла мира: 0x%08X (ожидалась 0x%08X)", e.Magic, Magic)
}

// DeserializationError означает, что сигнатура верна, но дальнейшее
// содержимое потока прочитать не удалось.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("повреждённый файл мира: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
