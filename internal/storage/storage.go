package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store é o gateway para o asset store (avatars).
//
// Write nunca sucede parcialmente: ou existe um objeto completo no handle
// retornado, ou nenhum handle é retornado. Delete de um handle inexistente
// é no-op. Handles nunca são reutilizados.
type Store interface {
	Write(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, handle string) error
}

const opTimeout = 10 * time.Second

// newHandle gera um handle com entropia suficiente para nunca colidir:
// timestamp em milissegundos + uuid.
func newHandle(contentType string) string {
	return fmt.Sprintf(
		"avatars/%d-%s%s",
		time.Now().UnixMilli(),
		uuid.NewString(),
		extFor(contentType),
	)
}

func extFor(contentType string) string {
	switch contentType {
	case "image/webp":
		return ".webp"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	}
	return ".bin"
}
