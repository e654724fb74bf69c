// Package healthcheck предоставляет функции проверки готовности сервисов.
// Используется для Kubernetes readiness probes (/readyz).
package healthcheck

import (
	"context"
	"fmt"
)

// Pinger — минимальный контракт хранилища для проверки готовности.
// In-memory хранилища реализуют Ping захватом мьютекса: если хранилище
// отвечает, сервис готов принимать трафик.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckStore проверяет доступность хранилища участника.
func CheckStore(ctx context.Context, store Pinger) error {
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("store ping: %w", err)
	}
	return nil
}

// Composite объединяет несколько проверок в одну.
// Возвращает первую ошибку или nil если все проверки пройдены.
func Composite(checks ...func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
