// Package redislock implementa la exclusión mutua por scope sobre Redis.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

var _ recovery.ScopeLocker = (*ScopeLocker)(nil)

// lockTTL debe cubrir la corrida más larga de merge/reconciliación; el lock
// expira solo si el proceso muere sin liberar.
const lockTTL = 30 * time.Second

// ScopeLocker lock distribuido por scope. Dos instancias de la API que
// intenten mergear el mismo scope a la vez se excluyen acá.
type ScopeLocker struct {
	client *redislock.Client
	log    *logger.Logger
}

// New construye el locker sobre un cliente de Redis.
func New(rdb *redis.Client, log *logger.Logger) *ScopeLocker {
	return &ScopeLocker{client: redislock.New(rdb), log: log}
}

// Lock adquiere el lock del scope sin reintentos: si otro proceso lo tiene,
// el caller recibe ErrScopeLocked y decide (el handler responde conflicto).
func (l *ScopeLocker) Lock(ctx context.Context, scope entity.Scope) (func(), error) {
	key := fmt.Sprintf("lock:scope:%s", scope.Key())
	lock, err := l.client.Obtain(ctx, key, lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrScopeLocked
	}
	if err != nil {
		return nil, fmt.Errorf("obtain scope lock: %w", err)
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil {
			l.log.Warn().Str("key", key).Err(err).Msg("no se pudo liberar el lock de scope")
		}
	}, nil
}
