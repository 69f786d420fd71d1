// Package memory хранилище бронирований и расписаний в памяти процесса.
// Используется для локального запуска (storage.driver = "memory") и в тестах.
// Транзакции сериализуются глобальной блокировкой и работают над копией данных,
// которая применяется при успешном завершении и отбрасывается при ошибке.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

type dayKey struct {
	facilityID int64
	dayType    domain.DayType
}

type data struct {
	reservations map[int64]domain.Reservation
	days         map[dayKey]domain.DaySchedule
	nextID       int64
}

func (d *data) clone() *data {
	c := &data{
		reservations: make(map[int64]domain.Reservation, len(d.reservations)),
		days:         make(map[dayKey]domain.DaySchedule, len(d.days)),
		nextID:       d.nextID,
	}
	for id, r := range d.reservations {
		c.reservations[id] = r
	}
	for k, day := range d.days {
		c.days[k] = cloneDay(day)
	}
	return c
}

type txKey struct{}

// Store хранилище в памяти
type Store struct {
	// txMu сериализует транзакции, аналог advisory-блокировки объекта
	txMu sync.Mutex
	// mu защищает committed
	mu        sync.RWMutex
	committed *data
	now       func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		committed: &data{
			reservations: make(map[int64]domain.Reservation),
			days:         make(map[dayKey]domain.DaySchedule),
		},
		now: time.Now,
	}
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*data); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	staged := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, staged)); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = staged
	s.mu.Unlock()
	return nil
}

// DoSerializable выполняет fn в транзакции. Транзакции и так выполняются по одной.
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

// DoReadOnly выполняет fn над снимком данных без применения изменений
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*data); ok {
		return fn(ctx)
	}

	s.mu.RLock()
	snapshot := s.committed.clone()
	s.mu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, snapshot))
}

// read выполняет fn над данными транзакции или над зафиксированными данными
func (s *Store) read(ctx context.Context, fn func(d *data)) {
	if staged, ok := ctx.Value(txKey{}).(*data); ok {
		fn(staged)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.committed)
}

// write выполняет fn над данными транзакции, а вне транзакции - атомарно над зафиксированными
func (s *Store) write(ctx context.Context, fn func(d *data) error) error {
	if staged, ok := ctx.Value(txKey{}).(*data); ok {
		return fn(staged)
	}
	return s.Do(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txKey{}).(*data))
	})
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*data)
	return ok
}

func cloneDay(day domain.DaySchedule) domain.DaySchedule {
	intervals := make([]domain.PricingInterval, len(day.Intervals))
	copy(intervals, day.Intervals)
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.IsBefore(intervals[j].Start)
	})
	day.Intervals = intervals
	return day
}
