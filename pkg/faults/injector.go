// Package faults предоставляет вероятностную инжекцию сбоев.
//
// Участник саги симулирует ненадёжную внешнюю зависимость: перед выполнением
// операции он с настроенной вероятностью "падает", чтобы оркестратор мог
// отрабатывать retry и компенсации. Решения независимы между вызовами —
// никакого backoff или корреляции.
package faults

import (
	"math/rand"
	"sync"
	"time"
)

// Injector принимает решение о симуляции сбоя для каждого вызова.
// Единственное состояние — поток случайных чисел; само решение O(1)
// и не блокирует.
type Injector struct {
	rate float64

	// rand.Rand не потокобезопасен — защищаем мьютексом.
	mu  sync.Mutex
	rnd *rand.Rand
}

// Option — функциональная опция для настройки Injector.
type Option func(*Injector)

// WithRand задаёт источник случайности.
// В тестах передаётся rand с фиксированным seed для воспроизводимости решений.
func WithRand(rnd *rand.Rand) Option {
	return func(i *Injector) {
		i.rnd = rnd
	}
}

// New создаёт Injector с заданной вероятностью сбоя.
// rate ограничивается диапазоном [0, 1]: rate=0 никогда не инжектирует,
// rate=1 инжектирует всегда.
func New(rate float64, opts ...Option) *Injector {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}

	i := &Injector{
		rate: rate,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// ShouldFail решает, симулировать ли сбой для текущего вызова.
// Вызывается строго до мутации хранилища: инжектированный сбой должен быть
// неотличим от того, что вызова не было.
func (i *Injector) ShouldFail() bool {
	if i.rate == 0 {
		return false
	}

	i.mu.Lock()
	v := i.rnd.Float64()
	i.mu.Unlock()

	return v < i.rate
}

// Rate возвращает настроенную вероятность сбоя.
func (i *Injector) Rate() float64 {
	return i.rate
}
