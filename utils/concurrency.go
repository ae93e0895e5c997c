package utils

import "sync"

// KeyedMutex serializes work per string key. Idle keys hold no memory.
type KeyedMutex struct {
	mu   sync.Mutex
	held map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{held: make(map[string]*keyLock)}
}

func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.held[key]
	if !ok {
		l = &keyLock{}
		k.held[key] = l
	}
	l.refs++
	k.mu.Unlock()
	l.mu.Lock()
}

func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	l, ok := k.held[key]
	if !ok {
		k.mu.Unlock()
		return
	}
	l.refs--
	if l.refs == 0 {
		delete(k.held, key)
	}
	k.mu.Unlock()
	l.mu.Unlock()
}
