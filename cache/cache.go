// Package cache keeps large read-only objects, such as zobrist tables, that
// every player in the process can share. Autoplay workers all read from the
// same copy.
package cache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/othellolab/othello/config"
)

type objectCache struct {
	mu      sync.Mutex
	objects map[string]any
}

var global = &objectCache{objects: map[string]any{}}

// Reset drops every cached object.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.objects = map[string]any{}
}

// Load returns the object under key, building it with fn on first use. A
// failed build is not remembered. Loading the same key as two different
// types is an error.
func Load[T any](cfg *config.Config, key string, fn func(*config.Config, string) (T, error)) (T, error) {
	global.mu.Lock()
	defer global.mu.Unlock()

	var zero T
	if obj, ok := global.objects[key]; ok {
		t, ok := obj.(T)
		if !ok {
			return zero, fmt.Errorf("cache key %q holds a %T", key, obj)
		}
		return t, nil
	}
	log.Debug().Str("key", key).Msg("loading-into-cache")
	t, err := fn(cfg, key)
	if err != nil {
		return zero, err
	}
	global.objects[key] = t
	return t, nil
}
