package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/othellolab/othello/config"
)

func TestLoadOnce(t *testing.T) {
	is := is.New(t)
	Reset()
	cfg := config.DefaultConfig()
	var mu sync.Mutex
	calls := 0
	lf := func(cfg *config.Config, key string) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return key + "-obj", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obj, err := Load(&cfg, "thing", lf)
			is.NoErr(err)
			is.Equal(obj, "thing-obj")
		}()
	}
	wg.Wait()
	is.Equal(calls, 1)
}

func TestLoadError(t *testing.T) {
	is := is.New(t)
	Reset()
	cfg := config.DefaultConfig()
	boom := errors.New("boom")
	_, err := Load(&cfg, "bad", func(*config.Config, string) (int, error) {
		return 0, boom
	})
	is.Equal(err, boom)
	// a failed load is not cached
	obj, err := Load(&cfg, "bad", func(*config.Config, string) (int, error) {
		return 1, nil
	})
	is.NoErr(err)
	is.Equal(obj, 1)

	_, err = Load(&cfg, "bad", func(*config.Config, string) (string, error) {
		return "", nil
	})
	is.True(err != nil)
}
