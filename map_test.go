package lazycell_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/peterldowns/testy/check"

	"github.com/peterldowns/lazycell"
)

func TestMapComputesEachKeyOnce(t *testing.T) {
	t.Parallel()
	counter := newMutexCounter()
	cells := lazycell.NewMap[string, string]()
	key := "hello"

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err := cells.Get(key, func() (string, error) {
				counter.Add(1)
				return "world", nil
			})
			check.Nil(t, err)
			if check.NotEqual(t, nil, val) {
				check.Equal(t, "world", *val)
			}
			check.Equal(t, 1, counter.Read())
		}()
	}
	wg.Wait()
	check.Equal(t, 1, counter.Read())
	check.Equal(t, true, cells.Ready(key))
	check.Equal(t, false, cells.Ready("other"))
}

func TestMapKeysAreIndependent(t *testing.T) {
	t.Parallel()
	cells := lazycell.NewMap[int, int]()

	counters := make([]*mutexCounter, 10)
	for key := range counters {
		counters[key] = newMutexCounter()
	}

	var wg sync.WaitGroup
	for key := 0; key < 10; key++ {
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(key int) {
				defer wg.Done()
				val, err := cells.Get(key, func() (int, error) {
					counters[key].Add(1)
					return key * 2, nil
				})
				check.Nil(t, err)
				if check.NotEqual(t, nil, val) {
					check.Equal(t, key*2, *val)
				}
			}(key)
		}
	}
	wg.Wait()
	for key := 0; key < 10; key++ {
		check.Equal(t, 1, counters[key].Read())
		check.Equal(t, true, cells.Ready(key))
	}
}

func TestMapPoisonsPerKey(t *testing.T) {
	t.Parallel()
	cells := lazycell.NewMap[string, int]()

	_, err := cells.Get("bad", func() (int, error) {
		return 0, fmt.Errorf("bad key")
	})
	check.Error(t, err)
	check.Equal(t, true, errors.Is(err, lazycell.ErrInitializerFailed))

	// A poisoned key stays poisoned and never re-runs its producer.
	counter := newMutexCounter()
	_, err2 := cells.Get("bad", func() (int, error) {
		counter.Add(1)
		return 1, nil
	})
	check.Equal(t, true, err == err2)
	check.Equal(t, 0, counter.Read())

	// Other keys are unaffected.
	val, err := cells.Get("good", func() (int, error) {
		return 10, nil
	})
	check.Nil(t, err)
	if check.NotEqual(t, nil, val) {
		check.Equal(t, 10, *val)
	}
}

func TestMapInitialize(t *testing.T) {
	t.Parallel()
	counter := newMutexCounter()
	var cells lazycell.Map[string, int] // zero value works
	producer := func() (int, error) {
		counter.Add(1)
		return 1, nil
	}
	check.Nil(t, cells.Initialize("a", producer))
	check.Nil(t, cells.Initialize("a", producer))
	check.Equal(t, 1, counter.Read())
	check.Equal(t, true, cells.Ready("a"))
}
