package kinematics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxEmpty(t *testing.T) {
	m := NewMailbox()
	vals, ok := m.Take()
	assert.False(t, ok)
	assert.Nil(t, vals)
}

func TestMailboxLatestWins(t *testing.T) {
	m := NewMailbox()
	m.Put([]float64{1, 2, 3})
	m.Put([]float64{4, 5, 6})

	vals, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, []float64{4, 5, 6}, vals)

	// The slot is consumed by Take.
	_, ok = m.Take()
	assert.False(t, ok)
}

func TestMailboxCopiesOnPutAndTake(t *testing.T) {
	m := NewMailbox()

	src := []float64{1, 2, 3}
	m.Put(src)
	src[0] = 99

	vals, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, vals)

	m.Put([]float64{7, 8, 9})
	vals[1] = -1
	got, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, []float64{7, 8, 9}, got)
}

func TestMailboxConcurrentVectorsStayIntact(t *testing.T) {
	m := NewMailbox()

	vectors := [][]float64{
		{1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2, 2},
		{3, 3, 3, 3, 3, 3},
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	for _, v := range vectors {
		wg.Add(1)
		go func(v []float64) {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.Put(v)
				}
			}
		}(v)
	}

	// Every observed vector must be one of the published ones, never a blend.
	for i := 0; i < 1000; i++ {
		vals, ok := m.Take()
		if !ok {
			continue
		}
		require.Len(t, vals, 6)
		first := vals[0]
		for _, v := range vals {
			assert.Equal(t, first, v)
		}
	}
	close(done)
	wg.Wait()
}
