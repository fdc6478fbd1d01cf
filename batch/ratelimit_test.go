package batch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repometa.DomainLimiter = (*batch.DomainLimiter)(nil)

// waitFor returns how long limiter.Wait blocked for host.
func waitFor(t *testing.T, limiter *batch.DomainLimiter, host string) time.Duration {
	t.Helper()
	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), host))
	return time.Since(start)
}

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	// At 10 req/s the second request to a shared bucket waits about 100ms.
	tests := []struct {
		name   string
		first  string
		second string
		waits  bool
	}{
		{"same host", "repositorio.ufsc.br", "repositorio.ufsc.br", true},
		{"sibling hosts of one university", "teses.usp.br", "repositorio.usp.br", true},
		{"host with port", "bdtd.ibict.br:8080", "bdtd.ibict.br", true},
		{"unrelated institutions", "lume.ufrgs.br", "repositorio.ufmg.br", false},
		{"same public suffix only", "ufpr.br", "ufba.br", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := batch.NewDomainLimiter(10)
			assert.Less(t, waitFor(t, limiter, tt.first), 50*time.Millisecond)

			elapsed := waitFor(t, limiter, tt.second)
			if tt.waits {
				assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond)
			} else {
				assert.Less(t, elapsed, 50*time.Millisecond)
			}
		})
	}

	t.Run("gives up when the context expires", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(1)
		waitFor(t, limiter, "repositorio.unb.br")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		assert.Error(t, limiter.Wait(ctx, "repositorio.unb.br"))
	})

	t.Run("spaces concurrent workers on one host", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(50)
		start := time.Now()

		var wg sync.WaitGroup
		errs := make(chan error, 4)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- limiter.Wait(context.Background(), "repositorio.ufc.br")
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
		// Three waits of 20ms after the first free token.
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}

func TestRegistrableDomain(t *testing.T) {
	t.Parallel()

	for host, want := range map[string]string{
		"repositorio.ufsc.br":  "ufsc.br",
		"Repositorio.UFMG.br":  "ufmg.br",
		"bdtd.ibict.br:8080":   "ibict.br",
		"repositorio.unb.br.":  "unb.br",
		"localhost":            "localhost",
		"127.0.0.1":            "127.0.0.1",
		"[::1]:8080":           "::1",
	} {
		t.Run(host, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, batch.RegistrableDomain(host))
		})
	}
}
