// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	t.Run("will return healthy", func(t *testing.T) {
		t.Run("if the check succeeds", func(t *testing.T) {
			m := Ping(func(ctx context.Context) error {
				return nil
			})

			healthy, err := m.Healthy(context.Background())
			require.NoError(t, err)
			assert.True(t, healthy)
		})
	})

	t.Run("will return unhealthy", func(t *testing.T) {
		t.Run("if the check fails", func(t *testing.T) {
			pingErr := errors.New("connection refused")
			m := Ping(func(ctx context.Context) error {
				return pingErr
			})

			healthy, err := m.Healthy(context.Background())
			require.ErrorIs(t, err, pingErr)
			assert.False(t, healthy)
		})
	})
}

func TestAndMonitor_Healthy(t *testing.T) {
	t.Run("will return unhealthy", func(t *testing.T) {
		t.Run("if at least one of the Monitors return unhealthy", func(t *testing.T) {
			var a Binary
			a.MarkHealthy()

			var b Binary

			var c Binary
			c.MarkHealthy()

			and := And(&a, &b, &c)

			healthy, err := and.Healthy(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.False(t, healthy) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if at least one of the Monitors return an error", func(t *testing.T) {
			var a Binary
			a.MarkHealthy()

			healthErr := errors.New("failed to check health status")
			b := MonitorFunc(func(ctx context.Context) (bool, error) {
				return false, healthErr
			})

			var c Binary
			c.MarkHealthy()

			and := And(&a, b, &c)

			healthy, err := and.Healthy(context.Background())
			if !assert.ErrorIs(t, err, healthErr) {
				return
			}
			if !assert.False(t, healthy) {
				return
			}
		})
	})
}

func TestOrMonitor_Healthy(t *testing.T) {
	t.Run("will return unhealthy", func(t *testing.T) {
		t.Run("if all Monitors return unhealthy", func(t *testing.T) {
			var a Binary
			var b Binary
			var c Binary

			or := Or(&a, &b, &c)

			healthy, err := or.Healthy(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.False(t, healthy) {
				return
			}
		})
	})

	t.Run("will return healthy", func(t *testing.T) {
		t.Run("if at least one of the Monitors returns healthy", func(t *testing.T) {
			var a Binary
			var b Binary
			b.MarkHealthy()

			or := Or(&a, &b)

			healthy, err := or.Healthy(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, healthy) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if at least one of the Monitors return an error", func(t *testing.T) {
			var a Binary

			healthErr := errors.New("failed to check health status")
			b := MonitorFunc(func(ctx context.Context) (bool, error) {
				return false, healthErr
			})

			var c Binary

			or := Or(&a, b, &c)

			healthy, err := or.Healthy(context.Background())
			if !assert.ErrorIs(t, err, healthErr) {
				return
			}
			if !assert.False(t, healthy) {
				return
			}
		})
	})
}
