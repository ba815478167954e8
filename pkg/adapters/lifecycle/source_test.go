package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/notecache/pkg/adapters/lifecycle"
	"github.com/aretw0/notecache/pkg/core"
)

func TestSource(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	t.Run("Forwards Events Until Input Closes", func(t *testing.T) {
		in := make(chan core.Event, 2)
		in <- core.Event{Type: core.EventCreate, Name: "a"}
		in <- core.Event{Type: core.EventDelete, Name: "a"}
		close(in)

		src := lifecycle.NewSource(in)
		require.NoError(t, src.Start(context.Background()))

		var got []core.Event
		for e := range src.Events() {
			ev, ok := e.(core.Event)
			require.True(t, ok)
			got = append(got, ev)
		}
		require.Len(t, got, 2)
		assert.Equal(t, "CREATE a", got[0].String())
		assert.Equal(t, "DELETE a", got[1].String())
	})

	t.Run("Stops On Cancel", func(t *testing.T) {
		in := make(chan core.Event)
		ctx, cancel := context.WithCancel(context.Background())

		src := lifecycle.NewSource(in)
		require.NoError(t, src.Start(ctx))
		cancel()

		select {
		case _, ok := <-src.Events():
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("source did not close after cancel")
		}
	})
}
