package interpose

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// lengthHandler is typed int -> int to exercise the type retargeting.
func lengthHandler() Handler[int, int] {
	return HandlerFunc[int, int](func(_ context.Context, in int) (int, error) {
		return in * 2, nil
	})
}

func TestAdapters(t *testing.T) {
	ctx := context.Background()

	t.Run("MapInput converts the accepted type", func(t *testing.T) {
		h := MapInput[string, int, int](func(in string) int {
			return len(in)
		})(lengthHandler())
		out, err := h.Handle(ctx, "four")
		assert.NoError(t, err)
		assert.Equal(t, 8, out)
	})

	t.Run("MapInputFunc failure skips the handler", func(t *testing.T) {
		boom := errors.New("decode boom")
		invoked := false
		h := MapInputFunc[string, int, int](
			func(context.Context, string) (int, error) {
				return 0, boom
			})(HandlerFunc[int, int](func(context.Context, int) (int, error) {
			invoked = true
			return 0, nil
		}))
		_, err := h.Handle(ctx, "in")
		assert.ErrorIs(t, err, boom)
		assert.False(t, invoked)
	})

	t.Run("MapOutput converts the produced type", func(t *testing.T) {
		h := MapOutput[int, int](strconv.Itoa)(lengthHandler())
		out, err := h.Handle(ctx, 21)
		assert.NoError(t, err)
		assert.Equal(t, "42", out)
	})

	t.Run("MapOutputFunc passes failures through untouched", func(t *testing.T) {
		boom := errors.New("handler boom")
		converted := false
		h := MapOutputFunc[int, int](
			func(context.Context, int) (string, error) {
				converted = true
				return "", nil
			})(Fail[int, int](boom))
		_, err := h.Handle(ctx, 1)
		assert.ErrorIs(t, err, boom)
		assert.False(t, converted)
	})

	t.Run("Codec retargets both ends", func(t *testing.T) {
		h := Codec[string, int, int, string](
			func(in string) int { return len(in) },
			strconv.Itoa,
		)(lengthHandler())
		out, err := h.Handle(ctx, "four")
		assert.NoError(t, err)
		assert.Equal(t, "8", out)
	})

	t.Run("Codec keeps misses as misses", func(t *testing.T) {
		h := Codec[string, int, int, string](
			func(in string) int { return len(in) },
			strconv.Itoa,
		)(Unhandled[int, int]())
		_, err := h.Handle(ctx, "four")
		assert.True(t, IsUnhandled(err))
	})
}
