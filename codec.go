package interpose

import "context"

// The adapters below are the type-changing counterpart of Middleware: each
// takes a handler for one input/output pairing and returns a handler for
// another, leaving the wrapped logic untouched. They compose with plain
// function application.

// MapInput adapts the input a handler accepts by converting the new input
// type into the one the handler understands.
func MapInput[XIn, In, Out any](f func(in XIn) In) func(Handler[In, Out]) Handler[XIn, Out] {
	return MapInputFunc[XIn, In, Out](func(_ context.Context, in XIn) (In, error) {
		return f(in), nil
	})
}

// MapInputFunc is the effectful variant of [MapInput]: the conversion may
// suspend on the context and may fail, in which case the handler is never
// invoked.
func MapInputFunc[XIn, In, Out any](
	f func(ctx context.Context, in XIn) (In, error)) func(Handler[In, Out]) Handler[XIn, Out] {
	return func(h Handler[In, Out]) Handler[XIn, Out] {
		return HandlerFunc[XIn, Out](func(ctx context.Context, in XIn) (Out, error) {
			converted, err := f(ctx, in)
			if err != nil {
				var zero Out
				return zero, err
			}
			return h.Handle(ctx, converted)
		})
	}
}

// MapOutput adapts the output a handler produces.
func MapOutput[In, Out, XOut any](f func(out Out) XOut) func(Handler[In, Out]) Handler[In, XOut] {
	return MapOutputFunc[In, Out, XOut](func(_ context.Context, out Out) (XOut, error) {
		return f(out), nil
	})
}

// MapOutputFunc is the effectful variant of [MapOutput]. Handler failures
// and misses propagate unchanged; the conversion only sees successes.
func MapOutputFunc[In, Out, XOut any](
	f func(ctx context.Context, out Out) (XOut, error)) func(Handler[In, Out]) Handler[In, XOut] {
	return func(h Handler[In, Out]) Handler[In, XOut] {
		return HandlerFunc[In, XOut](func(ctx context.Context, in In) (XOut, error) {
			out, err := h.Handle(ctx, in)
			if err != nil {
				var zero XOut
				return zero, err
			}
			return f(ctx, out)
		})
	}
}

// Codec retargets a handler's types with a decoder/encoder pair: the decoder
// converts the new input into the handler's input and the encoder converts
// the handler's output into the new output. This is the canonical way to
// reuse a handler's logic under different request and response shapes.
func Codec[XIn, In, Out, XOut any](
	decode func(in XIn) In,
	encode func(out Out) XOut) func(Handler[In, Out]) Handler[XIn, XOut] {
	return CodecFunc[XIn, In, Out, XOut](
		func(_ context.Context, in XIn) (In, error) { return decode(in), nil },
		func(_ context.Context, out Out) (XOut, error) { return encode(out), nil },
	)
}

// CodecFunc is the effectful variant of [Codec].
func CodecFunc[XIn, In, Out, XOut any](
	decode func(ctx context.Context, in XIn) (In, error),
	encode func(ctx context.Context, out Out) (XOut, error)) func(Handler[In, Out]) Handler[XIn, XOut] {
	return func(h Handler[In, Out]) Handler[XIn, XOut] {
		return HandlerFunc[XIn, XOut](func(ctx context.Context, in XIn) (XOut, error) {
			var zero XOut
			converted, err := decode(ctx, in)
			if err != nil {
				return zero, err
			}
			out, err := h.Handle(ctx, converted)
			if err != nil {
				return zero, err
			}
			return encode(ctx, out)
		})
	}
}
