/*
Package tracing provides lightweight request tracing.

Every HTTP request and every service tool execution gets a span. Spans
carry a trace id that is taken from the X-Trace-ID header when present,
so a client can correlate a batch of tool calls. Completed spans are
logged by a collector goroutine through the structured logger.

# Usage

	tracer := tracing.New("zenexplorer", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "explorer.paste")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

The trace id of the current request is available through GetTraceID.
*/
package tracing
