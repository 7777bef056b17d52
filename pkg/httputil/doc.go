// Package httputil provides HTTP helpers for calling upstream services.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only for
// errors wrapped with [RetryableError]. Everything else fails fast:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckResponse(resp)
//	})
//
// # Response Classification
//
// [CheckResponse] maps status codes onto the project error codes: 429 and
// 5xx become retryable UPSTREAM_ERROR values, other non-2xx statuses are
// permanent UPSTREAM_ERROR values that carry the upstream message.
package httputil
