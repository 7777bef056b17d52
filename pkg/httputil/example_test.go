package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/stepgraph/pkg/httputil"
)

func ExampleRetry() {
	attempts := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return httputil.Retryable(errors.New("service warming up"))
		}
		return nil
	})

	fmt.Println("attempts:", attempts)
	fmt.Println("error:", err)
	// Output:
	// attempts: 3
	// error: <nil>
}

func ExampleRetry_permanent() {
	attempts := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		return errors.New("bad request")
	})

	fmt.Println("attempts:", attempts)
	fmt.Println("error:", err)
	// Output:
	// attempts: 1
	// error: bad request
}
