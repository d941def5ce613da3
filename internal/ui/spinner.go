// ABOUTME: Inline spinner shown while an AI request is in flight.
// ABOUTME: Draws bubbles spinner frames to a writer until the work returns.
package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spin runs fn while animating label on w. The animation goroutine exits
// before Spin returns and the line is cleared.
func Spin[T any](ctx context.Context, w io.Writer, label string, fn func(context.Context) (T, error)) (T, error) {
	frames := spinner.Dot
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(frames.FPS)
		defer ticker.Stop()
		i := 0
		for {
			fmt.Fprintf(w, "\r%s %s", frames.Frames[i%len(frames.Frames)], label)
			i++
			select {
			case <-done:
				fmt.Fprint(w, "\r\033[K")
				return
			case <-ctx.Done():
				fmt.Fprint(w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	out, err := fn(ctx)
	close(done)
	wg.Wait()
	return out, err
}
