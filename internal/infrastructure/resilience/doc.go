/*
Package resilience provides a circuit breaker for outbound calls.

The browser app's page previews go through a Breaker so that an unreachable
site fails fast instead of holding a desktop loop for the full HTTP timeout.

# States

	Closed   -> requests flow; failures are counted
	Open     -> requests fail with ErrCircuitOpen until Timeout passes
	HalfOpen -> up to MaxRequests probes; one failure reopens

# Usage

	breaker := resilience.New("preview", resilience.Settings{Timeout: 30 * time.Second})
	page, err := resilience.Do(breaker, func() (*Page, error) {
		return fetch(ctx, url)
	})
*/
package resilience
