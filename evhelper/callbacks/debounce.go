package callbacks

import "time"

// Debounce wraps fn so it runs at most once per window. Calls inside the
// window are dropped. now is the clock; nil means time.Now.
func Debounce[T any](window time.Duration, now func() time.Time, fn Func[T]) Func[T] {
	if now == nil {
		now = time.Now
	}

	var last time.Time
	fired := false
	return func(arg T) {
		t := now()
		if fired && t.Sub(last) < window {
			return
		}
		last = t
		fired = true
		fn(arg)
	}
}
