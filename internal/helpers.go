package internal

// ContextValue retrieves a typed value stored with Context.Set.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}
