package chorus

// Logger receives debug messages from a kernel instance. Implementations
// must be safe to call from the render thread; the kernel only logs outside
// the per-sample loop.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
