package floord

// A Logger receives diagnostic messages from the pipeline.
//
// *log.Logger implements this interface.
type Logger interface {
	Printf(format string, args ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

func loggerOrDiscard(l Logger) Logger {
	if l == nil {
		return discardLogger{}
	}
	return l
}
