package discover

import "go.uber.org/zap"

// Logger encapsulates a SugaredLogger and the module which it belongs to.
type Logger struct {
	*zap.SugaredLogger
	module string
}

// Module returns (stylised) module name.
func (l *Logger) Module() string {
	return l.module
}
