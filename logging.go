package valkey

import "github.com/sirupsen/logrus"

// defaultLogger is silent until a caller opts in via SetLogger, so
// embedding this library does not spam an application's stdout — the
// same injectable-logger convention entertainment-venue-rcproxy and
// cosmez-RedisMan-go use logrus for.
var defaultLogger = newSilentLogger()

func newSilentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetLogger installs l as the logger used for connection lifecycle
// events (candidate dial attempts, HELLO handshake, dispatched command
// names) across all Connections created afterward.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newSilentLogger()
	}
	defaultLogger = l
}
