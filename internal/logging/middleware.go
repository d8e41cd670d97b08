package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

// Middleware attaches a fresh LogData to every request and emits one
// completion entry per request, tagged with a request ID and the
// operation that handled it.
func Middleware(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(logger)

		requestID := uuid.Must(uuid.NewV4()).String()
		logData.AddData("requestID", requestID)
		logData.AddData("operation", ctx.Operation().OperationID)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataKey{}, logData))
		endTimer()

		logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
	}
}
