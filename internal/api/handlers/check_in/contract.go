package check_in

import (
	"context"

	checkIn "github.com/svojko1/nechty-sub001/internal/usecase/check_in"
)

type CheckInUseCase interface {
	Execute(ctx context.Context, req *checkIn.Request) (*checkIn.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
