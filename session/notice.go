package session

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/common"
)

type Level int

const (
	Success Level = iota
	Info
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is the last user-facing message of a session.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (n Notice) String() string {
	return fmt.Sprintf("[%s] %s", n.Level, n.Message)
}

// NoticeFor classifies err. Conditions that leave the circuit untouched are
// warnings, cancellations are informational and the rest are errors.
func NoticeFor(err error) Notice {
	switch {
	case err == nil:
		return Notice{Level: Success, Message: "ok"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Notice{Level: Info, Message: "cancelled: " + err.Error()}
	case common.IsRecoverable(err):
		return Notice{Level: Warning, Message: err.Error()}
	default:
		return Notice{Level: Error, Message: err.Error()}
	}
}
