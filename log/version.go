package log

import (
	"github.com/qcanvas-team/qcanvas-engine/core"
	"go.uber.org/zap"
)

const VersionLogTaskName = "version_log"

type VersionLogTaskImpl struct {
	core.DefaultTaskImpl
}

func (v *VersionLogTaskImpl) Task() {
	zap.L().Debug("qcanvas version:" + core.Version)
}
