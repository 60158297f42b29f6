package core

import (
	"fmt"

	"go.uber.org/zap"
)

var Version string

const NoVersion = "no_version_info"

// SetVersion prefers the version linked in at build time over the one given
// on the command line.
func SetVersion(c *Conf, versionByBuildFlag string) {
	switch {
	case versionByBuildFlag != "":
		Version = versionByBuildFlag
	case c.Version != "":
		Version = c.Version
	default:
		Version = NoVersion
	}
	zap.L().Info(fmt.Sprintf("qcanvas version is %s", Version))
}
