package core

import (
	"fmt"

	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

type NonSecretConf struct {
	DevMode            bool   `json:"dev_mode"`
	DisableStdoutLog   bool   `json:"disable_stdout_log"`
	EnableFileLog      bool   `json:"enable_file_log"`
	LogDir             string `json:"log_dir"`
	LogLevel           string `json:"log_level"`
	LogRotationMaxDays int    `json:"log_rotation_max_days"`
	SettingPath        string `json:"setting_path"`
	StorePath          string `json:"store_path"`
	OwnerID            string `json:"owner_id"`
}

type Info struct {
	Version string         `json:"version"`
	Conf    *NonSecretConf `json:"conf"`
	Setting *Setting       `json:"setting"`
}

var CurrentInfo *Info

func SetInfo(c *Conf) {
	conf := &NonSecretConf{
		DevMode:            c.DevMode,
		DisableStdoutLog:   c.DisableStdoutLog,
		EnableFileLog:      c.EnableFileLog,
		LogDir:             c.LogDir,
		LogLevel:           c.LogLevel,
		LogRotationMaxDays: c.LogRotationMaxDays,
		SettingPath:        c.SettingPath,
		StorePath:          c.StorePath,
		OwnerID:            c.OwnerID,
	}

	CurrentInfo = &Info{
		Version: Version,
		Conf:    conf,
		Setting: GetGlobalSetting(),
	}
}

// String renders the info as indented JSON.
func (i *Info) String() string {
	b, err := jsonIter.Marshal(i)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to marshal info/reason:%s", err))
		return ""
	}
	return string(pretty.Pretty(b))
}
