package core

type Conf struct {
	Version            string `long:"version" description:"version of qcanvas" env:"QCANVAS_VERSION"`
	DevMode            bool   `long:"dev-mode" description:"run in dev mode" env:"QCANVAS_DEV_MODE"`
	DisableStdoutLog   bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"QCANVAS_DISABLE_STDOUT_LOG"`
	EnableFileLog      bool   `long:"enable-file-log" description:"enable log in file" env:"QCANVAS_ENABLE_FILE_LOG"`
	LogDir             string `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"QCANVAS_LOG_DIR"`
	LogLevel           string `long:"log-level" description:"log level" default:"warn" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"QCANVAS_LOG_LEVEL"`
	LogRotationMaxDays int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"QCANVAS_LOG_ROTATION_MAX_DAYS"`
	SettingPath        string `long:"setting-path" description:"setting file path" default:"./setting/setting.toml" env:"QCANVAS_SETTING_PATH"`
	StorePath          string `long:"store-path" description:"sqlite file of saved circuits, overrides [store] path" env:"QCANVAS_STORE_PATH"`
	OwnerID            string `long:"owner" description:"owner id stamped on saved circuits" default:"anonymous" env:"QCANVAS_OWNER_ID"`
}
