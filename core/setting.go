package core

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"go.uber.org/zap"
)

type HistorySetting struct {
	Limit int `toml:"limit"`
}

type SimulatorSetting struct {
	// DelayMS is an artificial pause before results are returned.
	DelayMS int   `toml:"delay_ms"`
	Seed    int64 `toml:"seed"`
}

type StoreSetting struct {
	Path string `toml:"path"`
}

type ExportSetting struct {
	DefaultTarget string `toml:"default_target"`
}

type ImportSetting struct {
	DefaultLanguage string `toml:"default_language"`
}

type MetricsSetting struct {
	Dir       string `toml:"dir"`
	PeriodSec int    `toml:"period_sec"`
}

type Setting struct {
	History   HistorySetting   `toml:"history"`
	Simulator SimulatorSetting `toml:"simulator"`
	Store     StoreSetting     `toml:"store"`
	Export    ExportSetting    `toml:"export"`
	Import    ImportSetting    `toml:"import"`
	Metrics   MetricsSetting   `toml:"metrics"`
}

var globalSetting *Setting

func NewSetting() *Setting {
	return &Setting{
		History:   HistorySetting{Limit: 50},
		Simulator: SimulatorSetting{DelayMS: 0},
		Store:     StoreSetting{Path: "./shares/qcanvas.db"},
		Export:    ExportSetting{DefaultTarget: "qiskit"},
		Import:    ImportSetting{DefaultLanguage: "qasm"},
		Metrics:   MetricsSetting{PeriodSec: 60},
	}
}

func ResetSetting() {
	globalSetting = NewSetting()
}

// ParseSettingFromPath overlays the file on the defaults. A missing file
// leaves the defaults in place.
func ParseSettingFromPath(settingsPath string) error {
	if globalSetting == nil {
		ResetSetting()
	}
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		zap.L().Info(fmt.Sprintf("setting file %s is not found. Use default setting", settingsPath))
		return nil
	}
	tomlString, err := common.ReadSettingsFile(settingsPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to read setting file/reason:%s", err))
		return err
	}
	return globalSetting.parseSetting(tomlString)
}

func GetGlobalSetting() *Setting {
	if globalSetting == nil {
		ResetSetting()
	}
	return globalSetting
}

func (s *Setting) parseSetting(tomlString string) error {
	_, err := toml.Decode(tomlString, s)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse setting/reason:%s", err))
		return err
	}
	zap.L().Debug(fmt.Sprintf("Setting is %+v", *s))
	return nil
}
