// Package config defines the CLI structure and configuration for roverlink.
package config

import (
	"github.com/lunarops/roverlink/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"ROVERLINK_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"ROVERLINK_LOG_FILE"`
	RawFile string `help:"Raw packet log file path (default: none)" env:"ROVERLINK_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Config string `help:"Path to configuration file" env:"ROVERLINK_CONFIG"`

	Serve  cmd.Serve  `cmd:"" help:"Run the bridge server (controller states in, firmware packets out)"`
	Drive  cmd.Drive  `cmd:"" help:"Run the drive client (read a controller, stream states to the bridge)"`
	Encode cmd.Encode `cmd:"" help:"Encode one controller state against a layout and print the packet"`
}
