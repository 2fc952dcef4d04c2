package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/zcbus/zcbus-go/pkg/config"
)

// RunConfigShow prints the effective configuration as YAML.
func RunConfigShow(cfg *config.Config, w io.Writer) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// RunConfigInit writes the built-in configuration to path. An existing file
// is only replaced with force.
func RunConfigInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}
	return config.Default().Save(path)
}
