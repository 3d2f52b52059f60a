package config

import (
	"fmt"
	"os"
	"strings"

	derrors "git.home.luguber.info/inful/docreports/internal/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validatePaths(); err != nil {
		return err
	}
	if err := cv.validateCloc(); err != nil {
		return err
	}
	if err := cv.validateRenderer(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validatePaths() error {
	info, err := os.Stat(cv.config.Paths.Root)
	if err != nil {
		return derrors.ValidationFailed("paths.root", fmt.Sprintf("project root not accessible: %v", err))
	}
	if !info.IsDir() {
		return derrors.ValidationFailed("paths.root", "project root is not a directory")
	}
	return nil
}

func (cv *configurationValidator) validateCloc() error {
	for _, dir := range cv.config.Cloc.ExcludedDirs {
		if strings.TrimSpace(dir) == "" {
			return derrors.ValidationFailed("cloc.excluded_dirs", "entries must not be empty")
		}
		if strings.Contains(dir, ",") {
			return derrors.ValidationFailed("cloc.excluded_dirs", fmt.Sprintf("entry %q must not contain a comma", dir))
		}
	}
	return nil
}

func (cv *configurationValidator) validateRenderer() error {
	rc := cv.config.Renderer
	if !rc.Skip && strings.TrimSpace(rc.Command) == "" {
		return derrors.ValidationFailed("renderer.command", "command is required unless renderer.skip is set")
	}
	return nil
}
