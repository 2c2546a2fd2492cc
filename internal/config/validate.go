package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDecimate(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDecimate() error {
	if c.Decimate.FrameDuration <= 0 {
		return errors.New("decimate.frame_duration must be greater than zero")
	}
	if c.Decimate.MergeTolerance < 0 {
		return errors.New("decimate.merge_tolerance must not be negative")
	}
	return nil
}

func (c *Config) validateEncode() error {
	if c.Encode.SoftwareCodec == "" {
		return errors.New("encode.software_codec must be set")
	}
	if c.Encode.SoftwareCRF < 0 || c.Encode.SoftwareCRF > 51 {
		return errors.New("encode.software_crf must be between 0 and 51")
	}
	if c.Encode.VAAPIQP < 0 || c.Encode.VAAPIQP > 52 {
		return errors.New("encode.vaapi_qp must be between 0 and 52")
	}
	if c.Encode.VideoToolboxQScale < 1 || c.Encode.VideoToolboxQScale > 100 {
		return errors.New("encode.videotoolbox_qscale must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}
