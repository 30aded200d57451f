// Package config defines the tunable parameters of the teleop programs.
package config

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/utils"
)

// Config holds every tunable of the programs. Each program reads only the sections it needs.
type Config struct {
	Throttle control.ThrottleScaler `json:"throttle"`
	Turn     TurnConfig             `json:"turn"`
	Drive    DriveConfig            `json:"drive"`
	Jewel    JewelConfig            `json:"jewel"`
	Shooter  ShooterConfig          `json:"shooter"`
}

// TurnConfig describes the heading controller.
type TurnConfig struct {
	PCoeff        float64 `json:"p_coeff"`
	ThresholdDeg  float64 `json:"threshold_deg"`
	PowerCutOff   float64 `json:"power_cut_off"`
	DegreesToTurn int     `json:"degrees_to_turn"`
}

// DriveConfig describes the drive base.
type DriveConfig struct {
	UseEncoders       bool `json:"use_encoders"`
	UseBraking        bool `json:"use_braking"`
	FieldOriented     bool `json:"field_oriented"`
	SimultaneousSteer bool `json:"simultaneous_steer"`
	// XDriveAlignDisableTrigger is the right trigger value that disables X-drive stick alignment.
	XDriveAlignDisableTrigger float64 `json:"x_drive_align_disable_trigger"`
}

// JewelConfig describes the jewel arms.
type JewelConfig struct {
	SettleMs         int     `json:"settle_ms"`
	DeployedPosition float64 `json:"deployed_position"`
	StowedPosition   float64 `json:"stowed_position"`
}

// Settle returns the time the arm is given to come to rest before the colour is read.
func (c JewelConfig) Settle() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}

// ShooterConfig describes the particle shooter.
type ShooterConfig struct {
	SpinUpMs int `json:"spin_up_ms"`
	// GateConveyor holds the conveyor's forward feed until the shooter has spun up.
	GateConveyor bool `json:"gate_conveyor"`
}

// SpinUp returns the time the shooter must run before the conveyor may feed it.
func (c ShooterConfig) SpinUp() time.Duration {
	return time.Duration(c.SpinUpMs) * time.Millisecond
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Throttle: control.DefaultThrottleScaler(),
		Turn: TurnConfig{
			PCoeff:        control.DefaultHeadingKp,
			ThresholdDeg:  control.DefaultHeadingThreshold,
			PowerCutOff:   control.DefaultPowerCutOff,
			DegreesToTurn: 90,
		},
		Drive: DriveConfig{
			XDriveAlignDisableTrigger: 0.65,
		},
		Jewel: JewelConfig{
			SettleMs:         500,
			DeployedPosition: 0.0,
			StowedPosition:   1.0,
		},
		Shooter: ShooterConfig{
			SpinUpMs: 750,
		},
	}
}

// FromAttributes decodes attributes over the defaults. Keys that match no field are an error.
func FromAttributes(attributes map[string]interface{}) (*Config, error) {
	cfg := Default()
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Result:   cfg,
		Metadata: &md,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode config attributes")
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return nil, errors.Errorf("unknown config keys: %s", strings.Join(md.Unused, ", "))
	}
	return cfg, nil
}

// Read reads a JSON config file, expanding environment variables, and validates it.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var attributes map[string]interface{}
	if err := json.Unmarshal(buf, &attributes); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config from %s", filePath)
	}
	cfg, err := FromAttributes(attributes)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(filePath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	var err error
	err = multierr.Append(err, c.Throttle.Validate(path+".throttle"))
	err = multierr.Append(err, c.Turn.Validate(path+".turn"))
	err = multierr.Append(err, c.Drive.Validate(path+".drive"))
	err = multierr.Append(err, c.Jewel.Validate(path+".jewel"))
	if c.Shooter.SpinUpMs < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError(path+".shooter",
			errors.New("spin_up_ms must not be negative")))
	}
	return err
}

// Validate ensures the turn parameters are usable.
func (c TurnConfig) Validate(path string) error {
	if c.ThresholdDeg < 0 {
		return utils.NewConfigValidationError(path, errors.New("threshold_deg must not be negative"))
	}
	if c.PowerCutOff < 0 || c.PowerCutOff > 1 {
		return utils.NewConfigValidationError(path, errors.New("power_cut_off must be in [0, 1]"))
	}
	return nil
}

// Validate ensures the drive parameters are usable.
func (c DriveConfig) Validate(path string) error {
	if c.XDriveAlignDisableTrigger <= 0 || c.XDriveAlignDisableTrigger > 1 {
		return utils.NewConfigValidationError(path, errors.New("x_drive_align_disable_trigger must be in (0, 1]"))
	}
	return nil
}

// Validate ensures the jewel arm parameters are usable.
func (c JewelConfig) Validate(path string) error {
	if c.SettleMs < 0 {
		return utils.NewConfigValidationError(path, errors.New("settle_ms must not be negative"))
	}
	for _, pos := range []float64{c.DeployedPosition, c.StowedPosition} {
		if pos < 0 || pos > 1 {
			return utils.NewConfigValidationError(path, errors.Errorf("servo position %v is outside [0, 1]", pos))
		}
	}
	return nil
}
