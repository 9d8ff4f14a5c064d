// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/roi-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for roi-calculator.
type Configuration struct {
	Company     Company
	Assessments []Assessment
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
	Calibration CalibrationConfig `yaml:"calibration,omitempty"`
	Report      ReportConfig      `yaml:"report,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// CalibrationConfig points at an optional replacement for the built-in
// calibration tables.
type CalibrationConfig struct {
	File string `yaml:"file,omitempty"`
}

// ReportConfig holds report assembly options.
type ReportConfig struct {
	BlocksFile string `yaml:"blocksFile,omitempty"` // generated block library, embedded default when empty
	Variation  int    `yaml:"variation,omitempty"`
	OutputDir  string `yaml:"outputDir,omitempty"`
}

// Company is the profile shared by every assessment.
type Company struct {
	Name     string
	Revenue  float64
	Industry string
	// Expenses maps category keys to fractions of revenue. Omitted entirely,
	// the default distributor profile is used.
	Expenses map[string]float64
}

// Assessment is one named solution selection evaluated at a risk tolerance.
type Assessment struct {
	Name          string
	Active        bool
	RiskTolerance string
	Solutions     []string
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ActiveAssessments returns the assessments marked active, in file order.
func (c *Configuration) ActiveAssessments() []Assessment {
	var active []Assessment
	for _, a := range c.Assessments {
		if a.Active {
			active = append(active, a)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var assessments []validation.AssessmentConfig
	for _, a := range c.Assessments {
		assessments = append(assessments, validation.AssessmentConfig{
			Name:      a.Name,
			Active:    a.Active,
			Solutions: a.Solutions,
		})
	}

	validator := validation.ConfigValidator{
		Company: validation.CompanyConfig{
			Name:     c.Company.Name,
			Expenses: c.Company.Expenses,
		},
		Assessments: assessments,
	}
	return validator.ValidateAll()
}
