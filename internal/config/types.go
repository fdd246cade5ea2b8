// Package config defines the YAML-driven RunConfig document that drives a
// single orchestration run, and validates it with struct tags the way the
// teacher validates its own step configuration.
package config

// OutputSpec names the rendered report formats and where to write them.
type OutputSpec struct {
	Formats []string `yaml:"formats,omitempty" validate:"omitempty,dive,oneof=json markdown executive_summary gap_report"`
	Path    string   `yaml:"path,omitempty"`
}

// ConfidenceWeights is the optional confidence-weight block of a run
// configuration (§4.3.2). Every field is optional and is validated to lie in
// [0,1] when set. The confidence scorer does not read these values: it always
// applies its built-in weights.
type ConfidenceWeights struct {
	Config      float64 `yaml:"config,omitempty" validate:"omitempty,min=0,max=1"`
	MasterData  float64 `yaml:"master_data,omitempty" validate:"omitempty,min=0,max=1"`
	Transaction float64 `yaml:"transaction,omitempty" validate:"omitempty,min=0,max=1"`
	Code        float64 `yaml:"code,omitempty" validate:"omitempty,min=0,max=1"`
	Security    float64 `yaml:"security,omitempty" validate:"omitempty,min=0,max=1"`
	Interface   float64 `yaml:"interface,omitempty" validate:"omitempty,min=0,max=1"`
	Process     float64 `yaml:"process,omitempty" validate:"omitempty,min=0,max=1"`
}

// RunConfig is the full YAML document describing one orchestration run.
type RunConfig struct {
	System            string             `yaml:"system" validate:"required"`
	Mode              string             `yaml:"mode" validate:"required,oneof=live offline"`
	Concurrency       int                `yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=64"`
	Modules           []string           `yaml:"modules,omitempty"`
	CheckpointPath    string             `yaml:"checkpoint_path,omitempty"`
	Output            OutputSpec         `yaml:"output,omitempty"`
	ConfidenceWeights *ConfidenceWeights `yaml:"confidence_weights,omitempty"`
	LogLevel          string             `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConcurrency is applied when the document omits concurrency.
const DefaultConcurrency = 5

// ResolvedConcurrency returns the configured concurrency, or
// DefaultConcurrency when unset.
func (c RunConfig) ResolvedConcurrency() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

// ResolvedLogLevel returns the configured log level, or "info" when unset.
func (c RunConfig) ResolvedLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}
