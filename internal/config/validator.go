package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared, lazily-constructed validator used
// across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// ValidateConfig performs struct-tag validation plus one check a tag alone
// cannot express: module filter entries must not be blank. Confidence-weight
// overrides are checked only by their struct tags (each within [0,1] when set).
func ValidateConfig(cfg *RunConfig) error {
	if cfg == nil {
		return fmt.Errorf("run configuration is nil")
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	for i, m := range cfg.Modules {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("modules[%d]: module id must not be blank", i)
		}
	}

	return nil
}

// convertValidationError flattens go-playground/validator's field errors
// into a single readable message, the same shape the teacher's config
// package produces for its own struct-tag failures.
func convertValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: failed %q validation", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid run configuration: %s", strings.Join(parts, "; "))
}
