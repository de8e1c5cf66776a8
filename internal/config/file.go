package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"lumina/internal/palette"
)

type CacheConfig struct {
	MaxEntries int    `yaml:"maxEntries" validate:"min=0,max=100000"`
	Persistent bool   `yaml:"persistent"`
	DBPath     string `yaml:"dbPath"`
}

type VideoConfig struct {
	SeekTimeout time.Duration `yaml:"seekTimeout" validate:"min=0"`
}

// File is the on-disk options file.
type File struct {
	Options palette.Options `yaml:"options"`
	Cache   CacheConfig     `yaml:"cache"`
	Video   VideoConfig     `yaml:"video"`
}

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field string
	Tag   string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed validation for tag '%s'", e.Field, e.Tag)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})

	return validateInst
}

// LoadOptionsFile reads and validates the options file at path. A missing
// file yields the zero File, which normalizes to the defaults.
func LoadOptionsFile(path string) (File, error) {
	var file File

	body, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return file, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read options file: %w", err)
	}

	if err := yaml.Unmarshal(body, &file); err != nil {
		return File{}, fmt.Errorf("parse options file %s: %w", path, err)
	}

	if err := Validate(file); err != nil {
		return File{}, err
	}

	return file, nil
}

func Validate(file File) error {
	err := validatorInstance().Struct(file)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return &ValidationError{Field: yamlishFieldName(first), Tag: first.Tag(), Err: err}
	}

	return fmt.Errorf("validate options file: %w", err)
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
