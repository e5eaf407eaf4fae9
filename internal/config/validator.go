package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const requiredForDriverTag = "required_for_driver"

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(validateDatabaseConfig, DatabaseConfig{})
	if err := validate.RegisterTranslation(requiredForDriverTag, trans, func(ut ut.Translator) error {
		return ut.Add(requiredForDriverTag, "{0} is required for the {1} driver", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(requiredForDriverTag, strings.TrimPrefix(fe.Namespace(), "Config."), fe.Param())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register %s translation: %w", requiredForDriverTag, err)
	}
	return validate, trans, nil
}

// validateDatabaseConfig requires the connection fields of the selected driver only.
func validateDatabaseConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(DatabaseConfig)

	var required map[string]string
	switch cfg.Driver {
	case "sqlite":
		required = map[string]string{"path": cfg.Path}
	case "mysql":
		required = map[string]string{"host": cfg.Host, "database": cfg.Database}
	}
	for name, value := range required {
		if value == "" {
			sl.ReportError(value, name, name, requiredForDriverTag, cfg.Driver)
		}
	}
}
