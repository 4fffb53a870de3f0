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

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(fmt.Sprintf("config: failed to register validator translations: %v", err))
	}

	// Report field names as they appear in the YAML file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// fieldErrorMessage renders one validation failure with its full YAML
// path, so "addr is a required field" becomes
// "cache.redis.addr is a required field".
func fieldErrorMessage(fe validator.FieldError) string {
	path := strings.TrimPrefix(fe.Namespace(), "Config.")
	msg := fe.Translate(trans)

	if rest, ok := strings.CutPrefix(msg, fe.Field()); ok {
		return path + rest
	}
	return fmt.Sprintf("%s: %s", path, msg)
}
