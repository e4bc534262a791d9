package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"dugun.link/repositories"

	"github.com/go-playground/validator/v10"
)

// ServiceError servis katmanının döndürdüğü sabit hatalardır; errors.Is ile kontrol edilir.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

const (
	ErrNotFound           ServiceError = "kayıt bulunamadı"
	ErrForbidden          ServiceError = "bu işlem için yetkiniz yok"
	ErrTemplateInUse      ServiceError = "tema bir davetiye tarafından kullanıldığı için silinemez"
	ErrInvalidState       ServiceError = "davetiye bu işlem için uygun durumda değil"
	ErrInvalidCredentials ServiceError = "e-posta veya şifre hatalı"
	ErrSlugExhausted      ServiceError = "davetiye için benzersiz adres üretilemedi"
)

// ValidationError alan bazlı doğrulama hatalarını taşır. Anahtarlar JSON alan adlarıdır.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "doğrulama hatası"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "doğrulama hatası: " + strings.Join(parts, ", ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// IsValidationError hatanın bir ValidationError olup olmadığını döndürür.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateStruct validator hatalarını ValidationError'a çevirir.
func validateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[fe.Field()] = validationMessage(fe)
	}
	return ve
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "zorunlu alan"
	case "max":
		return fmt.Sprintf("en fazla %s karakter olabilir", fe.Param())
	case "min":
		return fmt.Sprintf("en az %s karakter olmalı", fe.Param())
	case "oneof":
		return fmt.Sprintf("şunlardan biri olmalı: %s", fe.Param())
	case "email":
		return "geçerli bir e-posta adresi olmalı"
	case "latitude", "longitude":
		return "geçerli bir koordinat olmalı"
	case "gt":
		return fmt.Sprintf("%s değerinden büyük olmalı", fe.Param())
	}
	return "geçersiz değer"
}

// mapRepositoryError repository hatalarını servis hatalarına çevirir.
func mapRepositoryError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
