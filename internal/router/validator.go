package router

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"podify/internal/model"
)

var (
	passwordCharset = regexp.MustCompile(`^[a-zA-Z\d!@#$%^&*]+$`)
	passwordLetter  = regexp.MustCompile(`[a-zA-Z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*]`)
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator with the request-level tags registered:
// objectid, category, visibility and strongpassword.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.IsAudioCategory(fl.Field().String())
	})
	// auto playlists are created by the generator only
	_ = v.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		switch model.Visibility(fl.Field().String()) {
		case model.VisibilityPublic, model.VisibilityPrivate:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func isStrongPassword(s string) bool {
	return passwordCharset.MatchString(s) &&
		passwordLetter.MatchString(s) &&
		passwordDigit.MatchString(s) &&
		passwordSpecial.MatchString(s)
}
