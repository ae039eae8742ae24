package handlers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/SscSPs/hydration_tracker_app/internal/utils/hydration"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the domain binding tags on gin's validator. Safe to call repeatedly.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		tags := map[string]validator.Func{
			"timezone": func(fl validator.FieldLevel) bool {
				return hydration.IsValidTimezone(fl.Field().String())
			},
			"subscription": func(fl validator.FieldLevel) bool {
				return domain.SubscriptionTier(strings.ToLower(fl.Field().String())).IsValid()
			},
			"gender": func(fl validator.FieldLevel) bool {
				return domain.Gender(fl.Field().String()).IsValid()
			},
		}
		for tag, fn := range tags {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}
