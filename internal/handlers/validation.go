package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the engine's enum tags to gin's binding validator.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("gin binding validator is not go-playground/validator")
		}
		tags := map[string]validator.Func{
			"vouchertype": func(fl validator.FieldLevel) bool {
				return domain.VoucherType(fl.Field().String()).IsValid()
			},
			"voucherstatus": func(fl validator.FieldLevel) bool {
				return domain.VoucherStatus(fl.Field().String()).IsValid()
			},
			"accounttype": func(fl validator.FieldLevel) bool {
				return domain.AccountType(fl.Field().String()).IsValid()
			},
		}
		for tag, fn := range tags {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
			}
		}
	})
}
