package handler

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
)

var registerOnce sync.Once

// RegisterValidators 向 gin 的绑定校验器注册自定义规则
//   - classcode: 班级代码，形如 2024-1A-T08
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("classcode", func(fl validator.FieldLevel) bool {
			return service.ValidClassCode(fl.Field().String())
		})
	})
	return err
}
