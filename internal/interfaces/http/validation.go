package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDecimal("", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("und_medida", func(fl validator.FieldLevel) bool {
		return entity.ValidUnit(fl.Field().String())
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return v
}

// bindBody decodifica o JSON e valida; em caso de erro já responde.
func bindBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
	}
	return check(c, out)
}

// bindQuery decodifica a query string e valida.
func bindQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, failWith(c, fiber.StatusBadRequest, "INVALID_QUERY", "parâmetros inválidos")
	}
	return check(c, out)
}

func check(c *fiber.Ctx, in any) (bool, error) {
	err := validate.Struct(in)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, fail(c, err)
	}
	fields := make(map[string]string, len(verrs))
	first := ""
	for _, fe := range verrs {
		name := fieldPath(fe)
		msg := fieldMessage(fe)
		fields[name] = msg
		if first == "" {
			first = name + ": " + msg
		}
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ActionResponse{
		Success: false,
		Error:   first,
		Code:    "VALIDATION",
		Fields:  fields,
	})
}

// fieldPath tira o nome da struct raiz: "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("informe ao menos %s item(ns)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("mínimo de %s caracteres", fe.Param())
		}
		return fmt.Sprintf("valor mínimo %s", fe.Param())
	case "max":
		return fmt.Sprintf("valor máximo %s", fe.Param())
	case "len":
		return fmt.Sprintf("deve ter %s caracteres", fe.Param())
	case "oneof":
		return "valor deve ser um de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "decimal":
		return "número inválido"
	case "und_medida":
		return "unidade deve ser mts, br ou un"
	case "date":
		return "data deve estar no formato AAAA-MM-DD"
	case "base64":
		return "conteúdo base64 inválido"
	default:
		return "valor inválido"
	}
}
