package bindings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/go-playground/validator/v10"

	"github.com/erraggy/asyncforge/aserrors"
)

type levelKey struct{}

// WithLevel returns a context that tells ValidateConfig which binding level
// is being validated.
func WithLevel(ctx context.Context, level Level) context.Context {
	return context.WithValue(ctx, levelKey{}, level)
}

// LevelFrom returns the level recorded by WithLevel, or "" when none was set.
func LevelFrom(ctx context.Context) Level {
	l, _ := ctx.Value(levelKey{}).(Level)
	return l
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// required_for=channel operation: required only when validating at one
	// of the listed levels.
	if err := v.RegisterValidationCtx("required_for", requiredFor, true); err != nil {
		panic(err)
	}
	// arn=sqs: a six-segment ARN for the given service.
	if err := v.RegisterValidation("arn", validARN); err != nil {
		panic(err)
	}
	return v
}

func requiredFor(ctx context.Context, fl validator.FieldLevel) bool {
	level := LevelFrom(ctx)
	if level == "" || !slices.Contains(strings.Fields(fl.Param()), string(level)) {
		return true
	}
	return !fl.Field().IsZero()
}

func validARN(fl validator.FieldLevel) bool {
	return CheckARN(fl.Field().String(), fl.Param()) == nil
}

// CheckARN verifies that s is a fully qualified ARN for service: six
// colon-separated segments with non-empty partition, service, account and
// resource. SQS ARNs must also carry a region.
func CheckARN(s, service string) error {
	if len(strings.SplitN(s, ":", 6)) != 6 {
		return fmt.Errorf("ARN %q must have 6 colon-separated segments", s)
	}
	a, err := arn.Parse(s)
	if err != nil {
		return err
	}
	var missing []string
	if a.Partition == "" {
		missing = append(missing, "partition")
	}
	if a.Service == "" {
		missing = append(missing, "service")
	}
	if a.AccountID == "" {
		missing = append(missing, "account")
	}
	if a.Resource == "" {
		missing = append(missing, "resource")
	}
	if service == "sqs" && a.Region == "" {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return fmt.Errorf("ARN %q is missing %s", s, strings.Join(missing, ", "))
	}
	if service != "" && a.Service != service {
		return fmt.Errorf("ARN %q is for service %q, want %q", s, a.Service, service)
	}
	return nil
}

// ValidateStruct checks the validate struct tags of cfg and converts each
// failure into a *aserrors.BindingError. Missing required fields are marked
// Required. Multiple failures are joined. Fields named in except (Go field
// names) are not checked.
func ValidateStruct(ctx context.Context, bindingType string, cfg any, except ...string) error {
	var err error
	if len(except) > 0 {
		err = validate.StructExceptCtx(ctx, cfg, except...)
	} else {
		err = validate.StructCtx(ctx, cfg)
	}
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &aserrors.BindingError{BindingType: bindingType, Message: "invalid configuration", Cause: err}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &aserrors.BindingError{
			BindingType: bindingType,
			Field:       fe.Field(),
			Required:    strings.HasPrefix(fe.Tag(), "required"),
			Message:     describe(fe),
		})
	}
	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_for":
		return "is required"
	case "required_without":
		return fmt.Sprintf("is required when %s is not set", fe.Param())
	case "required_unless":
		return fmt.Sprintf("is required unless %s", fe.Param())
	case "required_if":
		return fmt.Sprintf("is required when %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return fmt.Sprintf("must be a URL, got %q", fe.Value())
	case "arn":
		return CheckARN(fmt.Sprint(fe.Value()), fe.Param()).Error()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// IsRequired reports whether err includes a missing required identifier.
func IsRequired(err error) bool {
	if err == nil {
		return false
	}
	var be *aserrors.BindingError
	if errors.As(err, &be) && be.Required {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if IsRequired(e) {
				return true
			}
		}
	}
	return false
}
