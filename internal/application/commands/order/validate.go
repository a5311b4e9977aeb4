package order

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/domain/category"
	"github.com/sitehatch/market-backend/internal/domain/pricing"
)

// SubmitOrderRequest carries everything the storefront form collects.
// DurationMonths and PageCount of zero mean "not provided" and fall back to
// the pricing defaults.
type SubmitOrderRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required"`

	Category   string `validate:"required"`
	TemplateID uint64 `validate:"required"`
	Country    string

	DurationMonths int
	PageCount      int
	ExtraPages     string

	DomainChoice string
	DomainName   string
	ThemeChoice  string
	CustomColor  string

	SocialHandles []string
	Message       string

	// Raw form values; only keys declared for the selected category are kept.
	Form map[string]string

	Files           []PendingFile
	SubmissionToken string
}

// InvalidCategoryError lists the categories the storefront may submit.
type InvalidCategoryError struct {
	Category string
	Valid    []category.Category
}

func (e InvalidCategoryError) Error() string {
	valid := make([]string, len(e.Valid))
	for i, c := range e.Valid {
		valid[i] = string(c)
	}
	return fmt.Sprintf("invalid category %q, valid categories: %s", e.Category, strings.Join(valid, ", "))
}

var validate = validator.New()

// Validate enforces the submission invariants. It runs before any network
// call: a failure here means nothing was uploaded or written.
func Validate(req *SubmitOrderRequest) error {
	if err := validate.Struct(req); err != nil {
		return errs.ValidationError{Err: err}
	}

	cat := category.Category(req.Category)
	if !category.Valid(cat) {
		return errs.ValidationError{Err: InvalidCategoryError{Category: req.Category, Valid: category.All()}}
	}
	if missing := category.MissingRequired(cat, req.Form); len(missing) > 0 {
		return errs.ValidationError{Err: fmt.Errorf("missing required %s fields: %s", cat, strings.Join(missing, ", "))}
	}

	if req.PageCount > pricing.ExtraPagesThreshold && strings.TrimSpace(req.ExtraPages) == "" {
		return errs.ValidationError{Err: fmt.Errorf("extra pages description is required for more than %d pages", pricing.ExtraPagesThreshold)}
	}
	if req.DomainChoice == string(consts.DomainCustom) && strings.TrimSpace(req.DomainName) == "" {
		return errs.ValidationError{Err: fmt.Errorf("domain name is required when bringing a custom domain")}
	}
	if req.ThemeChoice == string(consts.ThemeCustom) && strings.TrimSpace(req.CustomColor) == "" {
		return errs.ValidationError{Err: fmt.Errorf("custom color is required for a custom theme")}
	}

	return nil
}

// categoryExtension keeps only the form values declared for the selected
// category, so a field filled in under a previously selected category never
// reaches the stored order.
func categoryExtension(req *SubmitOrderRequest) map[string]string {
	return category.Extension(category.Category(req.Category), req.Form)
}
