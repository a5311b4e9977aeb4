package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/domain/country"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type PaymentConfig struct {
	apiKey    string
	returnUrl string
}

func NewPaymentConfig() PaymentConfig {
	return PaymentConfig{
		apiKey:    os.Getenv("STRIPE_KEY"),
		returnUrl: os.Getenv("STRIPE_RETURN_URL"),
	}
}

// Checkout creates an embedded Stripe checkout session for buying a
// ready-made template at its base price in the customer's currency.
type Checkout struct {
	uowFactory *dbs.UOWFactory
	cfg        PaymentConfig
}

func NewCheckout(uowFactory *dbs.UOWFactory, cfg PaymentConfig) *Checkout {
	stripe.Key = cfg.apiKey
	stripe.SetHTTPClient(&http.Client{Timeout: 10 * time.Second})
	return &Checkout{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

func (c *Checkout) Execute(ctx context.Context, req *dto.CheckoutRequest) (clientSecret string, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return "", err
	}
	defer uow.Finalize(&err)

	template, err := repo.NewTemplateRepo(tx).GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = errs.LookupError{Err: fmt.Errorf("template %d does not exist", req.TemplateID)}
			return "", err
		}
		err = errs.LookupError{Err: err}
		return "", err
	}

	resolved := country.Resolve(req.Country)
	base := template.BasePrice(resolved.Currency)
	if !base.IsPositive() {
		err = errs.ValidationError{Err: fmt.Errorf("template %q has no price in %s", template.Name, resolved.Currency)}
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		UIMode:    stripe.String("embedded"),
		ReturnURL: stripe.String(c.cfg.returnUrl + "/complete?session_id={CHECKOUT_SESSION_ID}"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(stripeCurrency(resolved.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(template.Name),
					},
					UnitAmount: stripe.Int64(minorUnits(base)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
	}

	s, err := session.New(params)
	if err != nil {
		err = fmt.Errorf("error creating session: %v", err)
		return "", err
	}

	return s.ClientSecret, err
}

// stripeCurrency maps the storefront label to the ISO code stripe expects.
func stripeCurrency(label string) string {
	if label == "KSH" {
		return "kes"
	}
	return strings.ToLower(label)
}

func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
