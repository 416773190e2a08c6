package payments

import (
	"context"
	"fmt"
	"log"
	"time"

	"cardpay/internal/config"
	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase/interfaces"

	"github.com/go-resty/resty/v2"
)

const (
	paypalSandboxURL    = "https://api-m.sandbox.paypal.com"
	paypalLiveURL       = "https://api-m.paypal.com"
	paypalTokenPath     = "/v1/oauth2/token"
	paypalPaymentPath   = "/v1/payments/payment"
	paypalIntentSale    = "sale"
	paypalMethodCard    = "credit_card"
	paypalGrantType     = "client_credentials"
	paypalContentTypeJS = "application/json"
)

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type paypalPayment struct {
	Intent       string              `json:"intent"`
	Payer        paypalPayer         `json:"payer"`
	Transactions []paypalTransaction `json:"transactions"`
}

type paypalPayer struct {
	PaymentMethod      string                    `json:"payment_method"`
	FundingInstruments []paypalFundingInstrument `json:"funding_instruments"`
}

type paypalFundingInstrument struct {
	CreditCard paypalCreditCard `json:"credit_card"`
}

type paypalCreditCard struct {
	Number      string `json:"number"`
	Type        string `json:"type"`
	ExpireMonth string `json:"expire_month"`
	ExpireYear  string `json:"expire_year"`
	CVV2        string `json:"cvv2"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type paypalTransaction struct {
	Amount paypalAmount `json:"amount"`
}

type paypalAmount struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// PayPalGateway charges cards through the PayPal REST payments API.
//
// Deprecated upstream: PayPal no longer recommends sending raw card data;
// the adapter is kept for accounts that still have direct card processing.
type PayPalGateway struct {
	client       *resty.Client
	baseURL      string
	clientID     string
	clientSecret string
}

var _ interfaces.IPaymentGateway = (*PayPalGateway)(nil)

// NewPayPalGateway uses the sandbox in every environment except production.
func NewPayPalGateway(cfg config.PayPalConfig, env config.Environment, timeout time.Duration) (*PayPalGateway, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Printf("[payment][gateway][paypal] missing PAYPAL_ID/PAYPAL_SECRET")
		return nil, &ConfigError{
			Processor: ProcessorPayPal,
			Message:   "PayPal API credentials must be provided in PAYPAL_ID and PAYPAL_SECRET",
			Err:       ErrMissingCredentials,
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = paypalSandboxURL
		if env == config.EnvironmentProduction {
			baseURL = paypalLiveURL
		}
	}
	log.Printf("[payment][gateway][paypal] client initialized base_url=%s", baseURL)

	return &PayPalGateway{
		client:       newRestyClient(baseURL, timeout),
		baseURL:      baseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}, nil
}

func (g *PayPalGateway) BaseURL() string {
	return g.baseURL
}

func (g *PayPalGateway) Process(ctx context.Context, order entities.Order, card entities.CreditCard) (entities.GatewayResponse, error) {
	log.Printf("[payment][gateway][paypal] create start brand=%s last4=%s currency=%s", card.Brand(), card.LastFour(), order.NormalisedCurrency())

	token, err := g.accessToken(ctx)
	if err != nil {
		log.Printf("[payment][gateway][paypal] access token failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorPayPal, err)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", paypalContentTypeJS).
		SetBody(newPayPalPayment(order, card)).
		Post(paypalPaymentPath)
	if err != nil {
		log.Printf("[payment][gateway][paypal] create request failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorPayPal, err)
	}
	if resp.IsError() {
		log.Printf("[payment][gateway][paypal] create rejected status=%d", resp.StatusCode())
		return entities.GatewayResponse{}, processorError(ProcessorPayPal,
			fmt.Errorf("%w: status=%d body=%s", ErrProcessorRejected, resp.StatusCode(), resp.String()))
	}

	log.Printf("[payment][gateway][paypal] create success status=%d", resp.StatusCode())
	return entities.NewGatewayResponse(ProcessorPayPal, resp.Body()), nil
}

func (g *PayPalGateway) accessToken(ctx context.Context) (string, error) {
	var tok paypalTokenResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBasicAuth(g.clientID, g.clientSecret).
		SetFormData(map[string]string{"grant_type": paypalGrantType}).
		SetResult(&tok).
		Post(paypalTokenPath)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: token status=%d body=%s", ErrProcessorRejected, resp.StatusCode(), resp.String())
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrInvalidProcessorPayload)
	}
	return tok.AccessToken, nil
}

func newPayPalPayment(order entities.Order, card entities.CreditCard) paypalPayment {
	return paypalPayment{
		Intent: paypalIntentSale,
		Payer: paypalPayer{
			PaymentMethod: paypalMethodCard,
			FundingInstruments: []paypalFundingInstrument{{
				CreditCard: paypalCreditCard{
					Number:      card.NormalisedNumber(),
					Type:        string(card.Brand()),
					ExpireMonth: card.ExpMonth,
					ExpireYear:  card.ExpYear,
					CVV2:        card.CCV,
					FirstName:   card.FirstName,
					LastName:    card.LastName,
				},
			}},
		},
		Transactions: []paypalTransaction{{
			Amount: paypalAmount{
				Total:    order.NormalisedPrice(),
				Currency: order.NormalisedCurrency(),
			},
		}},
	}
}
