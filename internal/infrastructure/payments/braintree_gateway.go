package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"cardpay/internal/config"
	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase/interfaces"

	"github.com/go-resty/resty/v2"
)

const (
	braintreeSandboxURL  = "https://payments.sandbox.braintree-api.com"
	braintreeLiveURL     = "https://payments.braintree-api.com"
	braintreeGraphQLPath = "/graphql"
	braintreeAPIVersion  = "2019-01-01"
)

const tokenizeCreditCardMutation = `mutation TokenizeCreditCard($input: TokenizeCreditCardInput!) {
  tokenizeCreditCard(input: $input) {
    paymentMethod { id }
  }
}`

const chargeCreditCardMutation = `mutation ChargeCreditCard($input: ChargeCreditCardInput!) {
  chargeCreditCard(input: $input) {
    transaction {
      id
      status
      merchantAccountId
      amount { value currencyCode }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLEnvelope struct {
	Errors []graphQLError `json:"errors"`
}

func (e graphQLEnvelope) err() error {
	if len(e.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return fmt.Errorf("%w: %s", ErrProcessorRejected, strings.Join(msgs, "; "))
}

type tokenizeCreditCardResponse struct {
	graphQLEnvelope
	Data struct {
		TokenizeCreditCard struct {
			PaymentMethod struct {
				ID string `json:"id"`
			} `json:"paymentMethod"`
		} `json:"tokenizeCreditCard"`
	} `json:"data"`
}

type chargeCreditCardResponse struct {
	graphQLEnvelope
	Data struct {
		ChargeCreditCard struct {
			Transaction struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"transaction"`
		} `json:"chargeCreditCard"`
	} `json:"data"`
}

// BraintreeGateway charges cards through the Braintree GraphQL API.
//
// Braintree ties each merchant account to one currency, so every currency the
// gateway should accept needs an entry in the account mapping. A charge in any
// other currency fails before a request is made.
type BraintreeGateway struct {
	client     *resty.Client
	baseURL    string
	merchantID string
	accounts   map[string]string
}

var _ interfaces.IPaymentGateway = (*BraintreeGateway)(nil)

func NewBraintreeGateway(cfg config.BraintreeConfig, env config.Environment, timeout time.Duration) (*BraintreeGateway, error) {
	if cfg.MerchantID == "" || cfg.PublicKey == "" || cfg.PrivateKey == "" {
		log.Printf("[payment][gateway][braintree] missing BRAINTREE_ID/BRAINTREE_PUBLIC/BRAINTREE_PRIVATE")
		return nil, &ConfigError{
			Processor: ProcessorBraintree,
			Message:   "Braintree API credentials must be provided in BRAINTREE_ID, BRAINTREE_PUBLIC and BRAINTREE_PRIVATE",
			Err:       ErrMissingCredentials,
		}
	}
	if len(cfg.AccountCurrencies) == 0 {
		log.Printf("[payment][gateway][braintree] missing BRAINTREE_ACCOUNT_CURRENCIES")
		return nil, &ConfigError{
			Processor: ProcessorBraintree,
			Message:   "Braintree currency to merchant ID mapping must be provided in BRAINTREE_ACCOUNT_CURRENCIES",
			Err:       ErrMissingAccountMapping,
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = braintreeSandboxURL
		if env == config.EnvironmentProduction {
			baseURL = braintreeLiveURL
		}
	}

	accounts := make(map[string]string, len(cfg.AccountCurrencies))
	for currency, account := range cfg.AccountCurrencies {
		accounts[strings.ToUpper(currency)] = account
	}

	client := newRestyClient(baseURL, timeout).
		SetBasicAuth(cfg.PublicKey, cfg.PrivateKey).
		SetHeader("Braintree-Version", braintreeAPIVersion).
		SetHeader("Content-Type", "application/json")
	log.Printf("[payment][gateway][braintree] client initialized merchant_id=%s base_url=%s accounts=%d", cfg.MerchantID, baseURL, len(accounts))

	return &BraintreeGateway{
		client:     client,
		baseURL:    baseURL,
		merchantID: cfg.MerchantID,
		accounts:   accounts,
	}, nil
}

func (g *BraintreeGateway) BaseURL() string {
	return g.baseURL
}

// Process charges the card. A card carrying a Token (a vaulted payment method
// or a client nonce) skips tokenization.
func (g *BraintreeGateway) Process(ctx context.Context, order entities.Order, card entities.CreditCard) (entities.GatewayResponse, error) {
	currency := order.NormalisedCurrency()
	merchantAccountID := g.accounts[currency]
	if merchantAccountID == "" {
		log.Printf("[payment][gateway][braintree] no merchant account currency=%s", currency)
		return entities.GatewayResponse{}, processorError(ProcessorBraintree, ErrCurrencyNotSupported)
	}
	log.Printf("[payment][gateway][braintree] sale start brand=%s last4=%s currency=%s merchant_account_id=%s", card.Brand(), card.LastFour(), currency, merchantAccountID)

	paymentMethodID := card.Token
	if paymentMethodID == "" {
		var tokenized tokenizeCreditCardResponse
		if _, err := g.execute(ctx, tokenizeCreditCardMutation, map[string]any{
			"input": map[string]any{
				"creditCard": map[string]any{
					"number":          card.NormalisedNumber(),
					"expirationMonth": card.ExpMonth,
					"expirationYear":  card.ExpYear,
					"cvv":             card.CCV,
					"cardholderName":  card.CardholderName(),
				},
			},
		}, &tokenized); err != nil {
			log.Printf("[payment][gateway][braintree] tokenize failed err=%v", err)
			return entities.GatewayResponse{}, processorError(ProcessorBraintree, err)
		}
		paymentMethodID = tokenized.Data.TokenizeCreditCard.PaymentMethod.ID
		if paymentMethodID == "" {
			return entities.GatewayResponse{}, processorError(ProcessorBraintree,
				fmt.Errorf("%w: empty payment method id", ErrInvalidProcessorPayload))
		}
	}

	var charged chargeCreditCardResponse
	body, err := g.execute(ctx, chargeCreditCardMutation, map[string]any{
		"input": map[string]any{
			"paymentMethodId": paymentMethodID,
			"transaction": map[string]any{
				"amount":            order.NormalisedPrice(),
				"merchantAccountId": merchantAccountID,
			},
		},
	}, &charged)
	if err != nil {
		log.Printf("[payment][gateway][braintree] sale failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorBraintree, err)
	}

	tx := charged.Data.ChargeCreditCard.Transaction
	log.Printf("[payment][gateway][braintree] sale success transaction_id=%s status=%s", tx.ID, tx.Status)
	return entities.NewGatewayResponse(ProcessorBraintree, body), nil
}

// execute posts one GraphQL operation and decodes the reply into out.
// GraphQL reports most failures with HTTP 200 and an errors array.
func (g *BraintreeGateway) execute(ctx context.Context, query string, variables map[string]any, out interface{ err() error }) ([]byte, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		Post(braintreeGraphQLPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrProcessorRejected, resp.StatusCode(), resp.String())
	}

	body := resp.Body()
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProcessorPayload, err)
	}
	if err := out.err(); err != nil {
		return nil, err
	}
	return body, nil
}
