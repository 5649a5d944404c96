package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/domain"
	"p2pquotes-service/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const erAPISource = "erapi"

// OpenERAPIProvider reads mid-market rates from open.er-api.com. The returned
// factors are target units per 1 unit of base.
type OpenERAPIProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.RateSource = (*OpenERAPIProvider)(nil)

type erLatestResp struct {
	Result    string                     `json:"result"`
	ErrorType string                     `json:"error-type"`
	BaseCode  string                     `json:"base_code"`
	UpdatedAt int64                      `json:"time_last_update_unix"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

func (p *OpenERAPIProvider) FetchConversionFactors(ctx context.Context, base string, targets []string) (domain.RateTable, error) {
	if p.BaseURL == "" || p.Client == nil {
		return nil, errors.New("erapi: missing configuration")
	}
	if !domain.ValidateCurrency(base) {
		return nil, fmt.Errorf("erapi: %w: %q", domain.ErrUnsupportedCurrency, base)
	}

	u, err := url.JoinPath(p.BaseURL, base)
	if err != nil {
		return nil, fmt.Errorf("erapi: invalid base url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("erapi: create request: %w", err)
	}

	var body erLatestResp
	if err := p.Client.DoJSON(ctx, req, &body); err != nil {
		return nil, err
	}
	if body.Result != "success" {
		return nil, &domain.ParseError{Source: erAPISource, Err: fmt.Errorf("result %q %s", body.Result, body.ErrorType)}
	}
	if body.BaseCode != "" && !strings.EqualFold(body.BaseCode, base) {
		return nil, &domain.ParseError{Source: erAPISource, Err: fmt.Errorf("base %s, want %s", body.BaseCode, base)}
	}

	out := make(domain.RateTable, len(targets))
	for _, c := range targets {
		v, ok := body.Rates[c]
		if !ok {
			return nil, &domain.ParseError{Source: erAPISource, Err: fmt.Errorf("missing rate for %s", c)}
		}
		if !v.IsPositive() {
			return nil, &domain.ParseError{Source: erAPISource, Err: fmt.Errorf("non-positive rate for %s", c)}
		}
		out[c] = v
	}
	return out, nil
}
