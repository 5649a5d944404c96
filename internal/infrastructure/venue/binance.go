package venue

import (
	"bytes"
	"context"
	"encoding/json"
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

const binanceSearchPath = "/bapi/c2c/v2/friendly/c2c/adv/search"

// Binance queries the advertisement search endpoint of Binance P2P.
type Binance struct {
	BaseURL string
	Asset   string
	Rows    int
	Client  *httpx.Client
}

var _ application.VenueAdapter = (*Binance)(nil)

func (b *Binance) Name() string { return "binance" }

type binanceSearchReq struct {
	Fiat      string   `json:"fiat"`
	Page      int      `json:"page"`
	Rows      int      `json:"rows"`
	TradeType string   `json:"tradeType"`
	Asset     string   `json:"asset"`
	PayTypes  []string `json:"payTypes"`
}

type binanceSearchResp struct {
	Data []struct {
		Adv struct {
			Price                decimal.Decimal `json:"price"`
			MinSingleTransAmount bound           `json:"minSingleTransAmount"`
			MaxSingleTransAmount bound           `json:"maxSingleTransAmount"`
		} `json:"adv"`
	} `json:"data"`
}

func (b *Binance) FetchQuotes(ctx context.Context, fiat string, side domain.Side) ([]domain.Quote, error) {
	if b.BaseURL == "" || b.Client == nil {
		return nil, errors.New("binance: missing configuration")
	}
	if !side.Valid() {
		return nil, fmt.Errorf("binance: invalid side %q", side)
	}
	rows := b.Rows
	if rows <= 0 {
		rows = defaultRows
	}
	asset := b.Asset
	if asset == "" {
		asset = domain.DefaultAsset
	}

	payload, err := json.Marshal(binanceSearchReq{
		Fiat:      fiat,
		Page:      1,
		Rows:      rows,
		TradeType: strings.ToUpper(string(side)),
		Asset:     asset,
		PayTypes:  []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("binance: encode request: %w", err)
	}
	u, err := url.JoinPath(b.BaseURL, binanceSearchPath)
	if err != nil {
		return nil, fmt.Errorf("binance: invalid base url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("binance: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var body binanceSearchResp
	if err := b.Client.DoJSON(ctx, req, &body); err != nil {
		return nil, err
	}
	raw := make([]rawQuote, 0, len(body.Data))
	for _, d := range body.Data {
		raw = append(raw, rawQuote{Price: d.Adv.Price, Min: d.Adv.MinSingleTransAmount.Decimal, Max: d.Adv.MaxSingleTransAmount.Decimal})
	}
	return truncate(raw, rows), nil
}
