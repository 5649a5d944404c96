package venue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/domain"
	"p2pquotes-service/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const okxBooksPath = "/v3/c2c/tradingOrders/books"

// OKX reads one side of the OKX C2C order book.
type OKX struct {
	BaseURL string
	Asset   string
	Rows    int
	Client  *httpx.Client
	// Now stamps the cache-busting t parameter; defaults to time.Now.
	Now func() time.Time
}

var _ application.VenueAdapter = (*OKX)(nil)

func (o *OKX) Name() string { return "okx" }

type okxOrder struct {
	Price          decimal.Decimal `json:"price"`
	QuoteMinAmount bound           `json:"quoteMinAmount"`
	QuoteMaxAmount bound           `json:"quoteMaxAmount"`
}

type okxBooksResp struct {
	Data *struct {
		Buy  []okxOrder `json:"buy"`
		Sell []okxOrder `json:"sell"`
	} `json:"data"`
}

func (o *OKX) FetchQuotes(ctx context.Context, fiat string, side domain.Side) ([]domain.Quote, error) {
	if o.BaseURL == "" || o.Client == nil {
		return nil, errors.New("okx: missing configuration")
	}
	if !side.Valid() {
		return nil, fmt.Errorf("okx: invalid side %q", side)
	}
	asset := o.Asset
	if asset == "" {
		asset = domain.DefaultAsset
	}
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}

	u, err := url.Parse(strings.TrimRight(o.BaseURL, "/") + okxBooksPath)
	if err != nil {
		return nil, fmt.Errorf("okx: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("quoteCurrency", strings.ToLower(fiat))
	q.Set("baseCurrency", strings.ToLower(asset))
	q.Set("side", string(side))
	q.Set("paymentMethod", "all")
	q.Set("userType", "all")
	q.Set("t", strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("okx: create request: %w", err)
	}

	var body okxBooksResp
	if err := o.Client.DoJSON(ctx, req, &body); err != nil {
		return nil, err
	}
	var orders []okxOrder
	if body.Data != nil {
		if side == domain.SideBuy {
			orders = body.Data.Buy
		} else {
			orders = body.Data.Sell
		}
	}
	raw := make([]rawQuote, 0, len(orders))
	for _, ord := range orders {
		raw = append(raw, rawQuote{Price: ord.Price, Min: ord.QuoteMinAmount.Decimal, Max: ord.QuoteMaxAmount.Decimal})
	}
	return truncate(raw, o.Rows), nil
}
