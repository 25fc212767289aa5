package exmo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// AuthError reports a signed request the exchange refused to authenticate.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "exmo auth error: " + e.Message
}

// OrderRejectedError carries the exchange's raw rejection payload. Not
// retried; the caller reports it verbatim.
type OrderRejectedError struct {
	Raw string
}

func (e *OrderRejectedError) Error() string {
	return "order rejected: " + e.Raw
}

// UserInfo fetches account balances via the signed user_info endpoint.
func (c *Client) UserInfo(ctx context.Context) (model.Balances, error) {
	var resp userInfoResponse
	if _, err := c.postSigned(ctx, pathUserInfo, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}

	if resp.Result != nil && !*resp.Result {
		return nil, &AuthError{Message: resp.Error}
	}

	return toBalances(resp.Balances), nil
}

// CreateOrder submits a market order. Quantity is in base-currency units;
// market orders carry price 0 on the wire. Returns the exchange order id on
// acceptance, or OrderRejectedError with the raw payload when the exchange
// declines.
func (c *Client) CreateOrder(ctx context.Context, order model.OrderRequest) (int64, error) {
	form := url.Values{}
	form.Set("pair", order.Pair.Symbol())
	form.Set("quantity", order.Quantity.String())
	form.Set("price", "0")
	form.Set("type", order.Side.APIName())

	var resp orderCreateResponse
	raw, err := c.postSigned(ctx, pathOrderCreate, form, &resp)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	if !resp.Result {
		return 0, &OrderRejectedError{Raw: string(raw)}
	}

	c.logger.Debug("order created",
		"pair", order.Pair,
		"type", order.Side,
		"order_id", resp.OrderID,
	)

	return resp.OrderID, nil
}
