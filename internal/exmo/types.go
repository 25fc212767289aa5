package exmo

// tickerPayload is one pair entry from GET /v1/ticker. Prices arrive as
// decimal strings.
type tickerPayload struct {
	BuyPrice  string `json:"buy_price"`
	SellPrice string `json:"sell_price"`
	LastTrade string `json:"last_trade"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Avg       string `json:"avg"`
	Vol       string `json:"vol"`
	VolCurr   string `json:"vol_curr"`
	Updated   int64  `json:"updated"`
}

// userInfoResponse from POST /v1/user_info. On success the exchange omits
// the result field entirely; on failure it sends {"result":false,"error":...}.
type userInfoResponse struct {
	Result     *bool             `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	UID        int64             `json:"uid"`
	ServerDate int64             `json:"server_date"`
	Balances   map[string]string `json:"balances"`
	Reserved   map[string]string `json:"reserved"`
}

// orderCreateResponse from POST /v1/order_create.
type orderCreateResponse struct {
	Result  bool   `json:"result"`
	Error   string `json:"error"`
	OrderID int64  `json:"order_id"`
}
