package mt5

import "mt5-summary-bot/internal/types"

// Wire types for the REST bridge in front of the MT5 terminal. Optional
// numeric fields the terminal omits (swap, commission, fee) decode to zero,
// optional text to the empty string, so partial records never abort a query.

type connectRequest struct {
	Login    int64  `json:"login"`
	Password string `json:"password"`
	Server   string `json:"server"`
}

type connectResponse struct {
	Token string `json:"token"`
}

type wireDeal struct {
	Ticket     int64   `json:"ticket"`
	PositionID int64   `json:"position_id"`
	Entry      int     `json:"entry"`
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	Profit     float64 `json:"profit"`
	Swap       float64 `json:"swap"`
	Commission float64 `json:"commission"`
	Fee        float64 `json:"fee"`
	Comment    string  `json:"comment"`
	Time       int64   `json:"time"`
}

func (w wireDeal) toDeal() types.Deal {
	return types.Deal{
		Ticket:     w.Ticket,
		PositionID: w.PositionID,
		Entry:      types.DealEntry(w.Entry),
		Symbol:     w.Symbol,
		Volume:     w.Volume,
		Price:      w.Price,
		Profit:     w.Profit,
		Swap:       w.Swap,
		Commission: w.Commission,
		Fee:        w.Fee,
		Comment:    w.Comment,
		Time:       w.Time,
	}
}

type dealsResponse struct {
	Deals []wireDeal `json:"deals"`
}

type wirePosition struct {
	Symbol       string  `json:"symbol"`
	Volume       float64 `json:"volume"`
	PriceOpen    float64 `json:"price_open"`
	PriceCurrent float64 `json:"price_current"`
	Profit       float64 `json:"profit"`
	Comment      string  `json:"comment"`
}

func (w wirePosition) toPosition() types.Position {
	return types.Position{
		Symbol:       w.Symbol,
		Volume:       w.Volume,
		OpenPrice:    w.PriceOpen,
		CurrentPrice: w.PriceCurrent,
		Profit:       w.Profit,
		Comment:      w.Comment,
	}
}

type positionsResponse struct {
	Positions []wirePosition `json:"positions"`
}

type wireAccount struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	Margin     float64 `json:"margin"`
	MarginFree float64 `json:"margin_free"`
}

func (w wireAccount) toAccountInfo() types.AccountInfo {
	return types.AccountInfo{
		Balance:    w.Balance,
		Equity:     w.Equity,
		Margin:     w.Margin,
		FreeMargin: w.MarginFree,
	}
}
