package backtest

import "time"

// Sentiment tags the direction an order pushes the position toward.
// A "flat" order closes the open position.
type Sentiment string

const (
	Long  Sentiment = "long"
	Short Sentiment = "short"
	Flat  Sentiment = "flat"
)

// Order records one strategy decision. Size is signed: positive buys,
// negative sells. Orders are immutable once logged; they are owned by the
// engine's order log and referenced by the Trade they open or close.
type Order struct {
	Ticker    string    `json:"ticker"`
	Sentiment Sentiment `json:"sentiment"`
	Size      float64   `json:"size"`
	Time      time.Time `json:"time"`
	BarIndex  int       `json:"bar_index"`
	Price     float64   `json:"price"`
	Comment   string    `json:"comment,omitempty"`
}
