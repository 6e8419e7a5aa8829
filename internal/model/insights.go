package model

// Consensus summarizes analyst ratings for a stock.
type Consensus struct {
	BuyPercentage    int     `yaml:"buy" json:"buyPercentage"`
	HoldPercentage   int     `yaml:"hold" json:"holdPercentage"`
	SellPercentage   int     `yaml:"sell" json:"sellPercentage"`
	TargetPrice      float64 `yaml:"target_price" json:"targetPrice"`
	CurrentPrice     float64 `yaml:"current_price" json:"currentPrice"`
	NumberOfAnalysts int     `yaml:"analysts" json:"numberOfAnalysts"`
	Recommendation   string  `yaml:"recommendation" json:"recommendation"` // Buy, Hold or Sell
	Upside           float64 `yaml:"-" json:"upside"`                      // percent from current to target
}

// NewsArticle is one headline in a stock's news feed.
type NewsArticle struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Date      string `json:"date"` // RFC 3339, UTC, millisecond precision
	Sentiment string `json:"sentiment"`
	Summary   string `json:"summary"`
}

// Financials holds the headline figures of the financial analysis panel.
// Percent fields are already scaled (2.1 means 2.1%).
type Financials struct {
	Revenue          float64 `yaml:"revenue" json:"revenue"`
	RevenueGrowth    float64 `yaml:"revenue_growth" json:"revenueGrowth"`
	NetProfit        float64 `yaml:"net_profit" json:"netProfit"`
	GrossMargin      float64 `yaml:"gross_margin" json:"grossMargin"`
	OperatingMargin  float64 `yaml:"operating_margin" json:"operatingMargin"`
	NetMargin        float64 `yaml:"net_margin" json:"netMargin"`
	Debt             float64 `yaml:"debt" json:"debt"`
	DebtToEquity     float64 `yaml:"debt_to_equity" json:"debtToEquity"`
	EPS              float64 `yaml:"eps" json:"eps"`
	PERatio          float64 `yaml:"pe_ratio" json:"peRatio"`
	PEGRatio         float64 `yaml:"peg_ratio" json:"pegRatio"`
	DividendYield    float64 `yaml:"dividend_yield" json:"dividendYield"`
	DividendPerShare float64 `yaml:"dividend_per_share" json:"dividendPerShare"`
	DividendGrowth   float64 `yaml:"dividend_growth" json:"dividendGrowth"`
}

type Manager struct {
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title" json:"title"`
	Background  string `yaml:"background" json:"background"`
	YearsInRole int    `yaml:"years_in_role" json:"yearsInRole,omitempty"`
}

// Management is a company's vision statement and leadership team.
type Management struct {
	Vision string    `yaml:"vision" json:"vision"`
	Team   []Manager `yaml:"team" json:"team"`
}

type SWOT struct {
	Strengths     []string `yaml:"strengths" json:"strengths"`
	Weaknesses    []string `yaml:"weaknesses" json:"weaknesses"`
	Opportunities []string `yaml:"opportunities" json:"opportunities"`
	Threats       []string `yaml:"threats" json:"threats"`
}
