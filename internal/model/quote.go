package model

// Quote is the public quote shape served to the dashboard.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	MarketCap        float64 `json:"marketCap"`
	PERatio          float64 `json:"peRatio"`
	PEGRatio         float64 `json:"pegRatio"`
	EPS              float64 `json:"eps"`
	Dividend         float64 `json:"dividend"`
	Beta             float64 `json:"beta"`
	FiftyTwoWeekHigh float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  float64 `json:"fiftyTwoWeekLow"`

	*QuoteDetail
}

// QuoteDetail holds the fields returned only for detailed lookups.
type QuoteDetail struct {
	Sector               string  `json:"sector"`
	Industry             string  `json:"industry"`
	Website              string  `json:"website"`
	Description          string  `json:"description"`
	Employees            int64   `json:"employees"`
	Revenue              float64 `json:"revenue"`
	GrossProfit          float64 `json:"grossProfit"`
	OperatingCashFlow    float64 `json:"operatingCashFlow"`
	FreeCashFlow         float64 `json:"freeCashFlow"`
	CurrentRatio         float64 `json:"currentRatio"`
	DebtToEquity         float64 `json:"debtToEquity"`
	ROE                  float64 `json:"roe"`
	ROA                  float64 `json:"roa"`
	ROIC                 float64 `json:"roic"`
	DividendYield        float64 `json:"dividendYield"`
	FiftyDayAverage      float64 `json:"fiftyDayAverage"`
	TwoHundredDayAverage float64 `json:"twoHundredDayAverage"`
	CurrentPrice         float64 `json:"currentPrice"`
}

// Summary mirrors the quoteSummary result shared by every fetcher.
// All three modules are always present; missing upstream values stay zero.
type Summary struct {
	Price     PriceModule     `json:"price"`
	Profile   ProfileModule   `json:"summaryProfile"`
	Financial FinancialModule `json:"financialData"`
}

type PriceModule struct {
	Symbol                      string  `json:"symbol"`
	ShortName                   string  `json:"shortName"`
	LongName                    string  `json:"longName"`
	RegularMarketPrice          float64 `json:"regularMarketPrice"`
	Currency                    string  `json:"currency"`
	TrailingPE                  float64 `json:"trailingPE"`
	ForwardPE                   float64 `json:"forwardPE"`
	PEGRatio                    float64 `json:"pegRatio"`
	EPS                         float64 `json:"epsTrailingTwelveMonths"`
	Beta                        float64 `json:"beta"`
	FiftyTwoWeekHigh            float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow             float64 `json:"fiftyTwoWeekLow"`
	FiftyDayAverage             float64 `json:"fiftyDayAverage"`
	TwoHundredDayAverage        float64 `json:"twoHundredDayAverage"`
	TrailingAnnualDividendYield float64 `json:"trailingAnnualDividendYield"`
	DividendYield               float64 `json:"dividendYield"`
}

type ProfileModule struct {
	Sector              string `json:"sector"`
	Industry            string `json:"industry"`
	Website             string `json:"website"`
	LongBusinessSummary string `json:"longBusinessSummary"`
	FullTimeEmployees   int64  `json:"fullTimeEmployees"`
}

type FinancialModule struct {
	MarketCap         float64 `json:"marketCap"`
	TotalRevenue      float64 `json:"totalRevenue"`
	GrossProfits      float64 `json:"grossProfits"`
	OperatingCashflow float64 `json:"operatingCashflow"`
	FreeCashflow      float64 `json:"freeCashflow"`
	CurrentRatio      float64 `json:"currentRatio"`
	DebtToEquity      float64 `json:"debtToEquity"`
	ReturnOnEquity    float64 `json:"returnOnEquity"`
	ReturnOnAssets    float64 `json:"returnOnAssets"`
	ReturnOnCapital   float64 `json:"returnOnCapital"`
}
