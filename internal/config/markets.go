package config

// DefaultMarkets returns the built-in exchange table. NSE is the home
// market, so its symbols already carry the provider suffix.
func DefaultMarkets() MarketsConfig {
	return MarketsConfig{
		Home: "NSE",
		List: []MarketConfig{
			{Code: "NSE", Name: "National Stock Exchange of India", Symbols: nseSymbols},
			{Code: "BSE", Name: "Bombay Stock Exchange", Suffix: ".BO", Symbols: bseSymbols},
			{Code: "LSE", Name: "London Stock Exchange", Suffix: ".L", Symbols: lseSymbols},
			{Code: "NYSE", Name: "New York Stock Exchange", Symbols: nyseSymbols},
			{Code: "NASDAQ", Name: "NASDAQ", Symbols: nasdaqSymbols},
		},
	}
}

var nseSymbols = []string{
	"RELIANCE.NS", "TCS.NS", "INFY.NS", "HDFCBANK.NS", "HINDUNILVR.NS", "ICICIBANK.NS", "ITC.NS", "SBIN.NS",
	"BAJFINANCE.NS", "BHARTIARTL.NS", "AXISBANK.NS", "KOTAKBANK.NS", "LARSEN.NS", "MARUTI.NS", "M&M.NS",
	"WIPRO.NS", "HCLTECH.NS", "ULTRACEMCO.NS", "NTPC.NS", "ONGC.NS", "TATAMOTORS.NS", "ASIANPAINT.NS",
	"SUNPHARMA.NS", "DRREDDY.NS", "TECHM.NS", "DIVISLAB.NS", "ADANIGREEN.NS", "ADANIPORTS.NS", "CIPLA.NS",
	"HAVELLS.NS", "INDUSINDBK.NS", "BAJAJ-AUTO.NS", "EICHERMOT.NS", "UPL.NS", "GRASIM.NS", "POWERGRID.NS",
	"MUTHOOTFIN.NS", "BPCL.NS", "VEDL.NS", "ZEE.NS", "TATACONSUM.NS", "GAIL.NS", "RELIANCEPOWER.NS", "IOC.NS",
	"M&MFIN.NS", "ADANIPOWER.NS", "HDFCLIFE.NS", "LUPIN.NS", "SBILIFE.NS", "JSWSTEEL.NS",
}

var bseSymbols = []string{
	"500325", "532540", "500180", "532174", "500570", "532641", "532455", "532155",
	"500010", "532855", "500209", "500114", "500470", "500134", "500827", "532939",
	"533020", "500104", "500413", "500408", "500244", "500312", "500164", "532634",
	"500376", "532610", "533287", "500147", "500692", "532898", "500124", "500185",
	"500840", "532179", "500109", "532780", "500828", "533091", "532761", "532832",
	"500181", "532215", "532374", "500182", "500260", "500301", "532555", "532674",
}

var lseSymbols = []string{
	"HSBA", "VOD", "BP", "GLEN", "AZN", "TSCO", "GSK", "BHP", "RDSB", "SHEL", "LLOY",
	"RMG", "BARC", "RR", "IMB", "SGRO", "DLG", "EXPN", "IWG", "RTO", "PSON", "STAN",
	"III", "WPP", "DGE", "ULVR", "CNA", "LSEG", "SSE", "CLLN", "RBS", "DPLM",
	"BA", "MCRO", "SHB", "NXT", "LGEN", "MNG", "FOG", "FRES", "WEIR", "NDX", "VKG",
	"RHP", "ABF", "SN", "YULE", "ARM", "HL", "MNDI", "DNO",
}

var nyseSymbols = []string{
	"MSFT", "AAPL", "GOOGL", "AMZN", "TSLA", "FB", "NFLX", "NVDA", "INTC", "BA", "DIS", "V", "JNJ", "PG",
	"MA", "PYPL", "CSCO", "XOM", "WMT", "COST", "ORCL", "UPS", "IBM", "ADBE", "SPGI", "CVX", "PEP", "MCD",
	"T", "UNH", "GE", "INTU", "KO", "MS", "MMM", "LMT", "GS", "ABT", "CAT", "LOW", "AMD", "QCOM",
	"AXP", "HD", "USB", "SYF", "MELI", "RTX", "REGN", "AMGN", "TMO", "ISRG",
}

var nasdaqSymbols = []string{
	"AAPL", "GOOGL", "AMZN", "TSLA", "NFLX", "NVDA", "META", "MSFT", "INTC", "AMD", "PYPL", "CSCO", "WMT",
	"INTU", "ADBE", "MU", "ZM", "LULU", "SNAP", "BIDU", "REGN", "ISRG", "QCOM", "AMAT", "NXPI",
	"GSX", "GILD", "VRTX", "PEP", "CVX", "BA", "NKE", "SBUX", "EBAY", "BABA", "SHOP", "ATVI",
	"AAL", "TWTR", "VRSK", "MAR", "JBL", "MRNA", "EXPE", "ALGN",
}
