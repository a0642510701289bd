package learn

import "fmt"

// Offline question bank, used when no model reply is available.
var builtin = map[string][]Question{
	"Investing Basics Quiz": {
		{
			Question:      "What is the main reason to start investing early?",
			Options:       []string{"Lower taxes", "More time for compound growth", "Guaranteed returns", "Fewer fees"},
			CorrectAnswer: 1,
			Explanation:   "Time lets returns earn their own returns, so small early amounts can grow a lot.",
		},
		{
			Question:      "What should you usually build before investing?",
			Options:       []string{"A stock portfolio", "A crypto wallet", "An emergency fund", "A second credit card"},
			CorrectAnswer: 2,
			Explanation:   "An emergency fund keeps you from selling investments or borrowing when surprises hit.",
		},
		{
			Question:      "What does an index fund do?",
			Options:       []string{"Picks a few hot stocks", "Tracks a whole market index", "Guarantees a fixed return", "Only holds bonds"},
			CorrectAnswer: 1,
			Explanation:   "Index funds hold the securities in an index, giving cheap, broad diversification.",
		},
		{
			Question:      "What is dollar-cost averaging?",
			Options:       []string{"Investing a fixed amount on a schedule", "Buying only when prices fall", "Converting dollars to other currencies", "Averaging your fees"},
			CorrectAnswer: 0,
			Explanation:   "Investing regularly spreads purchases over time and reduces timing risk.",
		},
		{
			Question:      "Which account type often has tax advantages for retirement?",
			Options:       []string{"Checking account", "IRA", "Prepaid card", "Store credit account"},
			CorrectAnswer: 1,
			Explanation:   "IRAs and similar retirement accounts offer tax benefits for long-term saving.",
		},
	},
	"Stock Market Quiz": {
		{
			Question:      "What do you own when you buy a share of stock?",
			Options:       []string{"A loan to the company", "A small piece of the company", "A company product", "A government bond"},
			CorrectAnswer: 1,
			Explanation:   "A share is partial ownership of a company.",
		},
		{
			Question:      "What is a dividend?",
			Options:       []string{"A fee to your broker", "A share of company profits paid to shareholders", "A stock split", "A tax on gains"},
			CorrectAnswer: 1,
			Explanation:   "Some companies pay part of their profits to shareholders as dividends.",
		},
		{
			Question:      "What is a bear market?",
			Options:       []string{"Prices rising for a long time", "Prices falling 20% or more", "A market for commodities", "A closed market day"},
			CorrectAnswer: 1,
			Explanation:   "A bear market is a sustained decline, commonly defined as 20% or more from a peak.",
		},
		{
			Question:      "How long should money invested in stocks usually stay invested?",
			Options:       []string{"A few days", "A few weeks", "At least 5 years", "Until the next dip"},
			CorrectAnswer: 2,
			Explanation:   "Stocks swing in the short term; a longer horizon smooths out volatility.",
		},
		{
			Question:      "What does the S&P 500 track?",
			Options:       []string{"500 large US companies", "500 small startups", "500 government bonds", "500 cryptocurrencies"},
			CorrectAnswer: 0,
			Explanation:   "The S&P 500 is an index of about 500 large US companies.",
		},
	},
	"Mutual Funds Quiz": {
		{
			Question:      "What is a mutual fund?",
			Options:       []string{"A pool of money from many investors", "A single company's stock", "A bank savings account", "A type of insurance"},
			CorrectAnswer: 0,
			Explanation:   "Mutual funds pool investors' money to buy a diversified set of securities.",
		},
		{
			Question:      "What is an expense ratio?",
			Options:       []string{"The fund's annual fee as a percent of assets", "The fund's yearly return", "The share price", "The minimum investment"},
			CorrectAnswer: 0,
			Explanation:   "The expense ratio is the yearly cost of owning the fund.",
		},
		{
			Question:      "Who makes decisions in an actively managed fund?",
			Options:       []string{"The investors vote", "A fund manager", "The government", "Nobody, it follows an index"},
			CorrectAnswer: 1,
			Explanation:   "Active funds rely on a manager picking investments, which usually costs more.",
		},
		{
			Question:      "What is NAV?",
			Options:       []string{"Net asset value per share", "New account verification", "National average value", "Non-adjusted volume"},
			CorrectAnswer: 0,
			Explanation:   "NAV is the per-share value of the fund's holdings, priced once a day.",
		},
		{
			Question:      "Why are mutual funds popular with beginners?",
			Options:       []string{"Guaranteed profits", "Instant diversification", "No risk at all", "No fees ever"},
			CorrectAnswer: 1,
			Explanation:   "One purchase spreads your money across many holdings.",
		},
	},
	"Cryptocurrency Quiz": {
		{
			Question:      "What technology do most cryptocurrencies run on?",
			Options:       []string{"Blockchain", "Spreadsheets", "Mainframes", "Fax networks"},
			CorrectAnswer: 0,
			Explanation:   "A blockchain is a shared ledger that records transactions in linked blocks.",
		},
		{
			Question:      "How would you describe crypto price movements?",
			Options:       []string{"Very stable", "Highly volatile", "Fixed by banks", "Tied to gold"},
			CorrectAnswer: 1,
			Explanation:   "Crypto prices can swing sharply, so only invest what you can afford to lose.",
		},
		{
			Question:      "What is a private key?",
			Options:       []string{"A secret that controls your coins", "Your exchange username", "A public wallet address", "A tax ID"},
			CorrectAnswer: 0,
			Explanation:   "Whoever holds the private key controls the funds, so keep it secret.",
		},
		{
			Question:      "Which was the first widely used cryptocurrency?",
			Options:       []string{"Ethereum", "Dogecoin", "Bitcoin", "Litecoin"},
			CorrectAnswer: 2,
			Explanation:   "Bitcoin launched in 2009 and started the category.",
		},
		{
			Question:      "How much of a beginner portfolio should usually be in crypto?",
			Options:       []string{"All of it", "Most of it", "A small slice, if any", "Exactly half"},
			CorrectAnswer: 2,
			Explanation:   "Given the volatility, most beginners keep crypto to a small share.",
		},
	},
	"Risk and Portfolio Quiz": {
		{
			Question:      "What is diversification?",
			Options:       []string{"Spreading money across different investments", "Buying one stock", "Keeping only cash", "Trading every day"},
			CorrectAnswer: 0,
			Explanation:   "Spreading money out means one bad investment hurts less.",
		},
		{
			Question:      "Which usually carries the most risk?",
			Options:       []string{"Savings account", "Government bonds", "Individual stocks", "Certificates of deposit"},
			CorrectAnswer: 2,
			Explanation:   "A single stock can lose much of its value; insured deposits cannot.",
		},
		{
			Question:      "What is asset allocation?",
			Options:       []string{"How you split money between stocks, bonds and cash", "Your bank's branch location", "A type of loan", "The price of one share"},
			CorrectAnswer: 0,
			Explanation:   "Allocation sets the mix of asset types and drives most of a portfolio's risk.",
		},
		{
			Question:      "Someone investing for 40 years can usually take:",
			Options:       []string{"Less risk", "More risk", "No risk", "Only crypto risk"},
			CorrectAnswer: 1,
			Explanation:   "A long horizon gives time to recover from downturns.",
		},
		{
			Question:      "What is rebalancing?",
			Options:       []string{"Returning a portfolio to its target mix", "Selling everything in a crash", "Moving banks", "Paying off debt"},
			CorrectAnswer: 0,
			Explanation:   "Rebalancing sells what grew and buys what lagged to restore your target allocation.",
		},
	},
}

// BuiltinQuiz returns the offline quiz for title.
func BuiltinQuiz(title string) (Quiz, error) {
	qs, ok := builtin[title]
	if !ok {
		return Quiz{}, fmt.Errorf("%q: %w", title, ErrUnknownQuiz)
	}
	out := make([]Question, len(qs))
	copy(out, qs)
	return Quiz{Title: title, Questions: out}, nil
}
