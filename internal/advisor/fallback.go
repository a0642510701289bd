package advisor

import "strings"

// staticAnswer pairs a lowercase keyword with a canned paragraph.
type staticAnswer struct {
	keyword string
	text    string
}

const stockAnswer = "The stock market is a place where people buy and sell ownership shares in companies. Here's what to know as a beginner:\n\n" +
	"• Start with index funds that track the entire market (like S&P 500) for instant diversification\n" +
	"• Only invest money you won't need for at least 5 years\n" +
	"• Set up automatic contributions to benefit from dollar-cost averaging\n" +
	"• Understand that market fluctuations are normal - focus on long-term trends\n" +
	"• Research companies before buying individual stocks or use index funds\n" +
	"• Consider using a tax-advantaged account like a Roth IRA for your investments"

// Order matters: prompts often contain several keywords and the first
// match wins ("investing" hits "invest" before "stock").
var staticAnswers = []staticAnswer{
	{"budget", "Creating a budget is the foundation of financial wellness! Start by tracking all income sources, then categorize your expenses into needs (rent, food), wants (entertainment), and savings. Aim to save at least 20% of your income using the 50/30/20 rule - 50% for needs, 30% for wants, and 20% for savings and debt repayment."},
	{"save", "Saving money is all about small daily habits! Try the 30-day rule (wait 30 days before making non-essential purchases), automate your savings with direct deposits, and challenge yourself to no-spend days. Even saving $5 a day adds up to $1,825 in a year!"},
	{"invest", "Investing is how your money grows over time! As a beginner, consider starting with a tax-advantaged retirement account like a 401(k) or IRA. Index funds are great for beginners since they provide instant diversification with low fees. Remember, time in the market beats timing the market!"},
	{"stock", stockAnswer},
	{"stock market", stockAnswer},
	{"debt", "Managing debt strategically is crucial! Prioritize high-interest debt like credit cards first (debt avalanche method) or start with small balances for quick wins (debt snowball method). Always pay more than the minimum payment, and consider consolidating high-interest debts to a lower rate."},
	{"credit", "Building good credit is essential! Pay bills on time (35% of your score), keep credit utilization below 30%, maintain older accounts, avoid opening too many new accounts, and diversify your credit mix. Check your credit report annually for free at AnnualCreditReport.com."},
	{"emergency", "An emergency fund is your financial safety net! Aim to save 3-6 months of essential expenses in an easily accessible account like a high-yield savings account. Start small with $1,000, then build up gradually. This protects you from going into debt when unexpected expenses hit."},
	{"retirement", "Retirement planning works best when you start early! If your employer offers a 401(k) match, contribute at least enough to get the full match (it's free money!). Consider opening an IRA for additional tax advantages, and increase your contributions whenever you get a raise."},
	{"tax", "Understanding tax basics can save you money! Take advantage of tax-advantaged accounts like 401(k)s and IRAs. Track deductible expenses throughout the year, consider tax-loss harvesting for investments, and remember that tax refunds mean you've been giving the government an interest-free loan!"},
	{"house", "Buying a home requires preparation! Save for a down payment (aim for 20% to avoid PMI), check your credit score (higher scores get better rates), get pre-approved before house hunting, and remember the true cost includes maintenance, insurance, property taxes, and utilities."},
	{"insurance", "Insurance protects your financial future! Essential types include health insurance, auto insurance, renters/homeowners insurance, and eventually life insurance if others depend on your income. Shop around annually for better rates, and choose higher deductibles to lower premiums if you have an emergency fund."},
}

// DefaultAnswer is returned when no keyword matches.
const DefaultAnswer = "Financial literacy is key to building wealth! Start with creating a budget, build an emergency fund covering 3-6 months of expenses, pay down high-interest debt, save for retirement, and then expand to other investments. Small, consistent steps over time lead to financial freedom."

// Fallback returns the canned paragraph for the first keyword contained in
// the lowercased prompt, or DefaultAnswer.
func Fallback(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, a := range staticAnswers {
		if strings.Contains(lower, a.keyword) {
			return a.text
		}
	}
	return DefaultAnswer
}

// FallbackKeyword returns the keyword Fallback would match, or "".
func FallbackKeyword(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, a := range staticAnswers {
		if strings.Contains(lower, a.keyword) {
			return a.keyword
		}
	}
	return ""
}
