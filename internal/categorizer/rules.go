package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/expense-categorizer/internal/models"
)

// Rule maps one category to the keywords that select it.
type Rule struct {
	Category models.Category
	Keywords []string
}

// RuleSet is an immutable, ordered rule table. Rules are evaluated in order
// and the first rule with a keyword contained in the description wins.
// IncomeIndicators are checked only when no rule matched.
type RuleSet struct {
	rules            []Rule
	incomeIndicators []string
}

// NewRuleSet copies rules and indicators into a RuleSet, lowercasing and
// trimming every keyword. Empty keywords are dropped because they would
// match every description.
func NewRuleSet(rules []Rule, incomeIndicators []string) RuleSet {
	rs := RuleSet{
		rules:            make([]Rule, 0, len(rules)),
		incomeIndicators: normalizeKeywords(incomeIndicators),
	}
	for _, rule := range rules {
		rs.rules = append(rs.rules, Rule{
			Category: models.Category(strings.TrimSpace(string(rule.Category))),
			Keywords: normalizeKeywords(rule.Keywords),
		})
	}
	return rs
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		out = append(out, keyword)
	}
	return out
}

// Rules returns a copy of the ordered rule table.
func (rs RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	for i, rule := range rs.rules {
		out[i] = Rule{
			Category: rule.Category,
			Keywords: append([]string(nil), rule.Keywords...),
		}
	}
	return out
}

// IncomeIndicators returns a copy of the fallback income phrases.
func (rs RuleSet) IncomeIndicators() []string {
	return append([]string(nil), rs.incomeIndicators...)
}

// Len returns the number of category rules.
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// KeywordCount returns the number of keywords across all rules and indicators.
func (rs RuleSet) KeywordCount() int {
	n := len(rs.incomeIndicators)
	for _, rule := range rs.rules {
		n += len(rule.Keywords)
	}
	return n
}

// Validate checks that every rule has a label and at least one keyword and
// that no label appears twice.
func (rs RuleSet) Validate() error {
	seen := make(map[models.Category]int, len(rs.rules))
	for i, rule := range rs.rules {
		if rule.Category == "" {
			return fmt.Errorf("rule %d: empty category label", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("rule %d (%s): no keywords", i, rule.Category)
		}
		if prev, ok := seen[rule.Category]; ok {
			return fmt.Errorf("rule %d (%s): duplicate of rule %d", i, rule.Category, prev)
		}
		seen[rule.Category] = i
	}
	return nil
}

// DefaultIncomeIndicators are the phrases of the income fallback pass.
var DefaultIncomeIndicators = []string{"deposit", "credit", "payment received", "refund", "cashback"}

// DefaultRules returns the built-in rule table.
func DefaultRules() RuleSet {
	return NewRuleSet([]Rule{
		{Category: models.CategoryFoodDining, Keywords: []string{
			"restaurant", "cafe", "coffee", "starbucks", "mcdonald", "burger", "pizza",
			"food", "dining", "lunch", "dinner", "breakfast", "snack", "grocery",
			"supermarket", "walmart", "target", "costco", "whole foods", "trader joe",
			"domino", "subway", "kfc", "taco bell", "chipotle", "panera", "dunkin",
			"bakery", "deli", "bistro", "grill", "bar", "pub", "kitchen", "eatery",
		}},
		{Category: models.CategoryTransportation, Keywords: []string{
			"uber", "lyft", "taxi", "gas", "fuel", "parking", "metro", "bus",
			"train", "airline", "flight", "car", "vehicle", "auto", "transport",
			"toll", "subway", "transit", "rental", "hertz", "enterprise", "avis",
			"shell", "exxon", "chevron", "bp", "mobil", "citgo", "speedway",
		}},
		{Category: models.CategoryUtilities, Keywords: []string{
			"electric", "electricity", "gas", "water", "internet", "phone", "cable",
			"utility", "bill", "energy", "power", "heating", "cooling", "trash",
			"waste", "sewer", "telecom", "verizon", "att", "comcast", "spectrum",
			"xfinity", "cox", "dish", "directv", "netflix", "hulu", "spotify",
		}},
		{Category: models.CategoryShopping, Keywords: []string{
			"amazon", "ebay", "store", "shop", "retail", "mall", "outlet", "purchase",
			"buy", "clothing", "clothes", "shoes", "electronics", "home depot",
			"lowes", "best buy", "apple", "microsoft", "nike", "adidas", "zara",
			"h&m", "gap", "old navy", "macys", "nordstrom", "sears", "kohl",
			"tj maxx", "marshall", "ross", "department", "boutique",
		}},
		{Category: models.CategoryEntertainment, Keywords: []string{
			"movie", "cinema", "theater", "concert", "music", "game", "gaming",
			"entertainment", "fun", "leisure", "hobby", "sport", "gym", "fitness",
			"club", "bar", "nightclub", "casino", "lottery", "ticket", "event",
			"amusement", "park", "zoo", "museum", "gallery", "show", "performance",
			"netflix", "hulu", "disney", "spotify", "youtube", "twitch", "steam",
		}},
		{Category: models.CategoryHealthcare, Keywords: []string{
			"doctor", "hospital", "medical", "health", "pharmacy", "medicine",
			"dental", "dentist", "clinic", "urgent care", "emergency", "prescription",
			"drug", "cvs", "walgreens", "rite aid", "insurance", "copay", "deductible",
			"therapy", "physical therapy", "mental health", "counseling", "wellness",
		}},
		{Category: models.CategoryIncome, Keywords: []string{
			"salary", "wage", "payroll", "income", "deposit", "payment", "refund",
			"cashback", "bonus", "commission", "dividend", "interest", "transfer",
			"reimbursement", "tax refund", "social security", "pension", "unemployment",
			"freelance", "consulting", "contract", "gig", "tip", "gratuity",
		}},
		{Category: models.CategoryEducation, Keywords: []string{
			"school", "university", "college", "education", "tuition", "book",
			"textbook", "course", "class", "training", "workshop", "seminar",
			"certification", "degree", "diploma", "student", "academic", "learning",
			"library", "research", "study", "exam", "test", "scholarship",
		}},
		{Category: models.CategoryBanking, Keywords: []string{
			"bank", "atm", "fee", "charge", "overdraft", "maintenance", "service",
			"transfer", "wire", "check", "deposit", "withdrawal", "balance",
			"account", "credit", "debit", "loan", "mortgage", "interest",
			"finance", "investment", "savings", "checking", "penalty",
		}},
	}, DefaultIncomeIndicators)
}
