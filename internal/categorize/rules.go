package categorize

// Rule maps a merchant-name pattern to a category. Matching is a
// case-insensitive substring test.
type Rule struct {
	Pattern  string
	Category string
}

// DefaultRules is the static merchant-pattern table. Order is a
// contract: the first matching rule wins, so more specific patterns
// must come before generic ones.
var DefaultRules = []Rule{
	// Hobby
	{"global bike", "Hobby"},
	{"mbo", "Hobby"},
	{"rapha", "Hobby"},
	{"specialized", "Hobby"},

	// Payments
	{"payment", "Payments"},
	{"paypal", "Payments"},
	{"venmo", "Payments"},
	{"stripe", "Payments"},
	{"square", "Payments"},

	// Groceries
	{"whole foods", "Groceries"},
	{"trader joe", "Groceries"},
	{"safeway", "Groceries"},
	{"kroger", "Groceries"},
	{"sprouts", "Groceries"},
	{"costco whse", "Groceries"},
	{"costco.com", "Groceries"},
	{"grocery", "Groceries"},
	{"supermarket", "Groceries"},
	{"los altos ranch market", "Groceries"},

	// Dining
	{"restaurant", "Dining"},
	{"cafe", "Dining"},
	{"coffee", "Dining"},
	{"burger", "Dining"},
	{"pizza", "Dining"},
	{"sushi", "Dining"},
	{"bbq", "Dining"},
	{"diner", "Dining"},
	{"bar", "Dining"},
	{"pub", "Dining"},

	// Entertainment
	{"movie", "Entertainment"},
	{"cinema", "Entertainment"},
	{"theater", "Entertainment"},
	{"concert", "Entertainment"},
	{"game", "Entertainment"},

	// Utilities
	{"electric", "Utilities"},
	{"water", "Utilities"},
	{"gas company", "Utilities"},
	{"internet", "Utilities"},
	{"phone", "Utilities"},
	{"comcast", "Utilities"},
	{"verizon", "Utilities"},
	{"at&t", "Utilities"},
	{"t-mobile", "Utilities"},
	{"visible 866", "Utilities"},
	{"city of chandler", "Utilities"},
	{"cox phoenix", "Utilities"},

	// Transportation
	{"uber", "Transportation"},
	{"lyft", "Transportation"},
	{"taxi", "Transportation"},
	{"airline", "Transportation"},
	{"hotel", "Transportation"},
	{"parking", "Transportation"},
	{"transit", "Transportation"},
	{"costco gas", "Transportation"},

	// Shopping
	{"amazon", "Shopping"},
	{"walmart", "Shopping"},
	{"target", "Shopping"},
	{"bestbuy", "Shopping"},
	{"mall", "Shopping"},
	{"store", "Shopping"},

	// Healthcare
	{"pharmacy", "Healthcare"},
	{"doctor", "Healthcare"},
	{"hospital", "Healthcare"},
	{"clinic", "Healthcare"},
	{"cvs", "Healthcare"},
	{"walgreens", "Healthcare"},
	{"gym", "Healthcare"},

	// Dog Care
	{"dog", "Dog Care"},
	{"vet", "Dog Care"},
	{"pet", "Dog Care"},
	{"petco", "Dog Care"},
	{"petsmart", "Dog Care"},

	// Subscriptions
	{"subscription", "Subscriptions"},
	{"spotify", "Subscriptions"},
	{"youtubepremium", "Subscriptions"},
	{"openai *chatgpt", "Subscriptions"},
	{"claude.ai subscription", "Subscriptions"},
	{"netflix", "Subscriptions"},
	{"hulu", "Subscriptions"},
	{"disney", "Subscriptions"},

	// Refunds
	{"refund", "Refunds & Returns"},
	{"return", "Refunds & Returns"},
	{"credit", "Refunds & Returns"},
}
