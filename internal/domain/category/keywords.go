package category

// Keyword maps a merchant substring to a curated display name and category.
// The authoritative table lives in the merchant_keywords table (seeded by
// migration); this slice is the fallback when the database has none, and the
// source for the seed itself.
type Keyword struct {
	Pattern     string // matched case-insensitively as a substring
	DisplayName string
	Category    Category
}

// DefaultKeywords returns the built-in merchant keyword table, biased towards
// Dutch bank exports plus the usual international suspects.
func DefaultKeywords() []Keyword {
	return []Keyword{
		// Supermarkets
		{"albert heijn", "Albert Heijn", Groceries},
		{"jumbo", "Jumbo", Groceries},
		{"lidl", "Lidl", Groceries},
		{"aldi", "Aldi", Groceries},
		{"plus retail", "PLUS", Groceries},
		{"dirk vdbroek", "Dirk van den Broek", Groceries},
		{"picnic", "Picnic", Groceries},
		{"spar", "Spar", Groceries},

		// Dining & delivery
		{"thuisbezorgd", "Thuisbezorgd", DiningOut},
		{"uber eats", "Uber Eats", DiningOut},
		{"deliveroo", "Deliveroo", DiningOut},
		{"mcdonald", "McDonald's", DiningOut},
		{"burger king", "Burger King", DiningOut},
		{"starbucks", "Starbucks", DiningOut},
		{"domino", "Domino's", DiningOut},

		// Transport
		{"ns groep", "NS", Transport},
		{"ns reizigers", "NS", Transport},
		{"ov-chipkaart", "OV-chipkaart", Transport},
		{"gvb", "GVB", Transport},
		{"ret ", "RET", Transport},
		{"htm ", "HTM", Transport},
		{"shell", "Shell", Transport},
		{"bp ", "BP", Transport},
		{"esso", "Esso", Transport},
		{"uber", "Uber", Transport},
		{"bolt.eu", "Bolt", Transport},
		{"swapfiets", "Swapfiets", Transport},

		// Subscriptions & entertainment
		{"netflix", "Netflix", Subscriptions},
		{"spotify", "Spotify", Subscriptions},
		{"disney plus", "Disney+", Subscriptions},
		{"disney+", "Disney+", Subscriptions},
		{"videoland", "Videoland", Subscriptions},
		{"hbo max", "HBO Max", Subscriptions},
		{"playstation", "PlayStation", Leisure},
		{"steam", "Steam", Leisure},
		{"pathe", "Pathé", Leisure},

		// Housing & utilities
		{"eneco", "Eneco", Utilities},
		{"vattenfall", "Vattenfall", Utilities},
		{"essent", "Essent", Utilities},
		{"greenchoice", "Greenchoice", Utilities},
		{"vitens", "Vitens", Utilities},
		{"ziggo", "Ziggo", Utilities},
		{"kpn", "KPN", Utilities},
		{"odido", "Odido", Utilities},
		{"t-mobile", "T-Mobile", Utilities},
		{"huur", "Huur", Housing},
		{"hypotheek", "Hypotheek", Housing},

		// Insurance & health
		{"zilveren kruis", "Zilveren Kruis", Insurance},
		{"vgz", "VGZ", Insurance},
		{"cz groep", "CZ", Insurance},
		{"menzis", "Menzis", Insurance},
		{"centraal beheer", "Centraal Beheer", Insurance},
		{"apotheek", "Apotheek", Health},
		{"etos", "Etos", Health},
		{"kruidvat", "Kruidvat", Health},

		// Shopping
		{"bol.com", "Bol.com", Shopping},
		{"amazon", "Amazon", Shopping},
		{"coolblue", "Coolblue", Shopping},
		{"mediamarkt", "MediaMarkt", Shopping},
		{"hema", "HEMA", Shopping},
		{"action", "Action", Shopping},
		{"ikea", "IKEA", Shopping},
		{"zalando", "Zalando", Shopping},
		{"decathlon", "Decathlon", Shopping},

		// Income & transfers
		{"salaris", "Salaris", Salary},
		{"loon ", "Loon", Salary},
		{"belastingdienst", "Belastingdienst", Transfers},
		{"tikkie", "Tikkie", Transfers},
		{"paypal", "PayPal", Transfers},
		{"spaarrekening", "Spaarrekening", Savings},
	}
}
