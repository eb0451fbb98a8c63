package domain

// Direction indicates whether a category moves cash into or out of the till.
type Direction string

const (
	In  Direction = "IN"
	Out Direction = "OUT"
)

// CategoryType determines the posting rule for a category.
// NORMAL categories post against a revenue/expense counter account;
// TRANSFER categories post against a bank account.
type CategoryType string

const (
	Normal   CategoryType = "NORMAL"
	Transfer CategoryType = "TRANSFER"
)

// BankTarget identifies which configured bank account a TRANSFER category uses.
type BankTarget string

const (
	BankNone    BankTarget = ""
	BankCurrent BankTarget = "CURRENT"
	BankSavings BankTarget = "SAVINGS"
)

// CashCategory is one entry of the closed, compile-time catalog of cash
// transaction kinds. Direction and Type jointly determine the debit/credit
// layout of the entry the posting service builds.
type CashCategory struct {
	Code       string       `json:"code"`
	Direction  Direction    `json:"direction"`
	Type       CategoryType `json:"type"`
	NameJA     string       `json:"nameJa"`
	NameEN     string       `json:"nameEn"`
	BankTarget BankTarget   `json:"-"` // set only for TRANSFER categories
	// Keywords drive the account search during auto setup. Matching is
	// case-insensitive substring over external account names.
	Keywords []string `json:"-"`
}

// Category codes. The set is closed; adding one is a code change that the
// posting rule switch picks up at compile time.
const (
	CatCashSales     = "CASH_SALES"
	CatMiscIncome    = "MISC_INCOME"
	CatRent          = "RENT"
	CatSupplies      = "SUPPLIES"
	CatUtilities     = "UTILITIES"
	CatCommunication = "COMMUNICATION"
	CatTravel        = "TRAVEL"
	CatEntertainment = "ENTERTAINMENT"
	CatFreight       = "FREIGHT"
	CatMiscExpense   = "MISC_EXPENSE"

	CatTransferCurrentIn  = "TRANSFER_CURRENT_IN"
	CatTransferCurrentOut = "TRANSFER_CURRENT_OUT"
	CatTransferSavingsIn  = "TRANSFER_SAVINGS_IN"
	CatTransferSavingsOut = "TRANSFER_SAVINGS_OUT"
)

// cashCategories is the catalog, in display order.
var cashCategories = []CashCategory{
	{Code: CatCashSales, Direction: In, Type: Normal, NameJA: "現金売上", NameEN: "Cash sales", Keywords: []string{"売上", "sales", "revenue"}},
	{Code: CatMiscIncome, Direction: In, Type: Normal, NameJA: "雑収入", NameEN: "Miscellaneous income", Keywords: []string{"雑収入", "misc income", "other income"}},
	{Code: CatTransferCurrentIn, Direction: In, Type: Transfer, BankTarget: BankCurrent, NameJA: "普通預金から入金", NameEN: "Deposit from current account"},
	{Code: CatTransferSavingsIn, Direction: In, Type: Transfer, BankTarget: BankSavings, NameJA: "定期預金から入金", NameEN: "Deposit from savings account"},

	{Code: CatRent, Direction: Out, Type: Normal, NameJA: "地代家賃", NameEN: "Rent", Keywords: []string{"地代家賃", "家賃", "rent"}},
	{Code: CatSupplies, Direction: Out, Type: Normal, NameJA: "消耗品費", NameEN: "Supplies", Keywords: []string{"消耗品", "supplies"}},
	{Code: CatUtilities, Direction: Out, Type: Normal, NameJA: "水道光熱費", NameEN: "Utilities", Keywords: []string{"水道光熱", "光熱", "utilities"}},
	{Code: CatCommunication, Direction: Out, Type: Normal, NameJA: "通信費", NameEN: "Communication", Keywords: []string{"通信費", "communication", "phone"}},
	{Code: CatTravel, Direction: Out, Type: Normal, NameJA: "旅費交通費", NameEN: "Travel", Keywords: []string{"旅費", "交通費", "travel"}},
	{Code: CatEntertainment, Direction: Out, Type: Normal, NameJA: "接待交際費", NameEN: "Entertainment", Keywords: []string{"接待", "交際費", "entertainment"}},
	{Code: CatFreight, Direction: Out, Type: Normal, NameJA: "荷造運賃", NameEN: "Freight", Keywords: []string{"荷造", "運賃", "freight", "shipping"}},
	{Code: CatMiscExpense, Direction: Out, Type: Normal, NameJA: "雑費", NameEN: "Miscellaneous expense", Keywords: []string{"雑費", "misc", "sundry"}},

	{Code: CatTransferCurrentOut, Direction: Out, Type: Transfer, BankTarget: BankCurrent, NameJA: "普通預金へ預入", NameEN: "Deposit to current account"},
	{Code: CatTransferSavingsOut, Direction: Out, Type: Transfer, BankTarget: BankSavings, NameJA: "定期預金へ預入", NameEN: "Deposit to savings account"},
}

var categoryByCode = func() map[string]CashCategory {
	m := make(map[string]CashCategory, len(cashCategories))
	for _, c := range cashCategories {
		m[c.Code] = c
	}
	return m
}()

// LookupCategory returns the catalog entry for code, if any.
func LookupCategory(code string) (CashCategory, bool) {
	c, ok := categoryByCode[code]
	return c, ok
}

// CategoriesByDirection returns catalog entries with the given direction,
// in display order.
func CategoriesByDirection(d Direction) []CashCategory {
	out := make([]CashCategory, 0, len(cashCategories))
	for _, c := range cashCategories {
		if c.Direction == d {
			out = append(out, c)
		}
	}
	return out
}

// AllCategories returns the full catalog in display order.
func AllCategories() []CashCategory {
	out := make([]CashCategory, len(cashCategories))
	copy(out, cashCategories)
	return out
}
