package services

import "github.com/clubledger/clubledger/internal/core/domain"

// ChartEntry is one row of the predefined chart of accounts.
type ChartEntry struct {
	Number      string
	Name        string
	Type        domain.AccountType
	Description string
}

// StandardChart is the fixed catalog bootstrapped by SetupStandardChart.
// Numbers follow the usual 1xxx assets / 2xxx liabilities / 3xxx equity /
// 4xxx income / 5xxx-6xxx expenses convention.
var StandardChart = []ChartEntry{
	{Number: "1000", Name: "Cash on Hand", Type: domain.Asset, Description: "Physical cash held by the club"},
	{Number: "1010", Name: "Checking Account", Type: domain.Asset, Description: "Primary bank checking account"},
	{Number: "1020", Name: "Savings Account", Type: domain.Asset, Description: "Bank savings account"},
	{Number: "1100", Name: "Accounts Receivable", Type: domain.Asset, Description: "Amounts owed to the club"},
	{Number: "1110", Name: "Member Dues Receivable", Type: domain.Asset, Description: "Unpaid member dues"},
	{Number: "1200", Name: "Prepaid Expenses", Type: domain.Asset, Description: "Payments made in advance"},
	{Number: "1300", Name: "Inventory", Type: domain.Asset, Description: "Merchandise and supplies for resale"},
	{Number: "1500", Name: "Equipment", Type: domain.Asset, Description: "Club equipment at cost"},
	{Number: "1510", Name: "Furniture & Fixtures", Type: domain.Asset, Description: "Clubhouse furniture and fixtures"},
	{Number: "1600", Name: "Accumulated Depreciation", Type: domain.Asset, Description: "Contra-asset for depreciation"},
	{Number: "2000", Name: "Accounts Payable", Type: domain.Liability, Description: "Amounts the club owes"},
	{Number: "2100", Name: "Accrued Expenses", Type: domain.Liability, Description: "Expenses incurred but not yet paid"},
	{Number: "2200", Name: "Deferred Membership Dues", Type: domain.Liability, Description: "Dues collected for future periods"},
	{Number: "2300", Name: "Event Deposits Held", Type: domain.Liability, Description: "Deposits held for upcoming events"},
	{Number: "2400", Name: "Sales Tax Payable", Type: domain.Liability, Description: "Collected sales tax due to the state"},
	{Number: "3000", Name: "Opening Balance Equity", Type: domain.Equity, Description: "Offset for opening balances"},
	{Number: "3100", Name: "Retained Surplus", Type: domain.Equity, Description: "Accumulated operating surplus"},
	{Number: "3200", Name: "Restricted Funds", Type: domain.Equity, Description: "Donor or grant restricted funds"},
	{Number: "4000", Name: "Membership Dues", Type: domain.Income, Description: "Regular membership dues"},
	{Number: "4010", Name: "Initiation Fees", Type: domain.Income, Description: "One-time new member fees"},
	{Number: "4100", Name: "Event Revenue", Type: domain.Income, Description: "Ticket and entry fees"},
	{Number: "4110", Name: "Bar & Concessions", Type: domain.Income, Description: "Bar and concession sales"},
	{Number: "4200", Name: "Donations", Type: domain.Income, Description: "Gifts and donations received"},
	{Number: "4210", Name: "Grants", Type: domain.Income, Description: "Grant funding received"},
	{Number: "4300", Name: "Sponsorships", Type: domain.Income, Description: "Corporate sponsorship income"},
	{Number: "4400", Name: "Merchandise Sales", Type: domain.Income, Description: "Club merchandise sales"},
	{Number: "4500", Name: "Interest Income", Type: domain.Income, Description: "Bank interest earned"},
	{Number: "5000", Name: "Rent Expense", Type: domain.Expense, Description: "Clubhouse or venue rent"},
	{Number: "5010", Name: "Utilities", Type: domain.Expense, Description: "Electricity, water, heating"},
	{Number: "5020", Name: "Insurance", Type: domain.Expense, Description: "Liability and property insurance"},
	{Number: "5100", Name: "Event Expenses", Type: domain.Expense, Description: "Costs of running events"},
	{Number: "5110", Name: "Catering & Supplies", Type: domain.Expense, Description: "Food, drink and consumables"},
	{Number: "5200", Name: "Equipment Maintenance", Type: domain.Expense, Description: "Repairs and upkeep"},
	{Number: "5300", Name: "Postage & Printing", Type: domain.Expense, Description: "Mailings, newsletters, flyers"},
	{Number: "5400", Name: "Website & Software", Type: domain.Expense, Description: "Hosting and subscriptions"},
	{Number: "5500", Name: "Bank & Payment Fees", Type: domain.Expense, Description: "Bank charges and card fees"},
	{Number: "5600", Name: "Affiliation Fees", Type: domain.Expense, Description: "National body affiliation fees"},
	{Number: "5700", Name: "Travel & Mileage", Type: domain.Expense, Description: "Reimbursed travel costs"},
	{Number: "5800", Name: "Training & Coaching", Type: domain.Expense, Description: "Coaching and training costs"},
	{Number: "6000", Name: "Miscellaneous Expense", Type: domain.Expense, Description: "Sundry uncategorized expenses"},
}
