package domain

// LoanSummary is the read-only view owned by the loans service, fetched by
// mobile number during aggregation.
type LoanSummary struct {
	MobileNumber      string `json:"mobileNumber"`
	LoanNumber        string `json:"loanNumber"`
	LoanType          string `json:"loanType"`
	TotalLoan         int64  `json:"totalLoan"`
	AmountPaid        int64  `json:"amountPaid"`
	OutstandingAmount int64  `json:"outstandingAmount"`
}

// CardSummary is the read-only view owned by the cards service.
type CardSummary struct {
	MobileNumber    string `json:"mobileNumber"`
	CardNumber      string `json:"cardNumber"`
	CardType        string `json:"cardType"`
	TotalLimit      int64  `json:"totalLimit"`
	AmountUsed      int64  `json:"amountUsed"`
	AvailableAmount int64  `json:"availableAmount"`
}

// CustomerDetails is the aggregated view composed per request: the local
// customer and account joined with the loans and cards lookups. It is never
// persisted.
type CustomerDetails struct {
	Customer *Customer
	Account  *Account
	Loans    *LoanSummary
	Cards    *CardSummary
}
