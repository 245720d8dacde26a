package domain

// CompanyDetails describes the corporate entity behind an ownership node:
// its executive, tax identifier, and its own founders. Founders recurse
// arbitrarily deep; the ownership walker bounds traversal.
type CompanyDetails struct {
	Executive        string          `json:"executive,omitempty"`
	TaxID            string          `json:"tax_id,omitempty"`
	RegistrationDate string          `json:"registration_date,omitempty"`
	Founders         []OwnershipNode `json:"founders,omitempty"`
}

// OwnershipNode is one beneficial owner in a party's ownership graph. A node
// flagged as a company may carry nested company details; a node without
// details is a leaf regardless of the flag. The registry collaborator
// produces these graphs already transliterated; they are read-only here.
type OwnershipNode struct {
	Owner      string          `json:"owner"`
	Percentage float64         `json:"percentage,omitempty"`
	IsCompany  bool            `json:"is_company,omitempty"`
	Company    *CompanyDetails `json:"company_details,omitempty"`
}

// Party is one side of a transaction (sender or receiver) with the fields
// screening cares about.
type Party struct {
	Name      string          `json:"name"`
	Executive string          `json:"executive,omitempty"`
	TaxID     string          `json:"tax_id,omitempty"`
	Account   string          `json:"account,omitempty"`
	Address   string          `json:"address,omitempty"`
	BankCode  string          `json:"bank_code,omitempty"`
	BankName  string          `json:"bank_name,omitempty"`
	Owners    []OwnershipNode `json:"owners,omitempty"`
}
