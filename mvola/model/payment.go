package model

// Currency is the ISO-ish code MVola expects for ariary amounts.
const Currency = "Ar"

// PaymentRequest is a merchant-pay initiation as received from the storefront.
type PaymentRequest struct {
	Amount          int64  `json:"amount" validate:"required,min=100"`
	CustomerMSISDN  string `json:"customerMSISDN" validate:"required,mvola_msisdn"`
	DescriptionText string `json:"descriptionText,omitempty"`
	CorrelationID   string `json:"correlationId,omitempty"`
}

// Partner identifies the merchant account credited by every payment.
type Partner struct {
	MSISDN string
	Name   string
}

// KeyValue is the MVola representation of parties and metadata entries.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TransactionPayload is the body posted to the merchantpay endpoint.
type TransactionPayload struct {
	Amount                                    string     `json:"amount"`
	Currency                                  string     `json:"currency"`
	DescriptionText                           string     `json:"descriptionText"`
	RequestDate                               string     `json:"requestDate"`
	RequestingOrganisationTransactionReference string     `json:"requestingOrganisationTransactionReference"`
	OriginalTransactionReference              string     `json:"originalTransactionReference"`
	DebitParty                                []KeyValue `json:"debitParty"`
	CreditParty                               []KeyValue `json:"creditParty"`
	Metadata                                  []KeyValue `json:"metadata"`
}
