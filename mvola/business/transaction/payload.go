package transaction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"encore.app/mvola/model"
)

const (
	DefaultDescription   = "Paiement Solar"
	maxDescriptionLength = 50

	// MVola requires foreign-currency metadata even for ariary-only payments.
	foreignCurrency       = "USD"
	foreignCurrencyAmount = "1"

	requestDateLayout = "2006-01-02T15:04:05.000Z"
)

var descriptionDisallowed = regexp.MustCompile(`[^A-Za-z0-9 .,_-]`)

// sanitizeDescription strips the characters MVola rejects and enforces the length limit.
func sanitizeDescription(text string) string {
	cleaned := strings.TrimSpace(descriptionDisallowed.ReplaceAllString(text, ""))
	if len(cleaned) > maxDescriptionLength {
		cleaned = strings.TrimSpace(cleaned[:maxDescriptionLength])
	}
	if cleaned == "" {
		return DefaultDescription
	}
	return cleaned
}

func buildPayload(req *model.PaymentRequest, partner model.Partner, reference string, now time.Time) *model.TransactionPayload {
	return &model.TransactionPayload{
		Amount:          strconv.FormatInt(req.Amount, 10),
		Currency:        model.Currency,
		DescriptionText: sanitizeDescription(req.DescriptionText),
		RequestDate:     now.UTC().Format(requestDateLayout),

		RequestingOrganisationTransactionReference: reference,
		OriginalTransactionReference:               reference,

		DebitParty: []model.KeyValue{
			{Key: "msisdn", Value: req.CustomerMSISDN},
		},
		CreditParty: []model.KeyValue{
			{Key: "msisdn", Value: partner.MSISDN},
		},
		Metadata: []model.KeyValue{
			{Key: "partnerName", Value: partner.Name},
			{Key: "fc", Value: foreignCurrency},
			{Key: "amountFc", Value: foreignCurrencyAmount},
		},
	}
}
