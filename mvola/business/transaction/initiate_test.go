package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.app/mvola/mocks/business/auth_business"
	"encore.app/mvola/mocks/provider_client"
	"encore.app/mvola/model"
	"encore.app/mvola/provider"
)

var testPartner = model.Partner{MSISDN: "0343500004", Name: "Solar Shop"}

func newTestBusiness(authBusiness *auth_business.MockBusiness, client *provider_client.MockClient, now time.Time) *business {
	return &business{
		auth:        authBusiness,
		client:      client,
		partner:     testPartner,
		callbackURL: "https://shop.example.mg/mvola/callback",
		now:         func() time.Time { return now },
	}
}

func TestInitiate(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	testCases := []struct {
		name             string
		request          *model.PaymentRequest
		expectAuth       bool
		mockAuthError    error
		expectProvider   bool
		mockProviderBody json.RawMessage
		mockProviderErr  error
		expectedReason   model.ValidationReason
		expectedError    string
	}{
		{
			name:             "happy_case",
			request:          &model.PaymentRequest{Amount: 5000, CustomerMSISDN: "0341234567", CorrelationID: "SOLAR-42"},
			expectAuth:       true,
			expectProvider:   true,
			mockProviderBody: json.RawMessage(`{"status":"pending","serverCorrelationId":"srv-1","notificationMethod":"callback"}`),
		},
		{
			name:           "amount_below_minimum_no_outbound_call",
			request:        &model.PaymentRequest{Amount: 99, CustomerMSISDN: "0341234567"},
			expectedReason: model.InvalidAmount,
		},
		{
			name:           "invalid_phone_no_outbound_call",
			request:        &model.PaymentRequest{Amount: 5000, CustomerMSISDN: "0391234567"},
			expectedReason: model.InvalidPhone,
		},
		{
			name:          "auth_failure",
			request:       &model.PaymentRequest{Amount: 5000, CustomerMSISDN: "0341234567"},
			expectAuth:    true,
			mockAuthError: &model.AuthError{Err: errors.New("invalid_client")},
			expectedError: "invalid_client",
		},
		{
			name:           "provider_unavailable",
			request:        &model.PaymentRequest{Amount: 5000, CustomerMSISDN: "0341234567"},
			expectAuth:     true,
			expectProvider: true,
			mockProviderErr: &model.ProviderError{
				Op:         "initiate transaction",
				StatusCode: http.StatusServiceUnavailable,
				Body:       json.RawMessage(`{"errorDescription":"Service unavailable"}`),
			},
			expectedError: "status 503",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuth := auth_business.NewMockBusiness(ctrl)
			mockClient := provider_client.NewMockClient(ctrl)
			business := newTestBusiness(mockAuth, mockClient, now)

			if tc.expectAuth {
				mockAuth.EXPECT().Authenticate(gomock.Any()).Return("token-1", tc.mockAuthError).Times(1)
			}
			if tc.expectProvider {
				mockClient.EXPECT().
					Do(gomock.Any(), gomock.Any()).
					Return(tc.mockProviderBody, tc.mockProviderErr).
					Times(1)
			}

			result, err := business.Initiate(context.Background(), tc.request)

			if tc.expectedReason != "" {
				var validationErr *model.ValidationError
				if assert.True(t, errors.As(err, &validationErr)) {
					assert.Equal(t, tc.expectedReason, validationErr.Reason)
				}
				assert.Nil(t, result)
				return
			}

			if tc.expectedError != "" {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.JSONEq(t, string(tc.mockProviderBody), string(result))
		})
	}
}

func TestInitiate_OutboundRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 5, 1, 10, 30, 0, 123000000, time.UTC)
	mockAuth := auth_business.NewMockBusiness(ctrl)
	mockClient := provider_client.NewMockClient(ctrl)
	business := newTestBusiness(mockAuth, mockClient, now)

	mockAuth.EXPECT().Authenticate(gomock.Any()).Return("token-1", nil)

	var captured *provider.Request
	mockClient.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *provider.Request) (json.RawMessage, error) {
			captured = req
			return json.RawMessage(`{"status":"pending"}`), nil
		})

	_, err := business.Initiate(context.Background(), &model.PaymentRequest{
		Amount:         5000,
		CustomerMSISDN: "0341234567",
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, provider.MerchantPayPath, captured.Path)
	assert.Equal(t, "token-1", captured.AccessToken)
	assert.Equal(t, "https://shop.example.mg/mvola/callback", captured.CallbackURL)
	assert.True(t, strings.HasPrefix(captured.CorrelationID, "SOLAR-"))

	payload, ok := captured.Body.(*model.TransactionPayload)
	require.True(t, ok)

	assert.Equal(t, "5000", payload.Amount)
	assert.Equal(t, model.Currency, payload.Currency)
	assert.Equal(t, DefaultDescription, payload.DescriptionText)
	assert.Equal(t, "2024-05-01T10:30:00.123Z", payload.RequestDate)
	assert.Equal(t, captured.CorrelationID, payload.RequestingOrganisationTransactionReference)
	assert.Equal(t, captured.CorrelationID, payload.OriginalTransactionReference)
	assert.Contains(t, payload.DebitParty, model.KeyValue{Key: "msisdn", Value: "0341234567"})
	assert.Contains(t, payload.CreditParty, model.KeyValue{Key: "msisdn", Value: testPartner.MSISDN})
	assert.Contains(t, payload.Metadata, model.KeyValue{Key: "partnerName", Value: testPartner.Name})
	assert.Contains(t, payload.Metadata, model.KeyValue{Key: "fc", Value: "USD"})
	assert.Contains(t, payload.Metadata, model.KeyValue{Key: "amountFc", Value: "1"})
}

func TestSanitizeDescription(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty_uses_default", input: "", expected: DefaultDescription},
		{name: "plain_text_kept", input: "Kit solaire 50W", expected: "Kit solaire 50W"},
		{name: "special_characters_removed", input: "Commande #123 (panneau) !", expected: "Commande 123 panneau"},
		{name: "accents_removed", input: "Batterie lithium évolutive", expected: "Batterie lithium volutive"},
		{name: "only_special_characters", input: "@@##", expected: DefaultDescription},
		{name: "truncated", input: strings.Repeat("a", 80), expected: strings.Repeat("a", 50)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeDescription(tc.input))
		})
	}
}

func TestNewReference(t *testing.T) {
	now := time.UnixMilli(1714559400000)

	first := NewReference(now)
	second := NewReference(now)

	assert.True(t, strings.HasPrefix(first, "SOLAR-1714559400000-"))
	assert.Len(t, first, len("SOLAR-1714559400000-")+8)
	assert.NotEqual(t, first, second)
}

func TestMaskMSISDN(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "customer_number", input: "0341234567", expected: "034*****67"},
		{name: "short_value_fully_masked", input: "0341", expected: "****"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			masked := maskMSISDN(tc.input)
			assert.Equal(t, tc.expected, masked)
			if len(tc.input) > 5 {
				assert.NotContains(t, masked, tc.input[3:8])
			}
		})
	}
}
