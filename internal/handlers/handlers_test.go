package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/cmd/docs"
	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/handlers"
	"github.com/SscSPs/fintrack_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	userID        string
	mockRates     *MockExchangeRateService
	mockSync      *MockRateSync
	mockConverter *MockConverter
	mockIncome    *MockIncomeService
	mockUser      *MockUserService
	mockDashboard *MockDashboardService
}

func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fintrack-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.cfg.JWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.userID = uuid.NewString()
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "fintrack-test",
		LoginRateLimit:    "100-M",
		IsProduction:      true,
	}

	suite.mockRates = new(MockExchangeRateService)
	suite.mockSync = new(MockRateSync)
	suite.mockConverter = new(MockConverter)
	suite.mockIncome = new(MockIncomeService)
	suite.mockUser = new(MockUserService)
	suite.mockDashboard = new(MockDashboardService)

	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		ExchangeRate: suite.mockRates,
		RateSync:     suite.mockSync,
		Converter:    suite.mockConverter,
		Income:       suite.mockIncome,
		User:         suite.mockUser,
		Dashboard:    suite.mockDashboard,
	})
}

func (suite *HandlerTestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(buf)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) money(amount, currency string) domain.Money {
	m, err := domain.NewMoneyFromString(amount, currency)
	suite.Require().NoError(err)
	return m
}

// --- Health / auth ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRouteRequiresToken() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates", nil, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "ListRates", mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_IssuesUsableToken() {
	user := &domain.User{UserID: suite.userID, Username: "alice", Name: "Alice"}
	suite.mockUser.On("Authenticate", mock.Anything, "alice", "correct-horse").Return(user, nil).Once()
	suite.mockUser.On("GetUserByID", mock.Anything, suite.userID).Return(user, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "correct-horse"}, false)
	suite.Require().Equal(http.StatusOK, w.Code)

	var login dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &login))
	suite.NotEmpty(login.Token)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	me := httptest.NewRecorder()
	suite.router.ServeHTTP(me, req)

	suite.Equal(http.StatusOK, me.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(me.Body.Bytes(), &resp))
	suite.Equal("alice", resp.Username)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockUser.On("Authenticate", mock.Anything, "alice", "wrong-password").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "wrong-password"}, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRegister_DuplicateUsername() {
	req := dto.CreateUserRequest{Username: "alice", Password: "long-enough-pw", Name: "Alice"}
	suite.mockUser.On("CreateUser", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: username %q", apperrors.ErrDuplicate, "alice")).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req, false)
	suite.Equal(http.StatusConflict, w.Code)
}

// --- Exchange rates ---

func (suite *HandlerTestSuite) TestSetManualRate() {
	rate := decimal.RequireFromString("0.95")
	stored := &domain.ExchangeRate{CurrencyCode: "EUR", Rate: rate, LastUpdated: time.Now().UTC(), IsManual: true}
	suite.mockRates.On("SetRate", mock.Anything, "EUR", mock.MatchedBy(rate.Equal), true).Return(stored, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/exchange-rates/EUR", dto.SetExchangeRateRequest{Rate: rate}, true)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsManual)
	suite.Equal("USD", resp.BaseCurrency)
	suite.True(resp.Rate.Equal(rate))
}

func (suite *HandlerTestSuite) TestSetManualRate_NonPositive() {
	suite.mockRates.On("SetRate", mock.Anything, "EUR", mock.Anything, true).
		Return(nil, fmt.Errorf("%w: rate for EUR must be positive", apperrors.ErrInvalidRate)).Once()

	w := suite.do(http.MethodPut, "/api/v1/exchange-rates/EUR", dto.SetExchangeRateRequest{Rate: decimal.Zero}, true)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestGetExchangeRate_Unknown() {
	suite.mockRates.On("GetExchangeRate", mock.Anything, "XYZ").
		Return(nil, fmt.Errorf("%w: XYZ", apperrors.ErrRateNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/XYZ", nil, true)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestListExchangeRates() {
	last := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	suite.mockRates.On("ListRates", mock.Anything).Return([]domain.ExchangeRate{
		{CurrencyCode: "EUR", Rate: decimal.RequireFromString("0.92"), LastUpdated: last},
	}, nil).Once()
	suite.mockRates.On("GetLastSyncTime", mock.Anything).Return(&last, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates", nil, true)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListExchangeRatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Rates, 1)
	suite.Require().NotNil(resp.LastSyncTime)
	suite.True(resp.LastSyncTime.Equal(last))
}

func (suite *HandlerTestSuite) TestClearManualRate_NotFound() {
	suite.mockRates.On("ClearManualOverride", mock.Anything, "GBP").
		Return(fmt.Errorf("%w: exchange rate GBP", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/exchange-rates/GBP/manual", nil, true)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestSyncNow_Succeeded() {
	report := domain.SyncReport{Outcome: domain.SyncSucceeded, Merged: []string{"EUR", "GBP"}}
	suite.mockSync.On("SyncNow", mock.Anything).Return(report, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates/sync", nil, true)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp domain.SyncReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.SyncSucceeded, resp.Outcome)
	suite.Equal([]string{"EUR", "GBP"}, resp.Merged)
}

func (suite *HandlerTestSuite) TestSyncNow_SkippedWhileRunning() {
	suite.mockSync.On("SyncNow", mock.Anything).Return(domain.SyncReport{Outcome: domain.SyncSkipped}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates/sync", nil, true)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestSyncNow_ProviderFailure() {
	suite.mockSync.On("SyncNow", mock.Anything).
		Return(domain.SyncReport{Outcome: domain.SyncFailed}, apperrors.NewExternalServiceError("fetch rates", nil)).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates/sync", nil, true)
	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlerTestSuite) TestSyncStatus() {
	suite.mockSync.On("Status").Return(domain.SyncStatus{State: domain.SyncStateIdle, Scheduled: true}).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/sync/status", nil, true)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp domain.SyncStatus
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.SyncStateIdle, resp.State)
}

// --- Conversion ---

func (suite *HandlerTestSuite) TestConvert() {
	source := suite.money("92", "EUR")
	suite.mockConverter.On("ConvertMoney", mock.Anything, mock.MatchedBy(source.Equals), "USD").
		Return(suite.money("100", "USD"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/convert?amount=92&from=eur&to=USD", nil, true)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EUR", resp.From.Currency)
	suite.Equal("USD", resp.To.Currency)
	suite.True(resp.To.Amount.Equal(decimal.NewFromInt(100)))
}

func (suite *HandlerTestSuite) TestConvert_BadAmount() {
	w := suite.do(http.MethodGet, "/api/v1/currencies/convert?amount=lots&from=EUR&to=USD", nil, true)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConverter.AssertNotCalled(suite.T(), "ConvertMoney", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestConvert_UnknownCurrency() {
	suite.mockConverter.On("ConvertMoney", mock.Anything, mock.Anything, "USD").
		Return(domain.Money{}, fmt.Errorf("%w: ZZZ", apperrors.ErrRateNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/convert?amount=1&from=ZZZ&to=USD", nil, true)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

// --- Incomes ---

func (suite *HandlerTestSuite) TestCreateIncome() {
	received := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateIncomeRequest{
		Source:     "Salary",
		Amount:     decimal.NewFromInt(92),
		Currency:   "EUR",
		ReceivedOn: received,
	}
	created := &domain.Income{
		IncomeID: uuid.NewString(),
		UserID:   suite.userID,
		Source:   "Salary",
		Amount: domain.ConvertedAmount{
			Original: suite.money("92", "EUR"),
			Base:     suite.money("100", "USD"),
			RateUsed: decimal.RequireFromString("0.92"),
		},
		ReceivedOn: received,
	}
	suite.mockIncome.On("CreateIncome", mock.Anything, mock.MatchedBy(func(r dto.CreateIncomeRequest) bool {
		return r.Source == "Salary" && r.Currency == "EUR" && r.Amount.Equal(decimal.NewFromInt(92))
	}), suite.userID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/incomes", req, true)

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.IncomeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.IncomeID, resp.IncomeID)
	suite.Equal("USD", resp.Amount.Base.Currency)
	suite.True(resp.Amount.Base.Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.RecurrenceNone, resp.Recurrence.Frequency)
	suite.mockIncome.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateIncome_MissingSource() {
	w := suite.do(http.MethodPost, "/api/v1/incomes", map[string]any{"amount": "10", "currency": "USD", "receivedOn": "2024-03-15T00:00:00Z"}, true)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockIncome.AssertNotCalled(suite.T(), "CreateIncome", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetIncome_OtherUsersRecord() {
	suite.mockIncome.On("GetIncome", mock.Anything, "inc-1", suite.userID).
		Return(nil, fmt.Errorf("%w: income inc-1", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/incomes/inc-1", nil, true)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteIncome() {
	suite.mockIncome.On("DeleteIncome", mock.Anything, "inc-1", suite.userID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/incomes/inc-1", nil, true)
	suite.Equal(http.StatusNoContent, w.Code)
}

// --- Dashboard ---

func (suite *HandlerTestSuite) TestDashboard_InvertedPeriod() {
	w := suite.do(http.MethodGet, "/api/v1/dashboard/summary?from=2024-04-01&to=2024-03-01", nil, true)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDashboard.AssertNotCalled(suite.T(), "GetSummary", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestDashboard_UnconvertibleRecord() {
	suite.mockDashboard.On("GetSummary", mock.Anything, suite.userID, (*domain.DateRange)(nil)).
		Return(nil, fmt.Errorf("line item 0 (expense ZZZ): %w", apperrors.ErrRateNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/summary", nil, true)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestDashboard_Summary() {
	usd := func(s string) domain.Money { return suite.money(s, "USD") }
	summary := &domain.DashboardSummary{
		UserID:         suite.userID,
		BaseCurrency:   "USD",
		TotalIncome:    usd("1000"),
		TotalExpenses:  usd("400"),
		NetCashFlow:    usd("600"),
		TotalSavings:   usd("250"),
		PortfolioValue: usd("750"),
		NetWorth:       usd("1000"),
		GeneratedAt:    time.Now().UTC(),
	}
	suite.mockDashboard.On("GetSummary", mock.Anything, suite.userID, mock.MatchedBy(func(r *domain.DateRange) bool {
		return r != nil && r.Start().Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(summary, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/summary?from=2024-03-01&to=2024-03-31", nil, true)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.DashboardSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.NetCashFlow.Amount.Equal(decimal.NewFromInt(600)))
	suite.Equal("USD", resp.BaseCurrency)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

var ginParam = regexp.MustCompile(`:(\w+)`)

func (suite *HandlerTestSuite) TestSwaggerDocumentsEveryAPIRoute() {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	for _, route := range suite.router.Routes() {
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			continue
		}
		path := ginParam.ReplaceAllString(strings.TrimPrefix(route.Path, "/api/v1"), "{$1}")
		ops, ok := doc.Paths[path]
		if suite.True(ok, "%s has no swagger entry", path) {
			suite.Contains(ops, strings.ToLower(route.Method), "%s %s has no swagger entry", route.Method, path)
		}
	}
}
