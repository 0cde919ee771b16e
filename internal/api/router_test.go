package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"currencyconv/internal/currency/handler"
	"currencyconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubService struct{ mock.Mock }

func (m *stubService) Register(ctx context.Context, name string, rate decimal.Decimal) (domain.Currency, error) {
	args := m.Called(name, rate.String())
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *stubService) List(context.Context) ([]domain.Currency, error) {
	args := m.Called()
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *stubService) GetByID(_ context.Context, id int64) (domain.Currency, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *stubService) GetByName(_ context.Context, name string) (domain.Currency, error) {
	args := m.Called(name)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *stubService) Replace(_ context.Context, name string, newName string, newRate decimal.Decimal) (domain.Currency, error) {
	args := m.Called(name, newName, newRate.String())
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *stubService) ReplaceByID(_ context.Context, id int64, newName string, newRate decimal.Decimal) (domain.Currency, error) {
	args := m.Called(id, newName, newRate.String())
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *stubService) Patch(_ context.Context, name string, _ domain.CurrencyPatch) (domain.Currency, error) {
	args := m.Called(name)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *stubService) PatchByID(_ context.Context, id int64, _ domain.CurrencyPatch) (domain.Currency, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *stubService) Delete(_ context.Context, id int64) error {
	return m.Called(id).Error(0)
}

type stubConverter struct{ mock.Mock }

func (m *stubConverter) Convert(_ context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	args := m.Called(req.DestLabel)
	return args.Get(0).(domain.ConversionResult), args.Error(1)
}

func newTestRouter(t *testing.T) (http.Handler, *stubService, *stubConverter) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	svc := new(stubService)
	conv := new(stubConverter)
	return NewRouter(handler.NewCurrencyHandler(svc, conv, logger, 0), logger), svc, conv
}

func TestRouter_Dispatch(t *testing.T) {
	euro := domain.Currency{ID: 1, Name: "EURO", Rate: decimal.RequireFromString("3.96")}

	cases := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(svc *stubService, conv *stubConverter)
		wantStatus int
	}{
		{
			name: "register", method: http.MethodPost, path: "/api/v1/currencies", body: `{"name":"Euro","rate":3.96}`,
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("Register", "Euro", "3.96").Return(euro, nil).Once() },
			wantStatus: http.StatusCreated,
		},
		{
			name: "list", method: http.MethodGet, path: "/api/v1/currencies",
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("List").Return([]domain.Currency{euro}, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name: "get by id", method: http.MethodGet, path: "/api/v1/currencies/1",
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("GetByID", int64(1)).Return(euro, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name: "get by name", method: http.MethodGet, path: "/api/v1/currencies/by-name/euro",
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("GetByName", "euro").Return(euro, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name: "replace by name", method: http.MethodPut, path: "/api/v1/currencies/euro", body: `{"name":"Eur","rate":4}`,
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("Replace", "euro", "Eur", "4").Return(euro, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name: "patch by name", method: http.MethodPatch, path: "/api/v1/currencies/euro", body: `{"rate":4}`,
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("Patch", "euro").Return(euro, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name: "replace by id", method: http.MethodPut, path: "/api/v1/currencies/by-id/1", body: `{"name":"Eur","rate":4}`,
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("ReplaceByID", int64(1), "Eur", "4").Return(euro, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name: "patch by id", method: http.MethodPatch, path: "/api/v1/currencies/by-id/1", body: `{"rate":4}`,
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("PatchByID", int64(1)).Return(euro, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name: "delete", method: http.MethodDelete, path: "/api/v1/currencies/1",
			setup:      func(svc *stubService, _ *stubConverter) { svc.On("Delete", int64(1)).Return(nil).Once() },
			wantStatus: http.StatusNoContent,
		},
		{
			name: "convert", method: http.MethodPost, path: "/api/v1/convert",
			body: `{"amount":1,"originLabel":"soles","destLabel":"euro"}`,
			setup: func(_ *stubService, conv *stubConverter) {
				conv.On("Convert", "euro").Return(domain.ConversionResult{}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "hello", method: http.MethodGet, path: "/api/v1/hello",
			setup:      func(*stubService, *stubConverter) {},
			wantStatus: http.StatusOK,
		},
		{
			name: "healthz", method: http.MethodGet, path: "/healthz",
			setup:      func(*stubService, *stubConverter) {},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown route", method: http.MethodGet, path: "/api/v2/currencies",
			setup:      func(*stubService, *stubConverter) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, svc, conv := newTestRouter(t)
			tc.setup(svc, conv)

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)
			svc.AssertExpectations(t)
			conv.AssertExpectations(t)
		})
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/hello", nil))

	require.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	svc.On("GetByID", int64(1)).Return(nil, nil).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/currencies/1", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
