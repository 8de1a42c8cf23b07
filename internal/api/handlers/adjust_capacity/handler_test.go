package adjust_capacity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	adjustCapacity "github.com/m04kA/SMC-ScheduleService/internal/usecase/adjust_capacity"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeUseCase struct {
	got *adjustCapacity.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *adjustCapacity.Request) (*adjustCapacity.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &adjustCapacity.Response{
		StylistID: req.StylistID,
		Date:      req.Date,
		Slot:      req.Slot,
		Time:      req.Slot.Start(),
		Previous:  2,
		Limit:     1,
		Changed:   true,
	}, nil
}

func serve(uc *fakeUseCase, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/stylists/{stylistId}/schedule/{date}/slots/{slot}/capacity", NewHandler(uc, logger.Nop()).Handle).
		Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "6")
	req.Header.Set(middleware.HeaderUserRole, "stylist")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/stylists/6/schedule/2025-03-12/slots/20/capacity", `{"direction":"down"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Slot(20), uc.got.Slot)
	assert.Equal(t, adjustCapacity.DirectionDown, uc.got.Direction)

	var resp CapacityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, 1, resp.Limit)
	assert.True(t, resp.Changed)
}

func TestHandler_BadParams(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/stylists/6/schedule/2025-13-12/slots/20/capacity", `{"direction":"up"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(uc, "/stylists/6/schedule/2025-03-12/slots/ten/capacity", `{"direction":"up"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandler_ErrorMapping(t *testing.T) {
	rec := serve(&fakeUseCase{err: adjustCapacity.ErrAccessDenied}, "/stylists/7/schedule/2025-03-12/slots/20/capacity", `{"direction":"up"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(&fakeUseCase{err: adjustCapacity.ErrInvalidInput}, "/stylists/6/schedule/2025-03-12/slots/99/capacity", `{"direction":"up"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{err: adjustCapacity.ErrInternal}, "/stylists/6/schedule/2025-03-12/slots/20/capacity", `{"direction":"up"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
