package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinnerconcierge/internal/codec"
	"dinnerconcierge/internal/database"
	"dinnerconcierge/internal/flow"
	"dinnerconcierge/internal/models"
	"dinnerconcierge/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	st := store.New(database.NewMemory(), "", logger)
	ctrl := flow.New(st, models.DefaultMenu(), logger)
	_, err := ctrl.Startup(context.Background(), "")
	require.NoError(t, err)

	s := New(ctrl, "http://localhost:8080/", logger)
	s.now = func() time.Time { return time.Date(2025, 12, 24, 19, 0, 0, 0, time.UTC) }
	return s, st
}

func jacksonPayload(t *testing.T) string {
	t.Helper()
	menu := models.DefaultMenu()
	o := models.NewOrder("Jackson")
	for c, id := range map[models.Category]string{
		models.CategorySoup:      "s2",
		models.CategoryAppetizer: "ap1",
		models.CategoryMain:      "m5",
		models.CategoryALaCarte:  "al1",
	} {
		item, ok := menu.FindItem(id)
		require.True(t, ok)
		o.Choose(c, item)
	}
	o.Notes = "no onions"
	confirmed, ok := models.Confirm(o)
	require.True(t, ok)

	payload, err := codec.Encode(models.OrderSet{"Jackson": confirmed})
	require.NoError(t, err)
	return payload
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestImportLinkIsConsumedAndStripped(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Router()

	rec := get(t, h, "/?lang=en&import="+url.QueryEscape(jacksonPayload(t)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?lang=en", rec.Header().Get("Location"))

	stored, err := st.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, stored, "Jackson")

	rec = get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	var st2 status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st2))
	assert.Equal(t, "selecting", st2.State)
	assert.Equal(t, []string{"Jackson"}, st2.Orders)
	assert.Equal(t, []string{"Stella", "Ai Ning", "Channing"}, st2.Waiting)
	assert.Equal(t, "Imported orders for Jackson", st2.Notice)
}

func TestImportLinkWithSpacesForPlus(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	// an unescaped payload: any '+' arrives as a space after query parsing
	rec := get(t, h, "/?import="+jacksonPayload(t))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = get(t, h, "/orders")
	var orders models.OrderSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Contains(t, orders, "Jackson")
}

func TestBadImportStillRedirects(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	rec := get(t, h, "/?import=garbage!!")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = get(t, h, "/orders")
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = get(t, h, "/")
	assert.Contains(t, rec.Body.String(), "could not be read")
}

func TestSummary(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()
	get(t, h, "/?import="+url.QueryEscape(jacksonPayload(t)))

	rec := get(t, h, "/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "DINNER ORDER SUMMARY\n"))
	assert.Contains(t, rec.Body.String(), "- NOTE: no onions\n")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Dinner_Order_2025-12-24.txt")

	rec = get(t, h, "/summary?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Jackson,")

	rec = get(t, h, "/summary?format=pdf")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShare(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()
	get(t, h, "/?import="+url.QueryEscape(jacksonPayload(t)))

	rec := get(t, h, "/share?person=Jackson")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body["link"], "http://localhost:8080/?import="))

	decoded, err := codec.DecodeLenient(codec.PayloadFromInput(body["link"]), models.DefaultMenu())
	require.NoError(t, err)
	assert.Equal(t, "no onions", decoded["Jackson"].Notes)

	rec = get(t, h, "/share?person=Nobody")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
