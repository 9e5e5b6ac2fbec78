package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deserve-iq/models"
	"deserve-iq/services"
)

func newBatchHandler(t *testing.T, upstream http.HandlerFunc) (http.HandlerFunc, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	batch := &services.BatchService{
		ML:       services.NewMLService(srv.URL, "/predict", time.Second),
		Students: &services.StudentService{DB: db},
	}
	return PredictionController{}.PredictBatch(batch), mock
}

func multipartCSV(t *testing.T, csvBody string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "students.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestPredictBatchReturnsAttachment(t *testing.T) {
	handler, mock := newBatchHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dropout_probability":0.12,"deservingness_score":0.81,"risk_tier":"LOW"}`))
	})
	mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))

	body, contentType := multipartCSV(t, "name,marks_10,family_income\nAsha,92,120000\n")
	req := httptest.NewRequest(http.MethodPost, "/api/predict/batch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="predictions.csv"`, rec.Header().Get("Content-Disposition"))

	want := "name,marks_10,family_income,dropout_probability,deservingness_score,risk_tier,explanation\n" +
		"Asha,92,120000,0.12,0.81,LOW,{}\n"
	assert.Equal(t, want, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictBatchEmptyCSV(t *testing.T) {
	handler, _ := newBatchHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("ml service must not be called")
	})

	body, contentType := multipartCSV(t, "name,district\n")
	req := httptest.NewRequest(http.MethodPost, "/api/predict/batch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestPredictBatchUpstreamFailureDiagnostic(t *testing.T) {
	handler, _ := newBatchHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	body, contentType := multipartCSV(t, "name\nAsha\n")
	req := httptest.NewRequest(http.MethodPost, "/api/predict/batch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "CSV ERROR → "))
}

func TestPredictBatchMissingFilePart(t *testing.T) {
	handler, _ := newBatchHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("ml service must not be called")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/predict/batch", strings.NewReader(""))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "CSV ERROR → "))
}

func TestPredictSingleHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dropout_probability":0.12,"deservingness_score":0.81,"risk_tier":"LOW"}`))
	}))
	defer srv.Close()

	ml := services.NewMLService(srv.URL, "/predict", time.Second)
	handler := PredictionController{}.PredictSingle(ml)

	req := httptest.NewRequest(http.MethodPost, "/api/predict/single", strings.NewReader(`{"name":"Asha","marks_10":92}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var pred models.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pred))
	assert.Equal(t, 0.12, pred.DropoutProbability)
	assert.Equal(t, "LOW", pred.RiskTier)
}

func TestPredictSingleUpstreamFailureIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ml := services.NewMLService(srv.URL, "/predict", time.Second)
	handler := PredictionController{}.PredictSingle(ml)

	req := httptest.NewRequest(http.MethodPost, "/api/predict/single", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
