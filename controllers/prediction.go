package controllers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"deserve-iq/models"
	"deserve-iq/services"
	"deserve-iq/utils"
)

type PredictionController struct{}

// PredictSingle forwards one JSON payload to the ML service. Upstream
// failures surface as 502 here; the batch path below answers 400 instead,
// which is a known inconsistency we keep for the frontend's sake.
func (pc PredictionController) PredictSingle(ml *services.MLService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		pred, err := ml.PredictSingle(r.Context(), payload)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadGateway, models.Error{Message: err.Error()})
			return
		}

		utils.ResponseJSON(w, pred)
	}
}

// PredictBatch accepts a multipart CSV upload, runs the batch pipeline
// and answers with the enriched CSV as a downloadable attachment.
func (pc PredictionController) PredictBatch(batch *services.BatchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "CSV ERROR → file part is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		out, err := batch.RunBatch(r.Context(), file)
		if err != nil {
			http.Error(w, "CSV ERROR → "+err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="predictions.csv"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(out); err != nil {
			log.Printf("Error writing csv response: %v", err)
		}
	}
}
