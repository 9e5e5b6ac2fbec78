package services

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"deserve-iq/utils"
)

// BatchService drives uploaded rows through coerce → predict → persist →
// enrich → emit. Strictly sequential, in input order; there is no
// inter-row state and no rollback: the first failure aborts the batch
// and rows persisted on earlier iterations stay persisted.
type BatchService struct {
	ML       *MLService
	Students *StudentService
}

// RunBatch turns an uploaded CSV into the enriched predictions CSV.
func (bs *BatchService) RunBatch(ctx context.Context, input io.Reader) ([]byte, error) {
	rows, err := utils.ReadCSVAsRows(input)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	log.Printf("batch %s: %d rows", batchID, len(rows))

	outputRows := make([]*utils.Row, 0, len(rows))
	for i, raw := range rows {
		typed := raw.Coerce()

		pred, err := bs.ML.PredictSingle(ctx, typed.Map())
		if err != nil {
			log.Printf("batch %s: row %d: %v", batchID, i, err)
			return nil, err
		}

		student := StudentFromRow(typed)
		if err := bs.Students.Save(&student); err != nil {
			log.Printf("batch %s: row %d: %v", batchID, i, err)
			return nil, err
		}

		// Prediction tail goes after the original columns, in this
		// exact order.
		out := typed.Clone()
		out.Set("dropout_probability", pred.DropoutProbability)
		out.Set("deservingness_score", pred.DeservingnessScore)
		out.Set("risk_tier", pred.RiskTier)
		out.Set("explanation", pred.Explanation)
		outputRows = append(outputRows, out)
	}

	var buf bytes.Buffer
	if err := utils.WriteRowsToCSV(outputRows, &buf); err != nil {
		return nil, err
	}
	log.Printf("batch %s: done, %d rows predicted", batchID, len(outputRows))
	return buf.Bytes(), nil
}
