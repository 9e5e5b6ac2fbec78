package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"deserve-iq/models"
	"deserve-iq/utils"
)

var numericValueRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// MLService issues prediction requests against the external scoring
// model. One POST per student; the response fields are read tolerantly
// because the model's serializer is not consistent about them.
type MLService struct {
	client     *http.Client
	predictURL string
}

// NewMLService joins base URL and endpoint path so that exactly one "/"
// separates them, whatever the configuration has.
func NewMLService(baseURL, endpoint string, timeout time.Duration) *MLService {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return &MLService{
		client:     &http.Client{Timeout: timeout},
		predictURL: baseURL + endpoint,
	}
}

// PredictURL exposes the composed endpoint, mainly for logging.
func (s *MLService) PredictURL() string {
	return s.predictURL
}

// PredictSingle posts one payload and normalizes the answer. Transport
// failures, non-2xx statuses, empty and unreadable bodies all wrap
// utils.ErrUpstream.
func (s *MLService) PredictSingle(ctx context.Context, payload map[string]interface{}) (models.Prediction, error) {
	var pred models.Prediction

	body, err := json.Marshal(payload)
	if err != nil {
		return pred, errors.Wrapf(utils.ErrUpstream, "failed to encode payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.predictURL, bytes.NewReader(body))
	if err != nil {
		return pred, errors.Wrapf(utils.ErrUpstream, "failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return pred, errors.Wrapf(utils.ErrUpstream, "failed to call ml service: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return pred, errors.Wrapf(utils.ErrUpstream, "failed to read ml response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pred, errors.Wrapf(utils.ErrUpstream, "ml api returned non-OK: %d", resp.StatusCode)
	}
	if len(data) == 0 {
		return pred, errors.Wrap(utils.ErrUpstream, "ml api returned an empty body")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return pred, errors.Wrapf(utils.ErrUpstream, "ml api returned unreadable JSON: %v", err)
	}

	pred.DropoutProbability = numberOrZero(raw["dropout_probability"])
	pred.DeservingnessScore = numberOrZero(raw["deservingness_score"])
	pred.RiskTier = tierOrUnknown(raw["risk_tier"])
	pred.Explanation = NormalizeExplanation(raw["explanation"])
	return pred, nil
}

func numberOrZero(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func tierOrUnknown(v interface{}) string {
	if v == nil {
		return "UNKNOWN"
	}
	return fmt.Sprint(v)
}

// NormalizeExplanation canonicalizes the polymorphic explanation field to
// a compact JSON object string. The model returns it as a JSON object, a
// string of JSON, or a string in the "{k=v, k=v}" map-dump form; anything
// unrecognizable collapses to "{}".
func NormalizeExplanation(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "{}"
	case map[string]interface{}:
		b, err := json.Marshal(t)
		if err != nil {
			return "{}"
		}
		return string(b)
	case string:
		return stringMapToJSON(t)
	default:
		return "{}"
	}
}

// stringMapToJSON passes compacted JSON objects through and transcodes
// the "{a=1, b=low}" form into {"a":1,"b":"low"}, preserving key order.
// The split rules drop parts whose value contains "=" or ","; that loss
// matches the upstream dump format, which cannot escape them either.
func stringMapToJSON(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(trimmed)); err == nil {
			return buf.String()
		}
	}

	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, part := range strings.Split(s, ",") {
		if !strings.Contains(part, "=") {
			continue
		}
		kv := strings.Split(part, "=")
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])

		if !first {
			b.WriteByte(',')
		}
		first = false

		b.WriteString(strconv.Quote(key))
		b.WriteByte(':')
		if numericValueRe.MatchString(value) {
			b.WriteString(value)
		} else {
			b.WriteString(strconv.Quote(value))
		}
	}
	b.WriteByte('}')
	return b.String()
}
