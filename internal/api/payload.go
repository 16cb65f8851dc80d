package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"littlelemon/internal/apperror"
	"littlelemon/internal/utils"
)

const maxMemory = 1 << 20

var errMalformedBody = apperror.New(apperror.KindBadRequest, "malformed request body")

// decodePayload reads a JSON object or a form body into a flat map. JSON
// numbers are kept as json.Number so ids and prices keep their text.
func decodePayload(r *http.Request) (map[string]any, error) {
	payload := make(map[string]any)
	if r.Body == nil {
		return payload, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return nil, apperror.Wrap(errMalformedBody, "JSON parse error - %s", err.Error())
		}
		return payload, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, apperror.Wrap(errMalformedBody, "malformed form body")
		}

	default:
		if err := r.ParseForm(); err != nil {
			return nil, apperror.Wrap(errMalformedBody, "malformed form body")
		}
	}

	for key, values := range r.PostForm {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload, nil
}

func stringField(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	return utils.Stringify(v)
}

// optionalString distinguishes a missing key from an empty value.
func optionalString(payload map[string]any, key string) *string {
	v, ok := payload[key]
	if !ok || v == nil {
		return nil
	}
	return utils.StrPtr(utils.Stringify(v))
}
