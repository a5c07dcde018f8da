package callable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// MaxRequestBytes bounds the size of a callable request body.
const MaxRequestBytes = 10 << 20

var (
	// ErrMethodNotAllowed is returned when the request is not a POST.
	ErrMethodNotAllowed = errors.New("callable requests must use POST")
	// ErrBadContentType is returned when the body is not JSON.
	ErrBadContentType = errors.New("callable requests must be application/json")
	// ErrMissingData is returned when the body has no "data" field.
	ErrMissingData = errors.New("callable request body must contain a data field")
	// ErrRequestTooLarge is returned when the body exceeds MaxRequestBytes.
	ErrRequestTooLarge = fmt.Errorf("callable request body must not exceed %d bytes", MaxRequestBytes)
	// ErrTrailingData is returned when the body holds more than one JSON value.
	ErrTrailingData = errors.New("callable request body must hold a single JSON object")
)

// DecodeRequest validates the callable envelope and returns the raw "data" value.
//
// A literal null is a valid payload and is returned as "null".
func DecodeRequest(r *http.Request) (json.RawMessage, error) {
	if r.Method != http.MethodPost {
		return nil, ErrMethodNotAllowed
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, ErrBadContentType
	}

	if r.Body == nil {
		return nil, ErrMissingData
	}

	// one extra byte tells an oversized body from one exactly at the limit
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxRequestBytes {
		return nil, ErrRequestTooLarge
	}

	dec := json.NewDecoder(bytes.NewReader(body))

	var envelope map[string]json.RawMessage
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	data, ok := envelope["data"]
	if !ok {
		return nil, ErrMissingData
	}

	return data, nil
}
