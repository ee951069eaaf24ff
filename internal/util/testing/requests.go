package test_utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Body is sent as is when it is a string, []byte or io.Reader, otherwise it is JSON-encoded
type RequestOptions struct {
	Method         string
	URL            string
	AuthToken      string
	Body           any
	Headers        map[string]string
	ExpectedStatus int
}

type TestResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	t.Helper()

	var body io.Reader = http.NoBody
	isJSON := false

	switch value := options.Body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(value)
		isJSON = true
	case []byte:
		body = bytes.NewBuffer(value)
	case io.Reader:
		body = value
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		body = bytes.NewBuffer(encoded)
		isJSON = true
	}

	req, err := http.NewRequest(options.Method, options.URL, body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}
	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if options.ExpectedStatus != 0 {
		assert.Equal(t, options.ExpectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	}

	return &TestResponse{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
		Headers:    w.Header(),
	}
}

func MakeGetRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	target any,
) *TestResponse {
	t.Helper()

	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	unmarshal(t, resp, target)

	return resp
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	target any,
) *TestResponse {
	t.Helper()

	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, resp, target)

	return resp
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	target any,
) *TestResponse {
	t.Helper()

	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, resp, target)

	return resp
}

func MakeDeleteRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func unmarshal(t *testing.T, resp *TestResponse, target any) {
	t.Helper()

	if target == nil {
		return
	}

	if err := json.Unmarshal(resp.Body, target); err != nil {
		t.Fatalf("failed to unmarshal response %s: %v", string(resp.Body), err)
	}
}
