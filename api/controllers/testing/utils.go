package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"

	"github.com/gin-gonic/gin"
)

// PerformRequest Helper for performing requests in tests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// UploadedFile describes a file part for multipart test requests.
type UploadedFile struct {
	Field       string
	Name        string
	ContentType string
	Content     []byte
}

// PerformMultipartRequest Helper for performing multipart form requests,
// optionally with one attached file.
func PerformMultipartRequest(router *gin.Engine, method, path string, fields map[string]string, file *UploadedFile) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			panic("failed to write form field: " + err.Error())
		}
	}
	if file != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Name))
		header.Set("Content-Type", file.ContentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			panic("failed to create file part: " + err.Error())
		}
		if _, err := part.Write(file.Content); err != nil {
			panic("failed to write file part: " + err.Error())
		}
	}
	if err := writer.Close(); err != nil {
		panic("failed to close multipart writer: " + err.Error())
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}
