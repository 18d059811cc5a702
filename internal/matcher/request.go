package matcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const contentType = "application/json"

// errorBody is the structured payload the service attaches to non-success
// statuses.
type errorBody struct {
	Detail string `json:"detail,omitempty"`
}

// exchange performs the request and maps its outcome onto the error taxonomy.
// Exactly one attempt is made. When target is non-nil the success body is
// decoded into it; an undecodable success body is a ServerError.
func (c *Client) exchange(req *http.Request, target any) error {
	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("non-success status", zap.String("status", resp.Status))
		return statusError(resp.StatusCode, body)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &ServerError{Detail: "malformed response from the service"}
	}

	return nil
}

// statusError converts a non-success response into a typed error. The body is
// consulted for a detail message when present.
func statusError(status int, body []byte) error {
	detail := extractDetail(body)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Detail: detail}
	case status >= 400 && status < 500 && detail != "":
		return &ValidationError{Detail: detail}
	default:
		return &ServerError{Detail: detail}
	}
}

func extractDetail(body []byte) string {
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}

	return strings.TrimSpace(e.Detail)
}

// errorDetail returns the detail carried by a typed service error, if any.
func errorDetail(err error) string {
	switch typed := err.(type) {
	case *ValidationError:
		return typed.Detail
	case *AuthError:
		return typed.Detail
	case *ServerError:
		return typed.Detail
	default:
		return ""
	}
}

func (c *Client) setHeaders(req *http.Request, token string) *http.Request {
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("User-Agent", c.UserAgent)

	return req
}

// postMultipart sends the fields and an optional file as a multipart form and
// decodes the JSON response into target.
func (c *Client) postMultipart(path string, file *FileAttachment, fields map[string]string, target any) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	for key, val := range fields {
		field, err := w.CreateFormField(key)
		if err != nil {
			return err
		}

		if _, err = io.Copy(field, strings.NewReader(val)); err != nil {
			return err
		}
	}

	if file != nil {
		part, err := w.CreatePart(fileHeader(file))
		if err != nil {
			return err
		}

		if _, err = part.Write(file.Content); err != nil {
			return err
		}
	}
	w.Close()

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.APIURL+path, &b)
	if err != nil {
		return err
	}

	req = c.setHeaders(req, "")
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.exchange(req, target)
}

// fileHeader builds the part header carrying the filename and content type of
// the uploaded file.
func fileHeader(file *FileAttachment) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.Filename))
	if file.ContentType != "" {
		h.Set("Content-Type", file.ContentType)
	}

	return h
}

// postForm sends a urlencoded body and decodes the JSON response into target.
func (c *Client) postForm(path string, data url.Values, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.APIURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}

	req = c.setHeaders(req, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.exchange(req, target)
}

// postQuery sends a POST whose parameters travel in the query string.
func (c *Client) postQuery(path string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.APIURL+path, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req, "")
	req.URL.RawQuery = q.Encode()

	return c.exchange(req, target)
}

// getJSON performs a GET and decodes the JSON response into target. The token
// is attached as a bearer header when non-empty.
func (c *Client) getJSON(path string, token string, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req, token)
	req.Header.Set("Content-Type", contentType)

	return c.exchange(req, target)
}
