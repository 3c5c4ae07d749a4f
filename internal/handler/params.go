package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formValue returns nil when the field was not sent at all.
func formValue(form *multipart.Form, name string) *string {
	vals, ok := form.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func formBool(form *multipart.Form, name string) bool {
	v := formValue(form, name)
	if v == nil {
		return false
	}
	b, _ := strconv.ParseBool(*v)
	return b
}

func queryBool(c echo.Context, name string) bool {
	b, _ := strconv.ParseBool(c.QueryParam(name))
	return b
}

func formFile(c echo.Context, name string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(name)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	return fh, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
