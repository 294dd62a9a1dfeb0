package ginmw_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/apikit/pkg/validation"
	"github.com/DjordjeVuckovic/apikit/pkg/validation/ginmw"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"`
}

func (u *createUser) SetDefaults() {
	if u.Role == "" {
		u.Role = "member"
	}
}

type listQuery struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=100"`
}

func (q *listQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
}

type userParams struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

func newRouter(s validation.RequestSchema) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ginmw.ErrorHandler())

	r.POST("/users/:id", ginmw.ValidateRequest(s), func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			_ = c.Error(err)
			return
		}
		_, validated := ginmw.Validated(c)

		c.JSON(http.StatusOK, gin.H{
			"body":      string(body),
			"page":      c.Query("page"),
			"limit":     c.Query("limit"),
			"id":        c.Param("id"),
			"validated": validated,
		})
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	return r
}

func fullSchema() validation.RequestSchema {
	return validation.RequestSchema{
		Body:   validation.Erase[createUser](validation.Struct[createUser]()),
		Query:  validation.Erase[listQuery](validation.Struct[listQuery](validation.Coerce())),
		Params: validation.Erase[userParams](validation.Struct[userParams](validation.Coerce())),
	}
}

func TestValidateRequest_AppliesValidatedValues(t *testing.T) {
	r := newRouter(fullSchema())
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/users/"+strings.ToUpper(id.String())+"?limit=25", strings.NewReader(`{"name":"John","email":"john@example.com","role":"admin"}`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"body": "{\"name\":\"John\",\"email\":\"john@example.com\",\"role\":\"admin\"}",
		"page": "1",
		"limit": "25",
		"id": "`+id.String()+`",
		"validated": true
	}`, rec.Body.String())
}

func TestValidateRequest_Failure(t *testing.T) {
	r := newRouter(fullSchema())

	req := httptest.NewRequest(http.MethodPost, "/users/42?limit=500", strings.NewReader(`{"name":"John","email":"invalid"}`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"error":"validation failed"`)
	assert.Contains(t, body, `{"field":"body.email","message":"must be a valid email address"}`)
	assert.Contains(t, body, `{"field":"query.limit","message":"must be less than or equal to 100"}`)
	assert.Contains(t, body, `"field":"params"`)
	assert.Less(t, strings.Index(body, "body.email"), strings.Index(body, "query.limit"))
}

func TestValidateRequest_MalformedBody(t *testing.T) {
	r := newRouter(fullSchema())

	req := httptest.NewRequest(http.MethodPost, "/users/"+uuid.NewString(), strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"field":"body","message":"invalid JSON body"}`)
}

func TestErrorHandler_UnhandledError(t *testing.T) {
	r := newRouter(fullSchema())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
