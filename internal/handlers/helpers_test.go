package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Keoroanthony/go-crm/internal/db/dbtest"
	"github.com/Keoroanthony/go-crm/internal/handlers"
	"github.com/Keoroanthony/go-crm/internal/store"
)

func setupTestRouter(t *testing.T, notifier handlers.OrderNotifier) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB := dbtest.New(t)
	router := handlers.NewRouter(handlers.RouterConfig{
		Resolver:      handlers.NewResolver(store.New(testDB), notifier),
		SessionSecret: "test-secret-key",
	})
	return router, testDB
}

func createGraphQLRequest(operation string, variables interface{}) *http.Request {
	body := map[string]interface{}{"operation": operation}
	if variables != nil {
		body["variables"] = variables
	}
	reqBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func performOperation(router *gin.Engine, operation string, variables interface{}) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, createGraphQLRequest(operation, variables))
	return recorder
}

// execute runs operation and decodes its data field into T.
func execute[T any](t *testing.T, router *gin.Engine, operation string, variables interface{}) T {
	t.Helper()

	recorder := performOperation(router, operation, variables)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []handlers.GraphQLError    `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Empty(t, response.Errors)

	var result T
	require.NoError(t, json.Unmarshal(response.Data[operation], &result))
	return result
}

// executeError runs operation and returns the first reported error message.
func executeError(t *testing.T, router *gin.Engine, operation string, variables interface{}) string {
	t.Helper()

	recorder := performOperation(router, operation, variables)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response handlers.GraphQLResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.NotEmpty(t, response.Errors)
	return response.Errors[0].Message
}
