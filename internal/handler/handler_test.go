package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"employees/internal/auth"
	"employees/internal/employee"
	"employees/internal/service"
)

const (
	testIssuer = "employee-api-test"
	testKey    = "test-signing-key"
)

type HandlerSuite struct {
	suite.Suite
	router *gin.Engine

	adminToken    string
	employeeToken string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	repo := employee.NewMemoryRepository()
	hash, err := auth.HashPassword("password123")
	s.Require().NoError(err)
	s.Require().NoError(repo.InsertMany(context.Background(), []employee.Employee{
		{ID: "1", Name: "Eve Employee", Age: 20, Role: employee.RoleEmployee, Email: "eve@example.com", PasswordHash: hash},
		{ID: "2", Name: "Ada Admin", Age: 30, Role: employee.RoleAdmin, Email: "ada@example.com", PasswordHash: hash},
	}))

	svc := service.New(repo, testIssuer, testKey, time.Hour)
	s.router = gin.New()
	New(svc).Register(s.router, auth.Context(testKey, testIssuer))

	s.adminToken = s.issueToken("2", employee.RoleAdmin, "Ada Admin")
	s.employeeToken = s.issueToken("1", employee.RoleEmployee, "Eve Employee")
}

func (s *HandlerSuite) issueToken(id, role, name string) string {
	token, _, err := auth.Issue(auth.Principal{ID: id, Role: role, Name: name}, testIssuer, testKey, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *HandlerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestLoginAndList() {
	w := s.do(http.MethodPost, "/v1/login", "", gin.H{"email": "ada@example.com", "password": "password123"})
	s.Require().Equal(http.StatusOK, w.Code)

	var login service.LoginResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &login))
	s.NotEmpty(login.Token)
	s.Equal("Ada Admin", login.User.Name)

	w = s.do(http.MethodGet, "/v1/employees?sortField=age&sortDir=DESC", login.Token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var page employee.Page
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	s.Equal(2, page.Total)
	s.Equal("2", page.Items[0].ID)
}

func (s *HandlerSuite) TestLoginRejectsBadCredentials() {
	w := s.do(http.MethodPost, "/v1/login", "", gin.H{"email": "ada@example.com", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestAnonymousListIsUnauthorized() {
	w := s.do(http.MethodGet, "/v1/employees", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/v1/employees", "garbage-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code, "malformed token resolves to anonymous")
}

func (s *HandlerSuite) TestEmployeeCannotCreate() {
	w := s.do(http.MethodPost, "/v1/employees", s.employeeToken, gin.H{
		"name": "New", "age": 20, "role": "employee",
		"email": "new@example.com", "password": "x",
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerSuite) TestCreateConflictMapsTo409() {
	w := s.do(http.MethodPost, "/v1/employees", s.adminToken, gin.H{
		"name": "Dup", "age": 20, "role": "employee",
		"email": "eve@example.com", "password": "x",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerSuite) TestGetOneStatuses() {
	w := s.do(http.MethodGet, "/v1/employees/1", s.employeeToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/employees/2", s.employeeToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/v1/employees/missing", s.adminToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestMe() {
	w := s.do(http.MethodGet, "/v1/employees/me", s.employeeToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var e employee.Employee
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &e))
	s.Equal("1", e.ID)
	s.NotContains(w.Body.String(), "password")
}

func (s *HandlerSuite) TestUpdateStatuses() {
	w := s.do(http.MethodPatch, "/v1/employees/1", s.employeeToken, gin.H{"name": "Eve Renamed"})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPatch, "/v1/employees/1", s.employeeToken, gin.H{"role": "admin"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, "/v1/employees/missing", s.adminToken, gin.H{"name": "X"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestDeleteStatuses() {
	w := s.do(http.MethodDelete, "/v1/employees/1", s.employeeToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, "/v1/employees/1", s.adminToken, nil)
	s.Equal(http.StatusNoContent, w.Code)

	// idempotent once authorized
	w = s.do(http.MethodDelete, "/v1/employees/1", s.adminToken, nil)
	s.Equal(http.StatusNoContent, w.Code)
}
