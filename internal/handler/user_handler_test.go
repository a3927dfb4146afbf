package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/service"
)

type fakeUserService struct {
	registerErr error
	loginErr    error
	loginResp   *domain.LoginResponse
}

func (f *fakeUserService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.User{ID: "u1", Name: req.Name, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeUserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func userTestRouter(svc service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(svc)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterCreated(t *testing.T) {
	r := userTestRouter(&fakeUserService{})

	w := postJSON(t, r, "/register", domain.RegisterRequest{
		Name:     "Ama Mensah",
		Email:    "ama@example.com",
		Password: "hunter22",
		Phone:    "0244000000",
		Role:     "seller",
		Location: "Kumasi",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	r := userTestRouter(&fakeUserService{})

	cases := map[string]domain.RegisterRequest{
		"short name": {
			Name: "Ama", Email: "ama@example.com", Password: "hunter22",
			Phone: "0244000000", Role: "seller", Location: "Kumasi",
		},
		"bad role": {
			Name: "Ama Mensah", Email: "ama@example.com", Password: "hunter22",
			Phone: "0244000000", Role: "admin", Location: "Kumasi",
		},
		"short password": {
			Name: "Ama Mensah", Email: "ama@example.com", Password: "abc",
			Phone: "0244000000", Role: "seller", Location: "Kumasi",
		},
		"missing location": {
			Name: "Ama Mensah", Email: "ama@example.com", Password: "hunter22",
			Phone: "0244000000", Role: "seller",
		},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			w := postJSON(t, r, "/register", req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	r := userTestRouter(&fakeUserService{loginResp: &domain.LoginResponse{
		Token: "signed-token",
		User:  domain.UserResponse{ID: "u1", Name: "Ama Mensah"},
	}})

	w := postJSON(t, r, "/login", domain.LoginRequest{
		Email:    "ama@example.com",
		Password: "hunter22",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Message domain.LoginResponse `json:"Message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Message.Token != "signed-token" {
		t.Errorf("token = %q", body.Message.Token)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := userTestRouter(&fakeUserService{loginErr: service.ErrInvalidCredentials})

	w := postJSON(t, r, "/login", domain.LoginRequest{
		Email:    "ama@example.com",
		Password: "wrong-password",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
