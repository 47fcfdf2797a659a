package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

// =====================
// ログイン
// =====================

func TestAuth_Login_Success(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	token := operatorLogin(t, c, ctx)
	if token == "" {
		t.Fatal("token is empty")
	}
}

// 存在しないemail => 401
func TestAuth_Login_UnknownEmail(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	b, _ := json.Marshal(LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	e := mustDecodeError(t, body)
	if e.Error != "invalid credentials" {
		t.Fatalf("error=%q want=invalid credentials", e.Error)
	}
}

// パスワード違い => 401
func TestAuth_Login_WrongPassword(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	b, _ := json.Marshal(LoginRequest{Email: "operator@example.com", Password: "wrong-password"})

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}

// 必須欠け => 400
func TestAuth_Login_MissingFields(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	b, _ := json.Marshal(LoginRequest{Email: "", Password: ""})

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusBadRequest, body)
}

// 壊れたtoken => 401
func TestAuth_BrokenToken_Rejected(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	b, _ := json.Marshal(map[string]int64{"amount": 1})

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/parts/ANY/receive", "broken.token.value", b)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
