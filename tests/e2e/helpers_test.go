package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// BASE_URL未設定ならe2eはスキップ（起動済みサーバーが前提）
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL is not set; skipping e2e")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type PartDTO struct {
	MaterialNumber    int64     `json:"material_number"`
	DrawingNumber     string    `json:"drawing_number"`
	Name              string    `json:"name"`
	InventoryQuantity int64     `json:"inventory_quantity"`
	GroupATotal       int64     `json:"group_a_total"`
	GroupBTotal       int64     `json:"group_b_total"`
	QuantityPerCarton int64     `json:"quantity_per_carton"`
	LastUpdated       time.Time `json:"last_updated"`
	ExternalID        string    `json:"external_id"`
}

type OperationLogDTO struct {
	Sequence      int64     `json:"sequence"`
	DrawingNumber string    `json:"drawing_number"`
	RecordedAt    time.Time `json:"recorded_at"`
	OperationType string    `json:"operation_type"`
	Field         string    `json:"field"`
	ValueBefore   string    `json:"value_before"`
	ValueAfter    string    `json:"value_after"`
	BatchID       string    `json:"batch_id"`
}

type BatchItemResultDTO struct {
	DrawingNumber string `json:"drawing_number"`
	NewQuantity   int64  `json:"new_quantity"`
	Error         string `json:"error"`
}

type BatchResponse struct {
	Items []BatchItemResultDTO `json:"items"`
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthLoginResponse struct {
	Token JwtAccessToken `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodePart(t *testing.T, body []byte) PartDTO {
	t.Helper()
	var v PartDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(PartDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeParts(t *testing.T, body []byte) []PartDTO {
	t.Helper()
	var v []PartDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal([]PartDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeLogs(t *testing.T, body []byte) []OperationLogDTO {
	t.Helper()
	var v []OperationLogDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal([]OperationLogDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeBatch(t *testing.T, body []byte) BatchResponse {
	t.Helper()
	var v BatchResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(BatchResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeLogin(t *testing.T, body []byte) AuthLoginResponse {
	t.Helper()
	var v AuthLoginResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(AuthLoginResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

// 衝突しない図番をテストごとに採番
func uniqueDrawingNumber(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func operatorLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := os.Getenv("OPERATOR_EMAIL")
	if email == "" {
		email = "operator@example.com"
	}
	password := os.Getenv("OPERATOR_PASSWORD")
	if password == "" {
		password = "password123"
	}

	//オペレーターでログインしてaccess_tokenを取得
	req := LoginRequest{Email: email, Password: password}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(LoginRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)

	//200OKであることを確認
	requireStatus(t, resp, http.StatusOK, body)

	//JSONを構造体に変換し、tokenが空じゃないことを確認
	login := mustDecodeLogin(t, body)
	if strings.TrimSpace(login.Token.AccessToken) == "" {
		t.Fatalf("access token is empty: body=%s", string(body))
	}

	return login.Token.AccessToken
}

// 部品を1件作って図番を返す
func createPart(t *testing.T, c *TestClient, ctx context.Context, token string, prefix string, qty int64) string {
	t.Helper()

	dn := uniqueDrawingNumber(prefix)

	payload := map[string]interface{}{
		"material_number":     1000,
		"drawing_number":      dn,
		"name":                "Test Part " + dn,
		"inventory_quantity":  qty,
		"quantity_per_carton": 10,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/parts", token, b)
	requireStatus(t, resp, http.StatusCreated, body)

	return dn
}
