package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

// =====================
// 操作ログ
// =====================

// 登録・入庫・出庫の順でログが残る（Sequence昇順）
func TestLogs_RecordedInOrder(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token := operatorLogin(t, c, ctx)

	dn := createPart(t, c, ctx, token, "E2E-LOG", 10)

	b, _ := json.Marshal(map[string]int64{"amount": 5})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/parts/"+dn+"/receive", token, b)
	requireStatus(t, resp, http.StatusOK, body)

	b, _ = json.Marshal(map[string]int64{"amount": 3})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/parts/"+dn+"/issue", token, b)
	requireStatus(t, resp, http.StatusOK, body)

	//ログ照会は公開
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/parts/"+dn+"/logs", "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	logs := mustDecodeLogs(t, body)
	if len(logs) != 3 {
		t.Fatalf("logs=%d want=3 body=%s", len(logs), string(body))
	}

	if logs[0].OperationType != "add" {
		t.Fatalf("logs[0].operation_type=%s want=add", logs[0].OperationType)
	}
	if logs[1].OperationType != "in" || logs[1].ValueBefore != "10" || logs[1].ValueAfter != "15" {
		t.Fatalf("logs[1] unexpected: %+v", logs[1])
	}
	if logs[2].OperationType != "out" || logs[2].ValueBefore != "15" || logs[2].ValueAfter != "12" {
		t.Fatalf("logs[2] unexpected: %+v", logs[2])
	}

	for i := 1; i < len(logs); i++ {
		if logs[i].Sequence <= logs[i-1].Sequence {
			t.Fatalf("sequence not ascending: %d then %d", logs[i-1].Sequence, logs[i].Sequence)
		}
	}
}

// 編集のbefore/afterが残る
func TestLogs_EditRecordsBeforeAfter(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token := operatorLogin(t, c, ctx)

	dn := createPart(t, c, ctx, token, "E2E-LOGEDIT", 2)

	b, _ := json.Marshal(map[string]string{"field": "quantity_per_carton", "value": "25"})
	resp, body := c.doJSON(ctx, t, http.MethodPut, "/parts/"+dn, token, b)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/parts/"+dn+"/logs", "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	logs := mustDecodeLogs(t, body)
	last := logs[len(logs)-1]
	if last.OperationType != "edit" || last.Field != "quantity_per_carton" {
		t.Fatalf("last log unexpected: %+v", last)
	}
	if last.ValueBefore != "10" || last.ValueAfter != "25" {
		t.Fatalf("before/after=%s/%s want=10/25", last.ValueBefore, last.ValueAfter)
	}
}

// 部品を削除してもログは残る
func TestLogs_SurvivePartDeletion(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token := operatorLogin(t, c, ctx)

	dn := createPart(t, c, ctx, token, "E2E-LOGDEL", 5)

	resp, body := c.doJSON(ctx, t, http.MethodDelete, "/parts/"+dn, token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/parts/"+dn+"/logs", "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	logs := mustDecodeLogs(t, body)
	if len(logs) != 2 {
		t.Fatalf("logs=%d want=2 body=%s", len(logs), string(body))
	}
	last := logs[len(logs)-1]
	if last.OperationType != "delete" || last.ValueBefore != "5" || last.ValueAfter != "" {
		t.Fatalf("delete log unexpected: %+v", last)
	}
}

// ログ破棄は明示操作（要認証）
func TestLogs_Purge(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token := operatorLogin(t, c, ctx)

	dn := createPart(t, c, ctx, token, "E2E-PURGE", 5)

	//未認証 => 401
	resp, body := c.doJSON(ctx, t, http.MethodDelete, "/parts/"+dn+"/logs", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	resp, body = c.doJSON(ctx, t, http.MethodDelete, "/parts/"+dn+"/logs", token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/parts/"+dn+"/logs", "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	logs := mustDecodeLogs(t, body)
	if len(logs) != 0 {
		t.Fatalf("logs=%d want=0 after purge", len(logs))
	}
}

// 一括操作のログは同じbatch_idで束ねられる
func TestLogs_BatchShareBatchID(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token := operatorLogin(t, c, ctx)

	dn1 := createPart(t, c, ctx, token, "E2E-BID1", 10)
	dn2 := createPart(t, c, ctx, token, "E2E-BID2", 10)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"drawing_number": dn1, "amount": 1},
			{"drawing_number": dn2, "amount": 2},
		},
	}
	b, _ := json.Marshal(payload)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/parts/batch/receive", token, b)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/parts/"+dn1+"/logs", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	logs1 := mustDecodeLogs(t, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/parts/"+dn2+"/logs", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	logs2 := mustDecodeLogs(t, body)

	batchID1 := logs1[len(logs1)-1].BatchID
	batchID2 := logs2[len(logs2)-1].BatchID

	if batchID1 == "" {
		t.Fatalf("batch_id is empty: %+v", logs1[len(logs1)-1])
	}
	if batchID1 != batchID2 {
		t.Fatalf("batch_id mismatch: %s vs %s", batchID1, batchID2)
	}
}
