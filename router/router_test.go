package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"gitee.com/taoJie_1/support-chat/dao"
	"gitee.com/taoJie_1/support-chat/internal/knowledge"
	"gitee.com/taoJie_1/support-chat/internal/llm"
	"gitee.com/taoJie_1/support-chat/model/config"
	"gitee.com/taoJie_1/support-chat/model/dto"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"gitee.com/taoJie_1/support-chat/service"
	"gitee.com/taoJie_1/support-chat/service/user"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type stubLlm struct{}

func (stubLlm) Complete(ctx context.Context, call llm.Call) (*llm.Result, error) {
	if call.Name == enum.TraceDetermineIntent {
		return &llm.Result{Content: `{"reasoning":"asks about coverage","intent":"warranty"}`, TraceID: "span-1"}, nil
	}
	return &llm.Result{Content: "Your washer is covered for 2 years.", TraceID: "span-2"}, nil
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`
}

func newTestServer(t *testing.T, mcpHandler http.Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d, err := sqlx.Open(string(enum.SQLITE), filepath.Join(t.TempDir(), "router.db"))
	if err != nil {
		t.Fatalf("打开sqlite失败: %v", err)
	}
	d.SetMaxOpenConns(1)
	t.Cleanup(func() { d.Close() })
	if err := dao.AutoMigrate(d, enum.SQLITE); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	service.Service.SetUserServiceGroup(user.NewServiceGroup(user.Deps{
		Log:       log,
		Store:     dao.NewChatDb(d),
		Knowledge: knowledge.Default(),
		Llm:       stubLlm{},
		Ai:        config.Ai{ClassifySize: "small", RespondSize: "medium", MaxContentLength: 4000},
	}))

	engine := gin.New()
	Start(engine, mcpHandler)
	return engine
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s 响应不是JSON: %s", method, path, w.Body.String())
	}
	return w.Code, env
}

func TestChatRoutes_Conversation(t *testing.T) {
	h := newTestServer(t, nil)

	code, env := do(t, h, http.MethodPost, "/api/chats", "")
	if code != http.StatusOK || env.Code != 0 {
		t.Fatalf("创建会话失败: %d %+v", code, env)
	}
	var session dto.ChatSession
	if err := json.Unmarshal(env.Data, &session); err != nil || session.ID == "" {
		t.Fatalf("会话数据无效: %s", env.Data)
	}

	code, env = do(t, h, http.MethodPost, "/api/chats/"+session.ID+"/messages", `{"content":"Is my washer under warranty?"}`)
	if code != http.StatusOK {
		t.Fatalf("发送消息失败: %d %s", code, env.Msg)
	}
	var res dto.ChatMessageResponse
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("解析回复失败: %v", err)
	}
	if res.Message.Role != string(enum.RoleUser) || res.Message.Content != "Is my washer under warranty?" {
		t.Errorf("用户消息错误: %+v", res.Message)
	}
	if res.Response.Role != string(enum.RoleAssistant) || res.Response.Content != "Your washer is covered for 2 years." {
		t.Errorf("助手回复错误: %+v", res.Response)
	}

	code, env = do(t, h, http.MethodGet, "/api/chats/"+session.ID+"/messages", "")
	if code != http.StatusOK {
		t.Fatalf("获取消息失败: %d", code)
	}
	var history dto.ChatHistory
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("解析历史失败: %v", err)
	}
	roles := make([]string, 0, len(history.Messages))
	for _, m := range history.Messages {
		roles = append(roles, m.Role)
	}
	if strings.Join(roles, ",") != "system,user,assistant" {
		t.Errorf("消息顺序错误: %v", roles)
	}

	if code, _ = do(t, h, http.MethodDelete, "/api/chats/"+session.ID, ""); code != http.StatusOK {
		t.Fatalf("删除会话失败: %d", code)
	}
	if code, _ = do(t, h, http.MethodGet, "/api/chats/"+session.ID, ""); code != http.StatusNotFound {
		t.Errorf("删除后应返回404, 实际: %d", code)
	}
}

func TestChatRoutes_Errors(t *testing.T) {
	h := newTestServer(t, nil)

	_, env := do(t, h, http.MethodPost, "/api/chats", `{"metadata":{"channel":"web"}}`)
	var session dto.ChatSession
	_ = json.Unmarshal(env.Data, &session)
	if session.Metadata["channel"] != "web" {
		t.Errorf("metadata未保存: %+v", session.Metadata)
	}

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"空白内容", http.MethodPost, "/api/chats/" + session.ID + "/messages", `{"content":"   "}`, http.StatusBadRequest},
		{"会话不存在", http.MethodPost, "/api/chats/missing/messages", `{"content":"hi"}`, http.StatusNotFound},
		{"会话不存在且内容为空", http.MethodPost, "/api/chats/missing/messages", `{"content":""}`, http.StatusNotFound},
		{"查询不存在的会话", http.MethodGet, "/api/chats/missing", "", http.StatusNotFound},
		{"历史不存在的会话", http.MethodGet, "/api/chats/missing/messages", "", http.StatusNotFound},
		{"删除不存在的会话", http.MethodDelete, "/api/chats/missing", "", http.StatusNotFound},
		{"未知路由", http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, env := do(t, h, c.method, c.path, c.body)
			if code != c.status {
				t.Errorf("期望 %d, 实际 %d (%s)", c.status, code, env.Msg)
			}
			if env.Code == 0 {
				t.Errorf("失败响应的code不应为0")
			}
		})
	}
}

func TestKnowledgeSearchRoute(t *testing.T) {
	h := newTestServer(t, nil)

	code, env := do(t, h, http.MethodGet, "/api/knowledge/search?q=return+policy&intent=return_policy", "")
	if code != http.StatusOK {
		t.Fatalf("检索失败: %d %s", code, env.Msg)
	}
	var res dto.KnowledgeSearchResponse
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("解析检索结果失败: %v", err)
	}
	if res.Intent != string(enum.IntentReturnPolicy) || len(res.Items) == 0 {
		t.Fatalf("检索结果错误: %+v", res)
	}
	for _, it := range res.Items {
		if it.Category != enum.CategoryPolicy {
			t.Errorf("return_policy 只应返回 policy 分类, 实际: %s", it.Category)
		}
	}

	if code, _ = do(t, h, http.MethodGet, "/api/knowledge/search?q=x&intent=errors", ""); code != http.StatusBadRequest {
		t.Errorf("未知意图应返回400, 实际: %d", code)
	}

	_, env = do(t, h, http.MethodGet, "/api/knowledge/search?q=zzzz", "")
	_ = json.Unmarshal(env.Data, &res)
	if res.Intent != string(enum.IntentUnsupported) || res.Items == nil || len(res.Items) != 0 {
		t.Errorf("无匹配时应返回空列表: %+v", res)
	}
}

func TestMcpMount(t *testing.T) {
	var hit bool
	h := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"data":null,"msg":"mcp"}`))
	}))

	code, env := do(t, h, http.MethodPost, "/mcp", `{}`)
	if !hit || code != http.StatusOK || env.Msg != "mcp" {
		t.Errorf("MCP路由未挂载: hit=%v code=%d", hit, code)
	}
}
