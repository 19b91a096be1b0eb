package user

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
)

func foundAnalysis() *common.AnalysisResult {
	return &common.AnalysisResult{
		Intent:            enum.IntentTroubleshooting,
		FoundRelevantInfo: true,
		KbContext:         "Knowledge Item 1: How do I reset my device?\nTap it.",
	}
}

func TestAugmentHistory_ExistingSystem(t *testing.T) {
	history := []common.LlmMessage{
		{Role: enum.RoleSystem, Content: "welcome"},
		{Role: enum.RoleUser, Content: "how do I reset"},
	}
	snapshot := append([]common.LlmMessage(nil), history...)

	out := augmentHistory(history, foundAnalysis())

	if !reflect.DeepEqual(history, snapshot) {
		t.Fatal("传入的历史被修改")
	}
	if len(out) != 2 {
		t.Fatalf("不应新增消息, 实际 %d 条", len(out))
	}
	systems := 0
	for _, m := range out {
		if m.Role == enum.RoleSystem {
			systems++
		}
	}
	if systems != 1 {
		t.Errorf("期望只有1条system消息, 实际 %d", systems)
	}
	want := "welcome\n\n" + enum.KnowledgeContextHeader + "\n" + foundAnalysis().KbContext
	if out[0].Content != want {
		t.Errorf("system消息内容错误:\n%s", out[0].Content)
	}
}

func TestAugmentHistory_NoSystem(t *testing.T) {
	history := []common.LlmMessage{
		{Role: enum.RoleUser, Content: "hi"},
		{Role: enum.RoleAssistant, Content: "hello"},
		{Role: enum.RoleUser, Content: "how do I reset"},
	}
	snapshot := append([]common.LlmMessage(nil), history...)

	out := augmentHistory(history, foundAnalysis())

	if !reflect.DeepEqual(history, snapshot) {
		t.Fatal("传入的历史被修改")
	}
	if len(out) != len(history)+1 {
		t.Fatalf("期望新增1条消息, 实际 %d 条", len(out))
	}
	if out[0].Role != enum.RoleSystem || !strings.HasPrefix(out[0].Content, string(enum.SystemPromptSupportPersona)) {
		t.Errorf("第一条应为新的system消息: %+v", out[0])
	}
	if !strings.HasSuffix(out[0].Content, foundAnalysis().KbContext) {
		t.Errorf("system消息应包含知识库上下文: %s", out[0].Content)
	}
	if !reflect.DeepEqual(out[1:], history) {
		t.Error("原有消息顺序应保持不变")
	}
}

func TestAugmentHistory_NoInfo(t *testing.T) {
	history := []common.LlmMessage{{Role: enum.RoleSystem, Content: "welcome"}, {Role: enum.RoleUser, Content: "xyzzy"}}
	cases := []*common.AnalysisResult{
		nil,
		{Intent: enum.IntentUnsupported, FoundRelevantInfo: false, Message: enum.KnowledgeNotFoundMsg},
	}
	for _, a := range cases {
		out := augmentHistory(history, a)
		if !reflect.DeepEqual(out, history) {
			t.Errorf("未找到知识时历史不应变化: %+v", out)
		}
		out[0].Content = "changed"
		if history[0].Content != "welcome" {
			t.Fatal("返回值应为副本")
		}
	}
}

func TestCompose(t *testing.T) {
	fake := newFakeLlm(enum.IntentTroubleshooting, "  Tap the node.  ")
	svc := NewResponseService(quietLog(), fake, enum.ModelMedium)
	history := []common.LlmMessage{{Role: enum.RoleSystem, Content: "welcome"}, {Role: enum.RoleUser, Content: "reset"}}
	snapshot := append([]common.LlmMessage(nil), history...)

	answer, err := svc.Compose(context.Background(), history, foundAnalysis())
	if err != nil {
		t.Fatalf("Compose失败: %v", err)
	}
	// 原样返回
	if answer != "  Tap the node.  " {
		t.Errorf("unexpected answer: %q", answer)
	}
	if !reflect.DeepEqual(history, snapshot) {
		t.Error("Compose修改了传入的历史")
	}

	call, ok := fake.lastCall(enum.TraceGenerateResponse)
	if !ok {
		t.Fatal("未调用生成接口")
	}
	if call.Schema != nil || call.Instructions != enum.SystemPromptGenerateResponse || call.Size != enum.ModelMedium {
		t.Errorf("调用参数错误: %+v", call)
	}
	if !strings.Contains(call.Messages[0].Content, enum.KnowledgeContextHeader) {
		t.Errorf("发送的历史未注入知识库上下文: %+v", call.Messages[0])
	}
}

func TestCompose_Error(t *testing.T) {
	fake := newFakeLlm(enum.IntentTroubleshooting, "")
	boom := errors.New("backend down")
	fake.errs[enum.TraceGenerateResponse] = boom

	svc := NewResponseService(quietLog(), fake, enum.ModelMedium)
	if _, err := svc.Compose(context.Background(), nil, nil); !errors.Is(err, boom) {
		t.Errorf("错误应原样向上传递, 实际: %v", err)
	}
}
