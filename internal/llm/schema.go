package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

var ErrSchemaViolation = errors.New("LLM输出不满足约定结构")

// OutputSchema 结构化输出的约束
type OutputSchema struct {
	Name     string
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

// NewOutputSchema 由类型T推导JSON Schema, patch 可对推导结果做进一步限制(如枚举)
func NewOutputSchema[T any](name string, patch func(*jsonschema.Schema)) (*OutputSchema, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("生成JSON Schema失败: %w", err)
	}
	// 不允许额外字段
	schema.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
	if patch != nil {
		patch(schema)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("解析JSON Schema失败: %w", err)
	}
	return &OutputSchema{Name: name, schema: schema, resolved: resolved}, nil
}

// MustOutputSchema 同 NewOutputSchema, 失败时panic, 用于包级变量
func MustOutputSchema[T any](name string, patch func(*jsonschema.Schema)) *OutputSchema {
	s, err := NewOutputSchema[T](name, patch)
	if err != nil {
		panic(err)
	}
	return s
}

// Check 去除思考标签及代码块包裹后校验, 返回规范化的JSON文本
func (o *OutputSchema) Check(raw string) (string, error) {
	text := stripFence(filterContent(raw))

	var instance any
	if err := json.Unmarshal([]byte(text), &instance); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := o.resolved.Validate(instance); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return text, nil
}

// Decode 校验后解码到v
func (o *OutputSchema) Decode(raw string, v any) error {
	text, err := o.Check(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
