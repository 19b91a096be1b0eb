package utils

import (
	"testing"
	"time"
)

func TestGetTTLWithJitter(t *testing.T) {
	if GetTTLWithJitter(0) != 0 {
		t.Error("非正TTL应返回0")
	}
	// 小于10秒时没有抖动
	if got := GetTTLWithJitter(5); got != 5*time.Second {
		t.Errorf("期望5s, 实际 %v", got)
	}
	for i := 0; i < 20; i++ {
		got := GetTTLWithJitter(3600)
		if got < 3600*time.Second || got >= 3960*time.Second {
			t.Fatalf("抖动超出范围: %v", got)
		}
	}
}

func TestParseDateFromLogFileName(t *testing.T) {
	loc := time.UTC
	d, ok := ParseDateFromLogFileName("gin.log.2025-10-28", loc)
	if !ok || d.Format("2006-01-02") != "2025-10-28" {
		t.Errorf("解析失败: %v %v", d, ok)
	}
	if _, ok := ParseDateFromLogFileName("gin.log", loc); ok {
		t.Error("无日期后缀不应解析成功")
	}
}

func TestMilliFormat(t *testing.T) {
	got := MilliFormat(int64(1700000000123), time.UTC)
	if got != "2023-11-14T22:13:20.123Z" {
		t.Errorf("unexpected: %s", got)
	}
}
