package oss

import (
	"testing"

	"gitee.com/taoJie_1/support-chat/model/config"
)

func TestBuildURL(t *testing.T) {
	cases := []struct {
		cfg  config.Oss
		key  string
		want string
	}{
		{config.Oss{CdnDomain: "https://cdn.example.com/"}, "/transcripts/a.json", "https://cdn.example.com/transcripts/a.json"},
		{config.Oss{CdnDomain: "https://cdn.example.com/base"}, "a.json", "https://cdn.example.com/base/a.json"},
		{config.Oss{CdnDomain: "cdn.example.com"}, "a.json", "cdn.example.com/a.json"},
		{config.Oss{Bucket: "b", Endpoint: "oss-cn-hangzhou.aliyuncs.com"}, "a.json", "https://b.oss-cn-hangzhou.aliyuncs.com/a.json"},
	}
	for _, c := range cases {
		if got := buildURL(c.cfg, c.key); got != c.want {
			t.Errorf("buildURL(%+v, %s) = %s, 期望 %s", c.cfg, c.key, got, c.want)
		}
	}
}
