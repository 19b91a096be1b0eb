package oss

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gitee.com/taoJie_1/support-chat/model/config"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Service 定义对象存储服务的接口
type Service interface {
	// PutObject 上传内容, name 为存储目录下的相对路径, 返回对象键
	PutObject(name string, data []byte, contentType string) (string, error)
	// GetURL 为给定的对象键生成可公开访问的 URL。
	GetURL(objectKey string) string
	// Close 关闭底层客户端连接。
	Close() error
}

type aliyunOssService struct {
	client   *oss.Client
	config   config.Oss
	location *time.Location // 注入时区信息
}

// NewClient 创建一个新的 OSS 服务客户端。
func NewClient(cfg config.Oss, location *time.Location) (Service, error) {
	// OSS SDK 的 Endpoint 不包含协议头
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")

	client, err := oss.New(endpoint, cfg.AccessKeyId, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("创建阿里云OSS客户端失败: %w", err)
	}

	cfg.Endpoint = endpoint
	return &aliyunOssService{
		client:   client,
		config:   cfg,
		location: location,
	}, nil
}

func (s *aliyunOssService) PutObject(name string, data []byte, contentType string) (string, error) {
	bucket, err := s.client.Bucket(s.config.Bucket)
	if err != nil {
		return "", fmt.Errorf("获取OSS Bucket失败: %w", err)
	}

	// 按日期分目录
	objectKey := fmt.Sprintf("%s%s/%s", s.config.StoragePath, time.Now().In(s.location).Format("20060102"), strings.TrimPrefix(name, "/"))

	var opts []oss.Option
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	if err = bucket.PutObject(objectKey, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("上传文件到OSS失败: %w", err)
	}

	return objectKey, nil
}

func (s *aliyunOssService) GetURL(objectKey string) string {
	return buildURL(s.config, objectKey)
}

func buildURL(cfg config.Oss, objectKey string) string {
	if cfg.CdnDomain != "" {
		cdnURL, err := url.Parse(cfg.CdnDomain)
		if err == nil && cdnURL.Scheme != "" {
			// 确保路径拼接正确，避免双斜杠或丢失斜杠
			cdnURL.Path = strings.TrimSuffix(cdnURL.Path, "/") + "/" + strings.TrimPrefix(objectKey, "/")
			return cdnURL.String()
		}
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.CdnDomain, "/"), strings.TrimPrefix(objectKey, "/"))
	}
	return fmt.Sprintf("https://%s.%s/%s", cfg.Bucket, cfg.Endpoint, strings.TrimPrefix(objectKey, "/"))
}

func (s *aliyunOssService) Close() error {
	// aliyun-oss-go-sdk 客户端不需要显式关闭连接。
	return nil
}
