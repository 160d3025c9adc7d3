package model

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/minewander/docrag/core/errors"
)

// MistralConfig 自托管 Mistral 推理服务配置
type MistralConfig struct {
	Endpoint    string  // 推理服务地址
	AuthToken   string  // Bearer token
	Temperature float64 // 采样温度，默认 0.7
	// 内网自签名证书的部署环境下需要跳过校验
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// MistralClient 自托管 Mistral 推理服务客户端
type MistralClient struct {
	endpoint    string
	authToken   string
	temperature float64
	httpClient  *http.Client
}

// mistralRequest 推理服务的请求结构
type mistralRequest struct {
	Prompt string `json:"prompt"`
}

// mistralResponse 推理服务的响应结构
type mistralResponse struct {
	Outputs []struct {
		Text string `json:"text"`
	} `json:"outputs"`
}

// NewMistralClient 创建 Mistral 客户端
func NewMistralClient(conf *MistralConfig) (*MistralClient, error) {
	if conf == nil {
		return nil, fmt.Errorf("mistral config cannot be nil")
	}
	if conf.Endpoint == "" {
		return nil, fmt.Errorf("mistral endpoint cannot be empty")
	}

	temperature := conf.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	timeout := conf.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if conf.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &MistralClient{
		endpoint:    conf.Endpoint,
		authToken:   conf.AuthToken,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// NewMistralClientFromConfig 从配置文件创建 Mistral 客户端
func NewMistralClientFromConfig(ctx context.Context) (*MistralClient, error) {
	endpoint := g.Cfg().MustGet(ctx, "mistral.endpoint", "").String()
	authToken := g.Cfg().MustGet(ctx, "mistral.authToken", "").String()
	temperature := g.Cfg().MustGet(ctx, "mistral.temperature", 0.7).Float64()
	insecure := g.Cfg().MustGet(ctx, "mistral.insecureSkipVerify", false).Bool()

	return NewMistralClient(&MistralConfig{
		Endpoint:           endpoint,
		AuthToken:          authToken,
		Temperature:        temperature,
		InsecureSkipVerify: insecure,
	})
}

// Generate 发送 prompt 并返回生成的文本
// 响应中没有任何输出时返回固定的占位文本而不报错
func (c *MistralClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(mistralRequest{Prompt: prompt})
	if err != nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "failed to marshal mistral request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "failed to create mistral request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "mistral request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "failed to read mistral response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrLLMCallFailed, "mistral returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var mResp mistralResponse
	if err := json.Unmarshal(respBody, &mResp); err != nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "failed to unmarshal mistral response: %v", err)
	}

	if len(mResp.Outputs) > 0 {
		return strings.TrimSpace(mResp.Outputs[0].Text), nil
	}

	return "No text generated.", nil
}

// Temperature 返回客户端配置的采样温度
func (c *MistralClient) Temperature() float64 {
	return c.temperature
}
