package model

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMistralClientGenerate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outputs":[{"text":"  生成的回答文本  "}]}`))
	}))
	defer server.Close()

	client, err := NewMistralClient(&MistralConfig{
		Endpoint:  server.URL,
		AuthToken: "test-token",
	})
	assert.NoError(t, err)

	text, err := client.Generate(context.Background(), "测试问题")
	assert.NoError(t, err)

	// 请求体只带 prompt 字段，认证使用 Bearer token
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "测试问题", gotBody["prompt"])

	// 输出文本应去除首尾空白
	assert.Equal(t, "生成的回答文本", text)
}

func TestMistralClientGenerateEmptyOutputs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outputs":[]}`))
	}))
	defer server.Close()

	client, err := NewMistralClient(&MistralConfig{Endpoint: server.URL})
	assert.NoError(t, err)

	text, err := client.Generate(context.Background(), "测试问题")
	assert.NoError(t, err)
	assert.Equal(t, "No text generated.", text)
}

func TestMistralClientGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`internal error`))
	}))
	defer server.Close()

	client, err := NewMistralClient(&MistralConfig{Endpoint: server.URL})
	assert.NoError(t, err)

	_, err = client.Generate(context.Background(), "测试问题")
	assert.Error(t, err)
}

func TestNewMistralClientValidation(t *testing.T) {
	_, err := NewMistralClient(nil)
	assert.Error(t, err)

	_, err = NewMistralClient(&MistralConfig{})
	assert.Error(t, err)

	// 未指定温度时使用默认值 0.7
	client, err := NewMistralClient(&MistralConfig{Endpoint: "http://localhost:8000"})
	assert.NoError(t, err)
	assert.Equal(t, 0.7, client.Temperature())
}
