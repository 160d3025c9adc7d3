package common

import (
	"testing"
)

func TestSanitizeMilvusString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "正常字符串",
			input:    "normal-string-123",
			expected: "normal-string-123",
		},
		{
			name:     "包含双引号",
			input:    `test"value`,
			expected: `test\"value`,
		},
		{
			name:     "包含反斜杠",
			input:    `test\value`,
			expected: `test\\value`,
		},
		{
			name:     "表达式注入尝试 - 双引号",
			input:    `test" OR 1==1 OR "`,
			expected: `test\" OR 1==1 OR \"`,
		},
		{
			name:     "复杂注入尝试",
			input:    `test\"; DROP TABLE users; --`,
			expected: `test\\\"; DROP TABLE users; --`,
		},
		{
			name:     "空字符串",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeMilvusString(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeMilvusString(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "带连字符的标准UUID",
			input:    "550e8400-e29b-41d4-a716-446655440000",
			expected: true,
		},
		{
			name:     "无连字符的UUID",
			input:    "550e8400e29b41d4a716446655440000",
			expected: true,
		},
		{
			name:     "大写UUID",
			input:    "550E8400-E29B-41D4-A716-446655440000",
			expected: true,
		},
		{
			name:     "非法字符",
			input:    "550e8400-e29b-41d4-a716-44665544zzzz",
			expected: false,
		},
		{
			name:     "长度不对",
			input:    "550e8400",
			expected: false,
		},
		{
			name:     "注入尝试",
			input:    `" OR 1==1`,
			expected: false,
		},
		{
			name:     "空字符串",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateUUID(tt.input)
			if result != tt.expected {
				t.Errorf("ValidateUUID(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateCollectionName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "合法名称",
			input:    "library_abc123",
			expected: true,
		},
		{
			name:     "数字开头",
			input:    "123library",
			expected: false,
		},
		{
			name:     "包含连字符",
			input:    "library-abc",
			expected: false,
		},
		{
			name:     "空字符串",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCollectionName(tt.input)
			if result != tt.expected {
				t.Errorf("ValidateCollectionName(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
