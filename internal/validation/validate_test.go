package validation

import (
	"strings"
	"testing"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name      string
		bucket    string
		wantError bool
		errMsg    string
	}{
		// Valid bucket names
		{"valid_simple", "my-bucket", false, ""},
		{"valid_with_numbers", "my-bucket123", false, ""},
		{"valid_with_dots", "my.bucket", false, ""},
		{"valid_with_hyphens", "my-bucket-name", false, ""},
		{"valid_leading_number", "1bucket", false, ""},
		{"valid_min_length", "abc", false, ""},
		{"valid_max_length", strings.Repeat("a", 63), false, ""},

		// Invalid bucket names
		{"empty", "", true, "bucket name cannot be empty"},
		{"too_short", "ab", true, "bucket name must be between 3 and 63 characters long"},
		{
			"too_long",
			strings.Repeat("a", 64),
			true,
			"bucket name must be between 3 and 63 characters long",
		},
		{
			"starts_with_hyphen",
			"-bucket",
			true,
			"bucket name cannot start or end with a hyphen or dot",
		},
		{
			"ends_with_hyphen",
			"bucket-",
			true,
			"bucket name cannot start or end with a hyphen or dot",
		},
		{
			"starts_with_dot",
			".bucket",
			true,
			"bucket name cannot start or end with a hyphen or dot",
		},
		{"ends_with_dot", "bucket.", true, "bucket name cannot start or end with a hyphen or dot"},
		{
			"contains_uppercase",
			"MyBucket",
			true,
			"bucket name can only contain lowercase letters, numbers, dots, and hyphens",
		},
		{
			"contains_underscore",
			"my_bucket",
			true,
			"bucket name can only contain lowercase letters, numbers, dots, and hyphens",
		},
		{
			"contains_space",
			"my bucket",
			true,
			"bucket name can only contain lowercase letters, numbers, dots, and hyphens",
		},
		{"ip_address", "192.168.1.1", true, "bucket name cannot be formatted as an IP address"},
		{
			"double_dots",
			"my..bucket",
			true,
			"bucket name cannot contain two adjacent periods or hyphens",
		},
		{
			"double_hyphens",
			"my--bucket",
			true,
			"bucket name cannot contain two adjacent periods or hyphens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateBucketName(%q) expected error, got nil", tt.bucket)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateBucketName(%q) error = %q, want to contain %q", tt.bucket, err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateBucketName(%q) expected no error, got %q", tt.bucket, err)
				}
			}
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantError bool
		errMsg    string
	}{
		// Valid object keys
		{"valid_simple", "my-file.txt", false, ""},
		{"valid_with_path", "folder/subfolder/file.txt", false, ""},
		{"valid_unicode", "файл.txt", false, ""},
		{"valid_numbers", "file123.txt", false, ""},
		{"valid_special_chars", "file_with-dashes.and.dots.txt", false, ""},
		{"valid_spaces", "file with spaces.txt", false, ""},

		// Invalid object keys
		{"empty", "", true, "object key cannot be empty"},
		{"too_long", strings.Repeat("a", 1025), true, "object key cannot exceed 1024 characters"},
		{
			"path_traversal_dot_dot",
			"../secret.txt",
			true,
			"object key cannot contain path traversal sequences",
		},
		{
			"path_traversal_dot_dot_path",
			"folder/../../../secret.txt",
			true,
			"object key cannot contain path traversal sequences",
		},
		{
			"path_traversal_absolute",
			"/etc/passwd",
			true,
			"object key cannot contain path traversal sequences",
		},
		{
			"path_traversal_windows",
			"C:\\Windows\\System32\\config\\system",
			true,
			"object key cannot contain path traversal sequences",
		},
		{
			"control_characters",
			"file\x00with\x01null.txt",
			true,
			"object key cannot contain control characters",
		},
		{
			"newline",
			"file\nwith\nnewlines.txt",
			true,
			"object key cannot contain control characters",
		},
		{"tab", "file\twith\ttabs.txt", true, "object key cannot contain control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateObjectKey(%q) expected error, got nil", tt.key)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateObjectKey(%q) error = %q, want to contain %q", tt.key, err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateObjectKey(%q) expected no error, got %q", tt.key, err)
				}
			}
		})
	}
}
