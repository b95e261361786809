package s3sender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	senderrors "github.com/relaypipe/s3sender/errors"
)

// TestParseAction tests single-token action resolution.
func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    Action
		wantErr bool
	}{
		{
			name:  "canonical upload",
			token: "upload",
			want:  ActionUpload,
		},
		{
			name:  "canonical mkBucket",
			token: "mkBucket",
			want:  ActionCreateBucket,
		},
		{
			name:  "canonical rmBucket",
			token: "rmBucket",
			want:  ActionDeleteBucket,
		},
		{
			name:  "case insensitive",
			token: "MKBUCKET",
			want:  ActionCreateBucket,
		},
		{
			name:  "mixed case download",
			token: "DownLoad",
			want:  ActionDownload,
		},
		{
			name:    "unknown token",
			token:   "putObject",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := ParseAction(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, senderrors.IsConfiguration(err))
				assert.Contains(t, err.Error(), "supported actions")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
		})
	}
}

// TestParseActions tests tokenization and ordering of the action list.
func TestParseActions(t *testing.T) {
	tests := []struct {
		name    string
		actions string
		want    []Action
		wantErr bool
	}{
		{
			name:    "single action",
			actions: "upload",
			want:    []Action{ActionUpload},
		},
		{
			name:    "comma separated",
			actions: "mkBucket,upload",
			want:    []Action{ActionCreateBucket, ActionUpload},
		},
		{
			name:    "space separated",
			actions: "upload download",
			want:    []Action{ActionUpload, ActionDownload},
		},
		{
			name:    "mixed separators",
			actions: "mkBucket, upload\tdownload\ncopy",
			want:    []Action{ActionCreateBucket, ActionUpload, ActionDownload, ActionCopy},
		},
		{
			name:    "order preserved",
			actions: "delete,upload",
			want:    []Action{ActionDelete, ActionUpload},
		},
		{
			name:    "repeated action",
			actions: "upload,upload",
			want:    []Action{ActionUpload, ActionUpload},
		},
		{
			name:    "empty list",
			actions: "",
			wantErr: true,
		},
		{
			name:    "only separators",
			actions: " ,\t\n",
			wantErr: true,
		},
		{
			name:    "unknown token among valid ones",
			actions: "upload,frobnicate",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, err := ParseActions(tt.actions)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, senderrors.IsConfiguration(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, actions)
		})
	}
}

// TestAction_String tests the canonical token rendering.
func TestAction_String(t *testing.T) {
	assert.Equal(t, "mkBucket", ActionCreateBucket.String())
	assert.Equal(t, "rmBucket", ActionDeleteBucket.String())
	assert.Equal(t, "upload", ActionUpload.String())
	assert.Equal(t, "download", ActionDownload.String())
	assert.Equal(t, "copy", ActionCopy.String())
	assert.Equal(t, "delete", ActionDelete.String())
	assert.Equal(t, "Action(42)", Action(42).String())
}
