package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		content string
		vars    map[string]string
		want    string
		wantErr bool
	}{
		{
			name:    "plain text is identity",
			content: "set -x EDITOR hx\nalias g git\n",
			want:    "set -x EDITOR hx\nalias g git\n",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
		{
			name:    "variable substitution",
			content: "editor = {{.Editor}}\n",
			vars:    map[string]string{"Editor": "hx"},
			want:    "editor = hx\n",
		},
		{
			name:    "nil variables with no template syntax",
			content: "plain\n",
			vars:    nil,
			want:    "plain\n",
		},
		{
			name:    "malformed template fails",
			content: "{{if}}\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.content, tt.vars)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
