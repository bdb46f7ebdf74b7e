package update

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPullRequestBody(t *testing.T) {
	prev := 12

	tests := []struct {
		name string
		body string
		prev *int
		want string
	}{
		{
			name: "strips change id trailer",
			body: "Some description.\n\nChange-Id: Iabc123",
			prev: nil,
			want: "Some description.",
		},
		{
			name: "appends depends on",
			body: "Some description.\n\nChange-Id: Iabc123",
			prev: &prev,
			want: "Some description.\n\nDepends-On: #12",
		},
		{
			name: "replaces stale depends on",
			body: "Some description.\n\nDepends-On: #7\nChange-Id: Iabc123",
			prev: &prev,
			want: "Some description.\n\nDepends-On: #12",
		},
		{
			name: "empty body with depends on",
			body: "Change-Id: Iabc123",
			prev: &prev,
			want: "Depends-On: #12",
		},
		{
			name: "empty body without depends on",
			body: "Change-Id: Iabc123",
			prev: nil,
			want: "",
		},
		{
			name: "crlf line endings",
			body: "Some description.\r\n\r\nChange-Id: Iabc123\r",
			prev: nil,
			want: "Some description.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPullRequestBody(tt.body, tt.prev)
			require.Equal(t, tt.want, got)

			// Formatting is idempotent: feeding the output back in with the
			// same predecessor changes nothing.
			require.Equal(t, tt.want, FormatPullRequestBody(got, tt.prev))
		})
	}
}
