package dispatch_test

import (
	"pycheck/internal/dispatch"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTargets(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "no args resolves to the default target",
			args: nil,
			want: []string{"plugin.py"},
		},
		{
			name: "empty slice resolves to the default target",
			args: []string{},
			want: []string{"plugin.py"},
		},
		{
			name: "args pass through in order",
			args: []string{"a.py", "b.py"},
			want: []string{"a.py", "b.py"},
		},
		{
			name: "flags are not distinguished from paths",
			args: []string{"--strict"},
			want: []string{"--strict"},
		},
		{
			name: "mixed flags and paths keep their order",
			args: []string{"--strict", "a.py", "--no-error-summary", "b.py"},
			want: []string{"--strict", "a.py", "--no-error-summary", "b.py"},
		},
		{
			name: "duplicates and empty strings are preserved",
			args: []string{"a.py", "a.py", ""},
			want: []string{"a.py", "a.py", ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, dispatch.ResolveTargets(tc.args, "plugin.py"))
		})
	}
}

func TestResolveTargetsCopiesInput(t *testing.T) {
	args := []string{"a.py", "b.py"}
	got := dispatch.ResolveTargets(args, "plugin.py")

	args[0] = "mutated.py"
	require.Equal(t, []string{"a.py", "b.py"}, got, "resolved list must not alias the caller's slice")
}
