package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompterConfirm(t *testing.T) {
	cases := []struct {
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{input: "\n", defaultYes: true, want: true},
		{input: "", defaultYes: false, want: false},
		{input: "YES\n", want: true},
		{input: "maybe\nn\n", defaultYes: true, want: false},
		{input: "maybe", wantErr: true},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := newPrompter(strings.NewReader(tc.input), &out).confirm("Continue?", tc.defaultYes)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.input)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: expected %v, got %v (%v)", tc.input, tc.want, got, err)
		}
		if !strings.HasPrefix(out.String(), "Continue? [") {
			t.Fatalf("%q: unexpected prompt %q", tc.input, out.String())
		}
	}
}
