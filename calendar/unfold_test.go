package calendar

import (
	"reflect"
	"testing"
)

func TestUnfoldLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "no continuations unchanged",
			in:   "BEGIN:VEVENT\nSUMMARY:Plain\nEND:VEVENT\n",
			want: []string{"BEGIN:VEVENT", "SUMMARY:Plain", "END:VEVENT"},
		},
		{
			name: "space continuation drops one leading space",
			in:   "SUMMARY:Intro to\n  Compilers\n",
			want: []string{"SUMMARY:Intro to Compilers"},
		},
		{
			name: "tab continuation drops only the tab",
			in:   "DESCRIPTION:part one\n\tpart two\n",
			want: []string{"DESCRIPTION:part onepart two"},
		},
		{
			name: "crlf terminators",
			in:   "SUMMARY:Intro to\r\n  Compilers\r\nUID:abc\r\n",
			want: []string{"SUMMARY:Intro to Compilers", "UID:abc"},
		},
		{
			name: "multiple continuations on one line",
			in:   "DESCRIPTION:a\n b\n c\n",
			want: []string{"DESCRIPTION:abc"},
		},
		{
			name: "continuation flushed without trailing newline",
			in:   "SUMMARY:abc\n def",
			want: []string{"SUMMARY:abcdef"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UnfoldLines(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("UnfoldLines(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}
