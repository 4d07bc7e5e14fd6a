package util

import (
	"errors"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  cv final.pdf ", want: "cv final.pdf"},
		{in: "dir/resume.pdf", want: "dir_resume.pdf"},
		{in: `dir\resume.pdf`, want: "dir_resume.pdf"},
		{in: "../resume.pdf", want: "__resume.pdf"},
		{in: "jane..resume.pdf", want: "jane_resume.pdf"},
		{in: "a....pdf", want: "a_.pdf"},
		{in: "   ", wantErr: true},
		{in: ".", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Fatalf("SanitizeFileName(%q): expected ErrInvalidFileName, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}
