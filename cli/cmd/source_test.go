package cmd

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestUniqueSources(t *testing.T) {
	dir := t.TempDir()

	file1 := filepath.Join(dir, "one.ini")
	file2 := filepath.Join(dir, "two.ini")
	link := filepath.Join(dir, "link.ini")

	for _, f := range []string{file1, file2} {
		if err := os.WriteFile(f, []byte("[a]\nb = c\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.Symlink(file1, link); err != nil {
		t.Fatal(err)
	}

	missing := filepath.Join(dir, "missing.ini")

	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{"empty", nil, nil},
		{"distinct", []string{file1, file2}, []string{file1, file2}},
		{"repeated", []string{file1, file1, file1}, []string{file1}},
		{"symlink", []string{file1, link, file2}, []string{file1, file2}},
		{"stdin last", []string{"-", file2, "-", file1}, []string{file2, file1, "-"}},
		{"missing kept once", []string{missing, file1, missing}, []string{missing, file1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueSources(tt.sources); !slices.Equal(got, tt.want) {
				t.Errorf("UniqueSources() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUniqueSources_RelativeAbsolute(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "conf.ini")

	if err := os.WriteFile(abs, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	got := UniqueSources([]string{"conf.ini", abs})
	if !slices.Equal(got, []string{"conf.ini"}) {
		t.Errorf("UniqueSources() = %v", got)
	}
}
