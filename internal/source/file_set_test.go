package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()

	first := fs.Add("app/main.py", []byte("print(1)\n"), 0)
	second := fs.Add("app/main.py", []byte("print(2)\n"), 0)
	if first == second {
		t.Fatalf("expected distinct ids, got %d twice", first)
	}

	if got := fs.Get(first).Text(); got != "print(1)\n" {
		t.Fatalf("first version content changed: %q", got)
	}
	if fs.Get(first).Hash == fs.Get(second).Hash {
		t.Fatalf("different contents must hash differently")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    string
		flags   FileFlags
		lineIdx []uint32
	}{
		{"plain", []byte("a\nb\n"), "a\nb\n", FileVirtual, []uint32{1, 3}},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n", FileVirtual | FileNormalizedCRLF, []uint32{1, 3}},
		{"lone cr", []byte("a\rb"), "a\rb", FileVirtual, []uint32{}},
		{"bom", []byte("\xEF\xBB\xBFx = 1"), "x = 1", FileVirtual | FileHadBOM, []uint32{}},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\n', 0}, "hi\n", FileVirtual | FileDecodedUTF16, []uint32{2}},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'o', 0, 'k'}, "ok", FileVirtual | FileDecodedUTF16, []uint32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			f := fs.Get(fs.AddVirtual("buf", tt.input))
			if f.Text() != tt.want {
				t.Fatalf("content = %q, want %q", f.Text(), tt.want)
			}
			if f.Flags != tt.flags {
				t.Fatalf("flags = %b, want %b", f.Flags, tt.flags)
			}
			if len(f.LineIdx) != len(tt.lineIdx) {
				t.Fatalf("LineIdx = %v, want %v", f.LineIdx, tt.lineIdx)
			}
			for i := range tt.lineIdx {
				if f.LineIdx[i] != tt.lineIdx[i] {
					t.Fatalf("LineIdx = %v, want %v", f.LineIdx, tt.lineIdx)
				}
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.js", []byte("let a;\nlet bb;\n\nx"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{5, LineCol{1, 6}},
		{6, LineCol{1, 7}},
		{7, LineCol{2, 1}},
		{15, LineCol{3, 1}},
		{16, LineCol{4, 1}},
	}
	for _, c := range cases {
		if got := fs.Resolve(id, c.off); got != c.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", c.off, got, c.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.c", []byte("int a;\nint b\n")))

	if f.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", f.LineCount())
	}
	want := []string{"", "int a;", "int b", ""}
	for n := 1; n <= 3; n++ {
		if got := f.GetLine(n); got != want[n] {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want[n])
		}
	}
	if f.GetLine(0) != "" || f.GetLine(4) != "" {
		t.Fatalf("out of range lines must be empty")
	}
}

func TestEmptyDocument(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("empty.txt", nil))
	if f.LineCount() != 1 || f.GetLine(1) != "" {
		t.Fatalf("empty document: LineCount=%d line=%q", f.LineCount(), f.GetLine(1))
	}
	if got := fs.Resolve(f.ID, 0); got != (LineCol{1, 1}) {
		t.Fatalf("Resolve(0) = %+v", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF<p>\r\n</p>\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Text() != "<p>\n</p>\n" {
		t.Fatalf("content = %q", f.Text())
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatalf("loaded file must not be virtual")
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
	if fs.Len() != 0 {
		t.Fatalf("failed load must not add a file")
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "/very/long/directory/structure/for/testing/module.qml"}
	if got := f.FormatPath("basename", ""); got != "module.qml" {
		t.Fatalf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "module.qml" {
		t.Fatalf("auto = %q", got)
	}
	short := &File{Path: "src/a.css"}
	if got := short.FormatPath("auto", ""); got != "src/a.css" {
		t.Fatalf("auto short = %q", got)
	}
	if got := short.FormatPath("", ""); got != "src/a.css" {
		t.Fatalf("default = %q", got)
	}
}
