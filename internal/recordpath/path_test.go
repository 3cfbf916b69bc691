package recordpath

import (
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/rowstore/pkg/options"
)

func TestMainDynIndexPaths(t *testing.T) {
	dir := "/tmp/table-root"

	main := Main(dir)
	if got, want := main.Full(), filepath.Join(dir, "main.bin"); got != want {
		t.Fatalf("Main().Full() = %q, want %q", got, want)
	}
	if !main.IsRootMain() {
		t.Fatalf("Main() should be the root main file")
	}

	dyn := Dyn(dir, 42)
	if got, want := dyn.Full(), filepath.Join(dir, "dyn", "42.bin"); got != want {
		t.Fatalf("Dyn().Full() = %q, want %q", got, want)
	}
	if got, want := dyn.Folder(), filepath.Join(dir, "dyn"); got != want {
		t.Fatalf("Dyn().Folder() = %q, want %q", got, want)
	}

	idx := Index(dir, "email")
	if got, want := idx.Full(), filepath.Join(dir, "index", "email.bin"); got != want {
		t.Fatalf("Index().Full() = %q, want %q", got, want)
	}
	if idx.IsRootMain() {
		t.Fatalf("a secondary index path must not report as the root main file")
	}
}

func TestOptionsDefaultsToPackageDefault(t *testing.T) {
	p := Main("/tmp/table-root")
	if got, want := p.Options(), options.NewDefaultOptions(); got != want {
		t.Fatalf("Options() = %+v, want package default %+v", got, want)
	}

	custom := options.Options{CacheEnabled: false, Fsync: false, DirPermissions: 0700, FilePermissions: 0600}
	p = p.WithOptions(custom)
	if got := p.Options(); got != custom {
		t.Fatalf("Options() after WithOptions = %+v, want %+v", got, custom)
	}
}

func TestDynDirAndIndexDir(t *testing.T) {
	p := Main("/tmp/table-root")
	if got, want := p.DynDir(), filepath.Join("/tmp/table-root", "dyn"); got != want {
		t.Fatalf("DynDir() = %q, want %q", got, want)
	}
	if got, want := p.IndexDir(), filepath.Join("/tmp/table-root", "index"); got != want {
		t.Fatalf("IndexDir() = %q, want %q", got, want)
	}
}
