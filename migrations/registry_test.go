package migrations

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestFilesystems_ExposeBothDialects(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected postgres and sqlite specs, got %d", len(filesystems))
	}

	byDialect := map[string]FilesystemSpec{}
	for _, spec := range filesystems {
		byDialect[spec.Dialect] = spec
	}
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		spec, ok := byDialect[dialect]
		if !ok {
			t.Fatalf("missing %s filesystem", dialect)
		}
		matches, err := fs.Glob(spec.FS, "*.up.sql")
		if err != nil {
			t.Fatalf("glob %s: %v", dialect, err)
		}
		if len(matches) == 0 {
			t.Fatalf("%s filesystem has no up migrations", dialect)
		}
	}
}

func TestFilesystems_PostgresRootExcludesSQLiteFiles(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	for _, spec := range filesystems {
		if spec.Dialect != DialectPostgres {
			continue
		}
		matches, err := fs.Glob(spec.FS, "*.up.sql")
		if err != nil {
			t.Fatalf("glob: %v", err)
		}
		for _, match := range matches {
			if strings.Contains(match, "sqlite") {
				t.Fatalf("postgres root glob leaked sqlite file %s", match)
			}
		}
	}
}

func TestRegister_InvokesForEachValidationTarget(t *testing.T) {
	ctx := context.Background()

	var seen []string
	reg, err := Register(ctx, func(_ context.Context, dialect string, sourceLabel string, fsys fs.FS) error {
		if sourceLabel != "go-session" {
			t.Fatalf("unexpected source label %q", sourceLabel)
		}
		if fsys == nil {
			t.Fatalf("nil filesystem for %s", dialect)
		}
		seen = append(seen, dialect)
		return nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected both dialects registered, got %v", seen)
	}
	if reg.SourceLabel != "go-session" {
		t.Fatalf("unexpected registration label %q", reg.SourceLabel)
	}
}

func TestRegister_HonorsTargetFilterAndLabel(t *testing.T) {
	ctx := context.Background()

	var seen []string
	reg, err := Register(ctx, func(_ context.Context, dialect string, sourceLabel string, _ fs.FS) error {
		if sourceLabel != "custom-label" {
			t.Fatalf("unexpected source label %q", sourceLabel)
		}
		seen = append(seen, dialect)
		return nil
	},
		WithDialectSourceLabel("custom-label"),
		WithValidationTargets(DialectSQLite),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(seen) != 1 || seen[0] != DialectSQLite {
		t.Fatalf("expected only sqlite registration, got %v", seen)
	}
	if len(reg.ValidationTargets) != 1 {
		t.Fatalf("unexpected validation targets %v", reg.ValidationTargets)
	}
}

func TestRegister_RequiresRegisterFunc(t *testing.T) {
	if _, err := Register(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil register function")
	}
}
