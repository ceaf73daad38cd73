package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newGuard(t *testing.T, roots ...string) *Guard {
	t.Helper()
	g, err := NewGuard(roots)
	if err != nil {
		t.Fatalf("NewGuard() error = %v", err)
	}
	return g
}

func TestGuardCheck(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o755); err != nil {
		t.Fatal(err)
	}

	g := newGuard(t, root)

	tests := []struct {
		name    string
		path    string
		allowed bool
	}{
		{"root itself", root, true},
		{"file inside", filepath.Join(root, "a.txt"), true},
		{"nested dir", filepath.Join(root, "sub", "deep"), true},
		{"not yet existing file inside", filepath.Join(root, "new.txt"), true},
		{"not yet existing nested path", filepath.Join(root, "sub", "b", "c.txt"), true},
		{"outside", outside, false},
		{"traversal out of root", filepath.Join(root, "..", "somewhere"), false},
		{"traversal to etc", filepath.Join(root, "..", "..", "etc", "passwd"), false},
		{"sibling with root prefix", root + "2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Check(tt.path)
			if tt.allowed && err != nil {
				t.Errorf("Check(%q) = %v, want allowed", tt.path, err)
			}
			if !tt.allowed {
				var nae *NotAuthorizedError
				if !errors.As(err, &nae) {
					t.Errorf("Check(%q) = %v, want *NotAuthorizedError", tt.path, err)
				}
			}
		})
	}
}

func TestGuardEmptyAllowListDeniesEverything(t *testing.T) {
	g := newGuard(t)

	for _, path := range []string{"/", t.TempDir(), "relative/path"} {
		var nae *NotAuthorizedError
		if err := g.Check(path); !errors.As(err, &nae) {
			t.Errorf("Check(%q) = %v, want *NotAuthorizedError", path, err)
		}
	}
}

func TestGuardSymlinkEscapeDenied(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	secret := filepath.Join(outside, "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link.txt")
	if err := os.Symlink(secret, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	g := newGuard(t, root)

	var nae *NotAuthorizedError
	if err := g.Check(link); !errors.As(err, &nae) {
		t.Errorf("Check(symlink out of sandbox) = %v, want *NotAuthorizedError", err)
	}
}

func TestGuardSymlinkInsideAllowed(t *testing.T) {
	root := t.TempDir()

	target := filepath.Join(root, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	g := newGuard(t, root)

	if err := g.Check(link); err != nil {
		t.Errorf("Check(symlink within sandbox) = %v, want allowed", err)
	}
}

func TestGuardDanglingSymlinkEscapeDenied(t *testing.T) {
	// A link whose target does not exist yet must be judged by where it
	// points: writing through it would create the file outside the sandbox.
	root := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(root, "evil")
	if err := os.Symlink(filepath.Join(outside, "new.txt"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	g := newGuard(t, root)

	var nae *NotAuthorizedError
	if err := g.Check(link); !errors.As(err, &nae) {
		t.Errorf("Check(dangling symlink out of sandbox) = %v, want *NotAuthorizedError", err)
	}
	// A path below the dangling link escapes the same way.
	if err := g.Check(filepath.Join(link, "sub.txt")); !errors.As(err, &nae) {
		t.Errorf("Check(path under dangling symlink) = %v, want *NotAuthorizedError", err)
	}
}

func TestGuardDanglingSymlinkInsideAllowed(t *testing.T) {
	root := t.TempDir()

	link := filepath.Join(root, "pending")
	if err := os.Symlink(filepath.Join(root, "target.txt"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	g := newGuard(t, root)

	if err := g.Check(link); err != nil {
		t.Errorf("Check(dangling symlink within sandbox) = %v, want allowed", err)
	}
}

func TestGuardDanglingSymlinkRelativeTargetDenied(t *testing.T) {
	root := t.TempDir()
	// Relative link targets resolve against the link's directory, so a
	// chain of ..s can still climb out of the sandbox.
	link := filepath.Join(root, "climb")
	if err := os.Symlink(filepath.Join("..", "..", "elsewhere.txt"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	g := newGuard(t, root)

	var nae *NotAuthorizedError
	if err := g.Check(link); !errors.As(err, &nae) {
		t.Errorf("Check(relative dangling symlink out of sandbox) = %v, want *NotAuthorizedError", err)
	}
}

func TestGuardSymlinkedParentDenied(t *testing.T) {
	// A new file under a symlinked directory must be judged by where the
	// directory actually points, not by its lexical location.
	root := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(root, "dir")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	g := newGuard(t, root)

	var nae *NotAuthorizedError
	if err := g.Check(filepath.Join(link, "new.txt")); !errors.As(err, &nae) {
		t.Errorf("Check(new file under escaping symlink) = %v, want *NotAuthorizedError", err)
	}
}

func TestGuardMultipleRoots(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	outside := t.TempDir()

	g := newGuard(t, root1, root2)

	if err := g.Check(filepath.Join(root1, "a")); err != nil {
		t.Errorf("Check(under first root) = %v, want allowed", err)
	}
	if err := g.Check(filepath.Join(root2, "b")); err != nil {
		t.Errorf("Check(under second root) = %v, want allowed", err)
	}
	if err := g.Check(outside); err == nil {
		t.Error("Check(outside both roots) = nil, want error")
	}
}

func TestGuardRootsAreResolvedOnce(t *testing.T) {
	root := t.TempDir()

	real := filepath.Join(root, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	alias := filepath.Join(root, "alias")
	if err := os.Symlink(real, alias); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	// Configure via the symlink; the guard should hold the resolved form.
	g := newGuard(t, alias)

	for _, r := range g.Roots() {
		resolved, err := Canonicalize(real)
		if err != nil {
			t.Fatal(err)
		}
		if r != resolved {
			t.Errorf("root = %q, want resolved %q", r, resolved)
		}
	}

	if err := g.Check(filepath.Join(real, "f.txt")); err != nil {
		t.Errorf("Check(under resolved root) = %v, want allowed", err)
	}
}
