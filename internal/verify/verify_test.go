package verify

import (
	"context"
	"testing"

	"github.com/sourcefrog/cp-r/testutil"
)

func TestTreeAndCompare_Match(t *testing.T) {
	src := testutil.NewTestTree(t)
	src.CreateFile("a.txt", "alpha")
	src.CreateFile("sub/b.txt", "beta")

	dest := testutil.NewTestTree(t)
	dest.CreateFile("a.txt", "alpha")
	dest.CreateFile("sub/b.txt", "beta")

	srcSum, err := Tree(context.Background(), src.Root, 2)
	if err != nil {
		t.Fatalf("Tree(src) failed: %v", err)
	}
	destSum, err := Tree(context.Background(), dest.Root, 2)
	if err != nil {
		t.Fatalf("Tree(dest) failed: %v", err)
	}

	if srcSum.Root != destSum.Root {
		t.Errorf("roots differ: %s vs %s", srcSum.Root, destSum.Root)
	}
	if diff := Compare(srcSum, destSum); !diff.Clean() {
		t.Errorf("Compare() = %+v, want clean", diff)
	}
}

func TestTreeAndCompare_Mismatch(t *testing.T) {
	src := testutil.NewTestTree(t)
	src.CreateFile("a.txt", "alpha")
	src.CreateFile("b.txt", "beta")
	src.CreateFile("c.txt", "gamma")

	dest := testutil.NewTestTree(t)
	dest.CreateFile("a.txt", "alpha")
	dest.CreateFile("b.txt", "CHANGED")
	dest.CreateFile("extra.txt", "surplus")

	srcSum, err := Tree(context.Background(), src.Root, 0)
	if err != nil {
		t.Fatalf("Tree(src) failed: %v", err)
	}
	destSum, err := Tree(context.Background(), dest.Root, 0)
	if err != nil {
		t.Fatalf("Tree(dest) failed: %v", err)
	}

	if srcSum.Root == destSum.Root {
		t.Error("roots match, want different")
	}

	diff := Compare(srcSum, destSum)
	if diff.Clean() {
		t.Fatal("Compare() clean, want differences")
	}
	if len(diff.Mismatched) != 1 || diff.Mismatched[0] != "b.txt" {
		t.Errorf("Mismatched = %v, want [b.txt]", diff.Mismatched)
	}
	if len(diff.Missing) != 1 || diff.Missing[0] != "c.txt" {
		t.Errorf("Missing = %v, want [c.txt]", diff.Missing)
	}
	if len(diff.Extra) != 1 || diff.Extra[0] != "extra.txt" {
		t.Errorf("Extra = %v, want [extra.txt]", diff.Extra)
	}
}

func TestTree_Empty(t *testing.T) {
	src := testutil.NewTestTree(t)
	dest := testutil.NewTestTree(t)

	srcSum, err := Tree(context.Background(), src.Root, 1)
	if err != nil {
		t.Fatalf("Tree(src) failed: %v", err)
	}
	destSum, err := Tree(context.Background(), dest.Root, 1)
	if err != nil {
		t.Fatalf("Tree(dest) failed: %v", err)
	}

	if srcSum.Root == "" {
		t.Error("empty tree has no root digest")
	}
	if srcSum.Root != destSum.Root {
		t.Errorf("empty tree roots differ: %s vs %s", srcSum.Root, destSum.Root)
	}
}

func TestTree_SingleFile(t *testing.T) {
	src := testutil.NewTestTree(t)
	src.CreateFile("only.txt", "one")

	sum, err := Tree(context.Background(), src.Root, 1)
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	if len(sum.Files) != 1 {
		t.Errorf("hashed %d files, want 1", len(sum.Files))
	}
	if sum.Root == "" {
		t.Error("single-file tree has no root digest")
	}
}
