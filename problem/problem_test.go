package problem

import "testing"

func TestListErrorEmpty(t *testing.T) {
	var l List
	if got := l.Error(); got != "no problems" {
		t.Fatalf("got %q", got)
	}
}

func TestListErrorTruncatesAtThree(t *testing.T) {
	l := List{
		{Path: "/a", Code: "minLength"},
		{Path: "/b", Code: "maxLength"},
		{Path: "/c", Code: "type"},
		{Path: "/d", Code: "minimum"},
	}
	got := l.Error()
	if got != "/a: minLength; /b: maxLength; /c: type ... (total 4)" {
		t.Fatalf("got %q", got)
	}
}

func TestAppendOnNilList(t *testing.T) {
	var l List
	l = Append(l, Problem{Path: "/x", Code: "required"})
	if len(l) != 1 || l[0].Code != "required" {
		t.Fatalf("got %v", l)
	}
}

func TestListAsError(t *testing.T) {
	var err error = List{{Path: "/a", Code: "type"}}
	if err == nil || err.Error() == "" {
		t.Fatalf("expected List to satisfy the error interface with a non-empty message")
	}
}
