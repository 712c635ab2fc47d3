package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func drain(src TokenSource) error {
	_, err := DecodeTree(src)
	return err
}

func TestEnforce_DuplicateKey(t *testing.T) {
	mk := func() *sliceSource {
		return tokens(KindBeginArray, KindBeginObject, key("a"), json.Number("1"), key("a"), json.Number("2"), KindEndObject, KindEndArray)
	}

	err := drain(WrapWithEnforcement(mk(), EnforceOptions{OnDuplicate: DupError}))
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "/0/a" || ie.Offset != 4 {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}

	var warned []SimpleIssue
	err = drain(WrapWithEnforcement(mk(), EnforceOptions{OnDuplicate: DupWarn, Warn: func(si SimpleIssue) { warned = append(warned, si) }}))
	if err != nil || len(warned) != 1 || warned[0].Path != "/0/a" {
		t.Fatalf("expected one warning, got %v (err %v)", warned, err)
	}

	if err := drain(WrapWithEnforcement(mk(), EnforceOptions{OnDuplicate: DupIgnore})); err != nil {
		t.Fatalf("ignore policy should not fail: %v", err)
	}
}

func TestEnforce_SameKeyInSiblingObjects(t *testing.T) {
	src := tokens(KindBeginArray,
		KindBeginObject, key("NAME"), "a", KindEndObject,
		KindBeginObject, key("NAME"), "b", KindEndObject,
		KindEndArray)
	if err := drain(WrapWithEnforcement(src, EnforceOptions{OnDuplicate: DupError})); err != nil {
		t.Fatalf("keys are scoped per object: %v", err)
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	src := tokens(KindBeginObject, key("a"), KindBeginObject, key("b~/"), KindBeginArray, KindEndArray, KindEndObject, KindEndObject)
	err := drain(WrapWithEnforcement(src, EnforceOptions{MaxDepth: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("expected truncated, got %v", err)
	}
	if ie.Path != "/a/b~0~1" {
		t.Fatalf("expected escaped pointer, got %s", ie.Path)
	}
}

func TestEnforce_MaxBytes(t *testing.T) {
	src := tokens(KindBeginArray, "a", "b", "c", KindEndArray)
	err := drain(WrapWithEnforcement(src, EnforceOptions{MaxBytes: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestDetectDuplicateKeys(t *testing.T) {
	mk := func() *sliceSource {
		return tokens(KindBeginObject,
			key("a"), json.Number("1"), key("a"), json.Number("2"),
			key("b"), KindBeginObject, key("c"), nil, key("c"), nil, KindEndObject,
			KindEndObject)
	}
	found, err := DetectDuplicateKeys(mk(), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 2 || found[0].Path != "/a" || found[1].Path != "/b/c" {
		t.Fatalf("unexpected issues: %+v", found)
	}

	found, err = DetectDuplicateKeys(mk(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 2 || found[1].Code != "truncated" {
		t.Fatalf("expected truncation marker, got %+v", found)
	}
}

func TestJoinPointer(t *testing.T) {
	if got := JoinPointer("/INPUTS/0", "a/b~c"); got != "/INPUTS/0/a~1b~0c" {
		t.Fatalf("got %s", got)
	}
}
