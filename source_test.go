package goisf_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/goisf"
)

// countingDriver wraps another driver and hides its concrete Source type so
// tokens travel through the public Source interface.
type countingDriver struct {
	inner goisf.JSONDriver
	calls int
}

type opaqueSource struct{ inner goisf.Source }

func (s opaqueSource) NextToken() (goisf.Token, error) { return s.inner.NextToken() }
func (s opaqueSource) Location() int64                 { return s.inner.Location() }

func (d *countingDriver) NewBytes(b []byte) goisf.Source {
	d.calls++
	return opaqueSource{inner: d.inner.NewBytes(b)}
}

func (d *countingDriver) Name() string { return "counting" }

const driverSample = `{"ISFVSN":"2","INPUTS":[{"NAME":"a","TYPE":"color","DEFAULT":[0,0.25,0.5,1]},{"NAME":"b","TYPE":"long","VALUES":[1,2],"LABELS":["x","y"]}],"PASSES":[{"FLOAT":true}]}`

func TestDrivers_ProduceSameDocument(t *testing.T) {
	std := goisf.DefaultParseOpt()
	std.Driver = goisf.StdJSONDriver()
	fromStd, err := goisf.ParseJSON([]byte(driverSample), std)
	if err != nil {
		t.Fatalf("encoding/json driver: %v", err)
	}
	fromGo, err := goisf.ParseJSON([]byte(driverSample))
	if err != nil {
		t.Fatalf("go-json driver: %v", err)
	}
	if diff := cmp.Diff(fromStd, fromGo); diff != "" {
		t.Fatalf("drivers disagree (-std +go-json):\n%s", diff)
	}
}

func TestSetJSONDriver(t *testing.T) {
	t.Cleanup(goisf.UseDefaultJSONDriver)

	d := &countingDriver{inner: goisf.StdJSONDriver()}
	goisf.SetJSONDriver(d)
	goisf.SetJSONDriver(nil) // ignored

	if _, err := goisf.Parse("/*" + driverSample + "*/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.calls != 1 {
		t.Fatalf("expected the global driver to be used once, got %d", d.calls)
	}

	// A per-call driver wins over the global one.
	opt := goisf.DefaultParseOpt()
	opt.Driver = goisf.GoJSONDriver()
	if _, err := goisf.Parse("/*"+driverSample+"*/", opt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.calls != 1 {
		t.Fatalf("per-call driver should bypass the global one")
	}
}

func TestDriverNames(t *testing.T) {
	if goisf.GoJSONDriver().Name() != "go-json" || goisf.StdJSONDriver().Name() != "encoding/json" {
		t.Fatalf("unexpected driver names")
	}
}
