package region

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dgrid/dgrid/rpc/serializer"
)

type namedListener string

func (l namedListener) Name() string { return string(l) }

func testConfig() *Config {
	return NewConfig().
		SetScope(ScopeDistributedAck).
		SetDataPolicy(DataPolicyReplicate).
		SetKeyConstraint("string").
		SetValueConstraint("Order").
		SetInitialCapacity(128).
		SetLoadFactor(0.5).
		SetConcurrencyLevel(4).
		SetStatisticsEnabled(true).
		SetEntryTimeToLive(time.Minute).
		SetEntryIdleTimeout(30 * time.Second).
		AddListener(namedListener("audit")).
		AddListener(namedListener("metrics"))
}

// TestSnapshotCopiesValues tests that a snapshot reports the values of its source
func TestSnapshotCopiesValues(t *testing.T) {
	conf := testConfig()
	snap := Snapshot(conf)

	if snap.Scope() != ScopeDistributedAck {
		t.Errorf("Scope mismatch: expected %s, got %s", ScopeDistributedAck, snap.Scope())
	}
	if snap.DataPolicy() != DataPolicyReplicate {
		t.Errorf("DataPolicy mismatch: expected %s, got %s", DataPolicyReplicate, snap.DataPolicy())
	}
	if snap.KeyConstraint() != "string" || snap.ValueConstraint() != "Order" {
		t.Errorf("Constraint mismatch: got %q and %q", snap.KeyConstraint(), snap.ValueConstraint())
	}
	if snap.InitialCapacity() != 128 || snap.LoadFactor() != 0.5 || snap.ConcurrencyLevel() != 4 {
		t.Errorf("Sizing mismatch: got %d, %v, %d", snap.InitialCapacity(), snap.LoadFactor(), snap.ConcurrencyLevel())
	}
	if !snap.StatisticsEnabled() {
		t.Errorf("Expected statistics to be enabled")
	}
	if snap.EntryTimeToLive() != time.Minute || snap.EntryIdleTimeout() != 30*time.Second {
		t.Errorf("Expiration mismatch: got %s and %s", snap.EntryTimeToLive(), snap.EntryIdleTimeout())
	}
	if !reflect.DeepEqual(snap.ListenerNames(), []string{"audit", "metrics"}) {
		t.Errorf("Listener names mismatch: got %v", snap.ListenerNames())
	}
}

// TestSnapshotIsIndependent tests that later changes of the source are not visible
func TestSnapshotIsIndependent(t *testing.T) {
	conf := testConfig()
	snap := Snapshot(conf)

	conf.SetScope(ScopeLocal).SetInitialCapacity(1).AddListener(namedListener("late"))

	if snap.Scope() != ScopeDistributedAck {
		t.Errorf("Snapshot scope changed to %s", snap.Scope())
	}
	if snap.InitialCapacity() != 128 {
		t.Errorf("Snapshot capacity changed to %d", snap.InitialCapacity())
	}
	if len(snap.ListenerNames()) != 2 {
		t.Errorf("Snapshot listeners changed to %v", snap.ListenerNames())
	}

	// the returned names are a copy as well
	snap.ListenerNames()[0] = "changed"
	if snap.ListenerNames()[0] != "audit" {
		t.Errorf("Snapshot listener names can be modified through the getter")
	}
}

// TestSnapshotOfSnapshot tests that snapshotting a snapshot returns an equal copy
func TestSnapshotOfSnapshot(t *testing.T) {
	snap := Snapshot(testConfig())
	copied := Snapshot(snap)

	if copied == snap {
		t.Errorf("Expected a new value, got the same pointer")
	}
	if !reflect.DeepEqual(snap, copied) {
		t.Errorf("Copy doesn't match:\nOriginal: %s\nCopy: %s", snap, copied)
	}
}

// TestSnapshotNil tests that nil sources result in nil snapshots
func TestSnapshotNil(t *testing.T) {
	var conf *Config
	var attrs *Attributes

	if Snapshot(nil) != nil {
		t.Errorf("Expected nil snapshot of nil")
	}
	if Snapshot(conf) != nil {
		t.Errorf("Expected nil snapshot of nil *Config")
	}
	if Snapshot(attrs) != nil {
		t.Errorf("Expected nil snapshot of nil *Attributes")
	}
}

// TestAttributesRoundTrip tests the binary encoding through the default registry
func TestAttributesRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		attrs *Attributes
	}{
		{name: "Defaults", attrs: Snapshot(NewConfig())},
		{name: "All fields", attrs: Snapshot(testConfig())},
		{name: "Empty listener list", attrs: &Attributes{listenerNames: []string{}}},
		{name: "Nil", attrs: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := serializer.NewDataOutput(64)
			if err := serializer.DefaultRegistry.WriteObject(out, tc.attrs); err != nil {
				t.Fatalf("Failed to write attributes: %v", err)
			}

			obj, err := serializer.DefaultRegistry.ReadObject(serializer.NewDataInput(out.Bytes()))
			if err != nil {
				t.Fatalf("Failed to read attributes: %v", err)
			}

			if tc.attrs == nil {
				if obj != nil {
					t.Errorf("Expected nil, got %v", obj)
				}
				return
			}

			result, ok := obj.(*Attributes)
			if !ok {
				t.Fatalf("Expected *Attributes, got %T", obj)
			}
			if !reflect.DeepEqual(tc.attrs, result) {
				t.Errorf("Attributes don't match after round trip:\nOriginal: %s\nResult: %s", tc.attrs, result)
			}
		})
	}
}

// TestAttributesTruncated tests that every truncation of the encoding fails with ErrMalformed
func TestAttributesTruncated(t *testing.T) {
	out := serializer.NewDataOutput(64)
	if err := Snapshot(testConfig()).ToData(out); err != nil {
		t.Fatalf("Failed to write attributes: %v", err)
	}
	data := out.Bytes()

	for n := 0; n < len(data); n++ {
		var result Attributes
		if err := result.FromData(serializer.NewDataInput(data[:n])); !errors.Is(err, serializer.ErrMalformed) {
			t.Fatalf("Expected ErrMalformed for %d of %d bytes, got %v", n, len(data), err)
		}
	}
}

// TestEnumParsing tests the string representation of scopes and data policies
func TestEnumParsing(t *testing.T) {
	for scope := ScopeLocal; scope <= ScopeGlobal; scope++ {
		parsed, ok := ParseScope(scope.String())
		if !ok || parsed != scope {
			t.Errorf("ParseScope(%q) = %v, %v", scope.String(), parsed, ok)
		}
	}
	for policy := DataPolicyNormal; policy <= DataPolicyPartition; policy++ {
		parsed, ok := ParseDataPolicy(policy.String())
		if !ok || parsed != policy {
			t.Errorf("ParseDataPolicy(%q) = %v, %v", policy.String(), parsed, ok)
		}
	}

	if _, ok := ParseScope("everywhere"); ok {
		t.Errorf("Expected unknown scope to fail")
	}
	if _, ok := ParseDataPolicy(""); ok {
		t.Errorf("Expected empty data policy to fail")
	}
}
