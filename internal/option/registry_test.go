package option

import (
	"reflect"
	"testing"
)

func TestRegistry_ValueFallsBackToDefault(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Value(Mouth); ok {
		t.Fatal("Expected no value before default is set")
	}

	r.SetDefault(Mouth, "Default")
	for i := 0; i < 3; i++ {
		v, ok := r.Value(Mouth)
		if !ok || v != "Default" {
			t.Fatalf("Expected default 'Default' on call %d, got %q (ok=%v)", i, v, ok)
		}
	}

	r.SetValue(Mouth, "Smile")
	if v, _ := r.Value(Mouth); v != "Smile" {
		t.Errorf("Expected explicit value 'Smile', got %q", v)
	}

	r.SetDefault(Mouth, "Sad")
	if v, _ := r.Value(Mouth); v != "Smile" {
		t.Errorf("Expected explicit value to win over new default, got %q", v)
	}
}

func TestRegistry_RefCountBalancedAndNeverNegative(t *testing.T) {
	r := NewRegistry()

	r.Exit(Eyes)
	if st, _ := r.State(Eyes); st.Refs != 0 {
		t.Fatalf("Expected refs 0 after unmatched exit, got %d", st.Refs)
	}

	for i := 0; i < 5; i++ {
		r.Enter(Eyes)
	}
	if st, _ := r.State(Eyes); st.Refs != 5 {
		t.Fatalf("Expected refs 5, got %d", st.Refs)
	}
	for i := 0; i < 7; i++ {
		r.Exit(Eyes)
		st, _ := r.State(Eyes)
		if st.Refs < 0 {
			t.Fatalf("Refs went negative: %d", st.Refs)
		}
	}
	if st, _ := r.State(Eyes); st.Refs != 0 {
		t.Errorf("Expected refs back to 0, got %d", st.Refs)
	}
}

func TestRegistry_RejectsDuplicateCandidates(t *testing.T) {
	r := NewRegistry()
	r.RegisterCandidates(Top, []string{"NoHair", "Hat"})

	r.RegisterCandidates(Top, []string{"A", "B", "A"})

	st, _ := r.State(Top)
	if !reflect.DeepEqual(st.Valid, []string{"NoHair", "Hat"}) {
		t.Errorf("Expected previous registration kept, got %v", st.Valid)
	}

	r.RegisterCandidates(Top, []string{"A", "B"})
	st, _ = r.State(Top)
	if !reflect.DeepEqual(st.Valid, []string{"A", "B"}) {
		t.Errorf("Expected replacement with unique tags, got %v", st.Valid)
	}
}

func TestRegistry_UnknownKeyIsNoop(t *testing.T) {
	r := NewRegistry()
	unknown := Key("wings")

	fired := 0
	r.AddStateListener(func() { fired++ })

	r.Enter(unknown)
	r.Exit(unknown)
	r.RegisterCandidates(unknown, []string{"a"})
	r.SetDefault(unknown, "a")
	r.SetValue(unknown, "a")

	if _, ok := r.Value(unknown); ok {
		t.Error("Expected unknown key to resolve to nothing")
	}
	if _, ok := r.State(unknown); ok {
		t.Error("Expected no state for unknown key")
	}
	if fired != 0 {
		t.Errorf("Expected no notifications for unknown key, got %d", fired)
	}
}

func TestRegistry_SetValueNotifiesBothListenerKinds(t *testing.T) {
	r := NewRegistry()

	var gotKey Key
	var gotVal string
	var order []string
	r.AddValueListener(func(k Key, v string) {
		gotKey, gotVal = k, v
		order = append(order, "value")
	})
	r.AddStateListener(func() { order = append(order, "state") })

	r.SetValue(Eyebrow, "Angry")

	if gotKey != Eyebrow || gotVal != "Angry" {
		t.Errorf("Expected value listener with (eyebrowType, Angry), got (%s, %s)", gotKey, gotVal)
	}
	if !reflect.DeepEqual(order, []string{"value", "state"}) {
		t.Errorf("Expected value listeners before state listeners, got %v", order)
	}
}

func TestRegistry_SetAllSkipsValueListeners(t *testing.T) {
	r := NewRegistry()

	valueCalls, stateCalls := 0, 0
	r.AddValueListener(func(Key, string) { valueCalls++ })
	r.AddStateListener(func() { stateCalls++ })

	r.SetValue(Skin, "Pale")
	r.SetAll(Values{Mouth: "Smile", Key("nope"): "x"})

	if valueCalls != 1 {
		t.Errorf("Expected 1 value notification (from SetValue only), got %d", valueCalls)
	}
	if stateCalls != 2 {
		t.Errorf("Expected 2 state notifications, got %d", stateCalls)
	}
	if _, ok := r.Value(Skin); ok {
		t.Error("Expected SetAll to replace the whole value map")
	}
	if v, _ := r.Value(Mouth); v != "Smile" {
		t.Errorf("Expected mouth Smile, got %q", v)
	}
	if _, ok := r.Values()[Key("nope")]; ok {
		t.Error("Expected unknown keys dropped by SetAll")
	}
}

func TestRegistry_RemoveListener(t *testing.T) {
	r := NewRegistry()

	calls := 0
	id := r.AddStateListener(func() { calls++ })
	r.SetValue(Mouth, "Sad")
	r.RemoveStateListener(id)
	r.RemoveStateListener(id)
	r.RemoveValueListener(ListenerID(999))
	r.SetValue(Mouth, "Smile")

	if calls != 1 {
		t.Errorf("Expected 1 call before removal, got %d", calls)
	}
}

func TestRegistry_ListenerMayUnsubscribeDuringNotify(t *testing.T) {
	r := NewRegistry()

	calls := 0
	var id ListenerID
	id = r.AddStateListener(func() {
		calls++
		r.RemoveStateListener(id)
		r.AddStateListener(func() {})
	})

	r.SetValue(Mouth, "Sad")
	r.SetValue(Mouth, "Smile")

	if calls != 1 {
		t.Errorf("Expected self-removing listener to fire once, got %d", calls)
	}
}

func TestCatalog(t *testing.T) {
	if len(Catalog) != 13 {
		t.Fatalf("Expected 13 categories, got %d", len(Catalog))
	}
	if !Allowed(Mouth, "Smile") {
		t.Error("Expected Smile to be an allowed mouth")
	}
	if Allowed(Mouth, "Unknown") {
		t.Error("Expected Unknown to be rejected")
	}
	got := Values{Mouth: "Smile", Eyes: "Nope", Key("x"): "y"}.Valid()
	if !reflect.DeepEqual(got, Values{Mouth: "Smile"}) {
		t.Errorf("Expected only valid entries kept, got %v", got)
	}
}
